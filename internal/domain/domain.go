package domain

// Role distinguishes the two user types of the application.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

// SessionRecord is the locally persisted representation of the
// currently authenticated user. Exactly one record lives in the
// session store at a time; a new login overwrites it.
type SessionRecord struct {
	Type     Role   `json:"type"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Status   string `json:"status"`
}

// BillStatus is the canonical status for a persisted bill.
type BillStatus string

const (
	StatusPending  BillStatus = "pending"
	StatusAccepted BillStatus = "accepted"
	StatusRefused  BillStatus = "refused"
)

// Bill represents an expense report as stored by the remote store.
// Date stays a string on the wire; the aggregator interprets it.
type Bill struct {
	ID         string `json:"id,omitempty"`
	Email      string `json:"email,omitempty"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	Amount     int64  `json:"amount"`
	VAT        string `json:"vat,omitempty"`
	Pct        int    `json:"pct"`
	Commentary string `json:"commentary,omitempty"`
	Status     string `json:"status"`
	FileURL    string `json:"fileUrl,omitempty"`
	FileName   string `json:"fileName,omitempty"`
}
