package newbill

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/frederic5962/bill-app/internal/domain"
	"github.com/frederic5962/bill-app/internal/routes"
	"github.com/frederic5962/bill-app/internal/session"
	"github.com/frederic5962/bill-app/internal/store"
)

// Blocking alert messages shown to the user.
const (
	FileTypeAlert       = "Seuls les fichiers .jpg, .jpeg et .png sont autorisés."
	MissingFieldsAlert  = "Veuillez remplir tous les champs requis."
	MissingReceiptAlert = "Veuillez joindre un justificatif."
)

var (
	// ErrFileType rejects a receipt whose media type is not jpeg or png.
	ErrFileType = errors.New("unsupported receipt file type")
	// ErrMissingFields rejects a draft missing a required field.
	ErrMissingFields = errors.New("missing required fields")
	// ErrMissingReceipt rejects a submit that was never preceded by a
	// successful receipt upload.
	ErrMissingReceipt = errors.New("no receipt uploaded")
)

var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

var allowedExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Draft is the transient expense-report form being composed by the
// user. It lives for one submission attempt only.
type Draft struct {
	Type       string `json:"type" form:"type"`
	Name       string `json:"name" form:"name"`
	Date       string `json:"date" form:"date"`
	Amount     string `json:"amount" form:"amount"`
	VAT        string `json:"vat" form:"vat"`
	Pct        string `json:"pct" form:"pct"`
	Commentary string `json:"commentary" form:"commentary"`
}

// Result reports the navigation performed by a successful submission.
type Result struct {
	Redirect string `json:"redirect"`
}

// Workflow validates a draft bill, attaches its receipt and persists
// the record via the remote store's create-then-update protocol. The
// identifier and file URL obtained at file selection are kept until
// the final submit.
type Workflow struct {
	Remote   store.Remote
	Sessions *session.Manager
	Nav      *routes.Navigator

	billID   string
	fileURL  string
	fileName string
}

func NewWorkflow(remote store.Remote, sessions *session.Manager, nav *routes.Navigator) *Workflow {
	return &Workflow{Remote: remote, Sessions: sessions, Nav: nav}
}

// HandleFile is the first phase: it validates the receipt's media
// type and immediately creates the draft record carrying the file.
// A create failure is logged and does not surface to the caller.
func (w *Workflow) HandleFile(ctx context.Context, fileName, contentType string, data []byte) error {
	if !accepted(fileName, contentType) {
		w.clearSelection()
		return ErrFileType
	}

	if w.Remote == nil {
		return nil
	}

	email := ""
	if record, err := w.Sessions.Current(ctx); err == nil && record != nil {
		email = record.Email
	}

	res, err := w.Remote.CreateBill(ctx, store.FileUpload{
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
		Email:       email,
	})
	if err != nil {
		log.Printf("creating draft bill failed: %v", err)
		return nil
	}

	w.billID = res.Key
	w.fileURL = res.FileURL
	w.fileName = fileName
	return nil
}

// Submit is the second phase: required-field validation, then a single
// update of the record created at file selection. On success the user
// is sent back to the bill list; a remote failure leaves the user on
// the form without raising.
func (w *Workflow) Submit(ctx context.Context, draft Draft) (*Result, error) {
	if strings.TrimSpace(draft.Name) == "" ||
		strings.TrimSpace(draft.Date) == "" ||
		strings.TrimSpace(draft.Amount) == "" {
		return nil, ErrMissingFields
	}
	if w.Remote == nil {
		return nil, nil
	}
	if w.billID == "" {
		// Submitting without a prior successful upload would leave the
		// update step with no record to target.
		return nil, ErrMissingReceipt
	}

	amount, err := strconv.ParseInt(strings.TrimSpace(draft.Amount), 10, 64)
	if err != nil {
		return nil, ErrMissingFields
	}

	pct := 20
	if p, err := strconv.Atoi(strings.TrimSpace(draft.Pct)); err == nil && p > 0 {
		pct = p
	}

	email := ""
	if record, err := w.Sessions.Current(ctx); err == nil && record != nil {
		email = record.Email
	}

	bill := domain.Bill{
		Email:      email,
		Type:       draft.Type,
		Name:       draft.Name,
		Date:       draft.Date,
		Amount:     amount,
		VAT:        strings.TrimSpace(draft.VAT),
		Pct:        pct,
		Commentary: draft.Commentary,
		Status:     string(domain.StatusPending),
		FileURL:    w.fileURL,
		FileName:   w.fileName,
	}

	if err := w.Remote.UpdateBill(ctx, w.billID, bill); err != nil {
		log.Printf("updating bill %s failed: %v", w.billID, err)
		return nil, nil
	}

	w.clearSelection()
	w.Nav.Go(routes.Bills)
	return &Result{Redirect: routes.Bills}, nil
}

func (w *Workflow) clearSelection() {
	w.billID = ""
	w.fileURL = ""
	w.fileName = ""
}

// accepted reports whether the receipt is a jpeg or png, by declared
// media type or by file extension.
func accepted(fileName, contentType string) bool {
	if _, ok := allowedTypes[strings.ToLower(strings.TrimSpace(contentType))]; ok {
		return true
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	_, ok := allowedExts[ext]
	return ok
}
