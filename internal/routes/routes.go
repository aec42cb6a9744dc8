package routes

// Front-end route paths the service redirects to. The hash-style
// values are what the single-page front end consumes verbatim.
const (
	Login     = "/"
	Bills     = "#employee/bills"
	NewBill   = "#employee/bill/new"
	Dashboard = "#admin/dashboard"
)

// Navigator carries the navigation context handed to every consumer.
// PreviousLocation has a single writer (Go); callers read it to know
// where the user came from after a redirect.
type Navigator struct {
	OnNavigate       func(path string)
	PreviousLocation string
}

// Go performs a navigation and records it as the previous location.
func (n *Navigator) Go(path string) {
	if n.OnNavigate != nil {
		n.OnNavigate(path)
	}
	n.PreviousLocation = path
}
