package bills

import (
	"fmt"
	"time"

	"github.com/frederic5962/bill-app/internal/domain"
)

// UnknownDateLabel replaces a missing date in the rendered list.
const UnknownDateLabel = "Date inconnue"

// Abbreviated French month labels, as the front end has always shown them.
var frMonths = [12]string{
	"Janv.", "Févr.", "Mars", "Avr.", "Mai", "Juin",
	"Juil.", "Août", "Sept.", "Oct.", "Nov.", "Déc.",
}

// FormatDate turns a YYYY-MM-DD date into its display form, e.g.
// "2023-04-04" -> "4 Avr. 23".
func FormatDate(dateStr string) (string, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s %02d", t.Day(), frMonths[t.Month()-1], t.Year()%100), nil
}

// FormatStatus maps a stored bill status to its display label.
// Unknown statuses pass through unchanged.
func FormatStatus(status string) string {
	switch domain.BillStatus(status) {
	case domain.StatusPending:
		return "En attente"
	case domain.StatusAccepted:
		return "Accepté"
	case domain.StatusRefused:
		return "Refusé"
	default:
		return status
	}
}
