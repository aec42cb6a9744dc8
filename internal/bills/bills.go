package bills

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/frederic5962/bill-app/internal/domain"
	"github.com/frederic5962/bill-app/internal/store"
)

// Service produces the display-ready, chronologically ordered bill
// collection for the current session.
type Service struct {
	Remote store.Remote
}

func NewService(remote store.Remote) *Service {
	return &Service{Remote: remote}
}

// List fetches all bills, sorts them ascending by date and normalizes
// the display fields. Faults are contained: a failing listing call
// resolves to an empty collection, and a record whose date cannot be
// formatted passes through with its raw date but a normalized status.
// With no remote configured there is nothing to render.
func (s *Service) List(ctx context.Context) ([]domain.Bill, error) {
	if s.Remote == nil {
		return nil, nil
	}

	fetched, err := s.Remote.ListBills(ctx)
	if err != nil {
		log.Printf("listing bills failed: %v", err)
		return []domain.Bill{}, nil
	}

	sortByDate(fetched)

	out := make([]domain.Bill, 0, len(fetched))
	for _, b := range fetched {
		if b.Date == "" {
			log.Printf("bill without a date: %+v", b)
			b.Date = UnknownDateLabel
		} else if formatted, err := FormatDate(b.Date); err != nil {
			// Unformattable date: keep the raw value rather than
			// dropping the record.
			log.Printf("formatting bill %s failed: %v", b.ID, err)
		} else {
			b.Date = formatted
		}
		b.Status = FormatStatus(b.Status)
		out = append(out, b)
	}
	return out, nil
}

// sortByDate orders bills ascending by calendar date. The sort is
// stable; records whose dates do not parse keep their relative order.
func sortByDate(items []domain.Bill) {
	sort.SliceStable(items, func(i, j int) bool {
		di, erri := time.Parse("2006-01-02", items[i].Date)
		dj, errj := time.Parse("2006-01-02", items[j].Date)
		if erri != nil || errj != nil {
			return false
		}
		return di.Before(dj)
	})
}
