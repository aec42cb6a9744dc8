package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Actions recorded by the dev remote store.
const (
	ActionLogin       = "login"
	ActionUserCreated = "user_created"
	ActionBillCreated = "bill_created"
	ActionBillUpdated = "bill_updated"
)

type Entry struct {
	Email      *string
	Action     string
	EntityType string
	EntityID   *string
	IP         *string
	Metadata   []byte
}

// Write records an audit entry; failures are returned so callers can ignore if needed.
func Write(ctx context.Context, db *pgxpool.Pool, e Entry) error {
	if db == nil {
		return nil
	}

	var metadata interface{}
	if len(e.Metadata) > 0 {
		raw := json.RawMessage(e.Metadata)
		metadata = raw
	}

	_, err := db.Exec(ctx, `
INSERT INTO audit_logs (email, action, entity_type, entity_id, ip, metadata)
VALUES ($1, $2, $3, $4, $5, $6)
`, e.Email, e.Action, e.EntityType, e.EntityID, e.IP, metadata)

	return err
}
