package devstore

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frederic5962/bill-app/internal/domain"
)

// Repository persists the dev remote store's users and bills.
type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) InsertUser(ctx context.Context, role domain.Role, name, email, passwordHash string) (string, error) {
	var id string
	err := r.Pool.QueryRow(
		ctx,
		`INSERT INTO users (type, name, email, password_hash)
         VALUES ($1, $2, $3, $4)
         RETURNING id`,
		role, name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) FindUser(ctx context.Context, email string) (id, passwordHash string, role domain.Role, err error) {
	err = r.Pool.QueryRow(
		ctx,
		`SELECT id, password_hash, type FROM users WHERE email = $1`,
		email,
	).Scan(&id, &passwordHash, &role)
	return id, passwordHash, role, err
}

// InsertDraftBill creates the first-phase record holding only the
// receipt reference and the owner's email.
func (r *Repository) InsertDraftBill(ctx context.Context, email, fileURL, fileName string) (string, error) {
	var id string
	err := r.Pool.QueryRow(
		ctx,
		`INSERT INTO bills (email, status, file_url, file_name)
         VALUES ($1, 'pending', $2, $3)
         RETURNING id`,
		email, fileURL, fileName,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) UpdateBill(ctx context.Context, id string, b domain.Bill) error {
	_, err := r.Pool.Exec(ctx, `
		UPDATE bills
		SET type = $2, name = $3, date = $4, amount = $5, vat = $6,
		    pct = $7, commentary = $8, status = $9
		WHERE id = $1
	`, id, b.Type, b.Name, b.Date, b.Amount, b.VAT, b.Pct, b.Commentary, b.Status)
	return err
}

// ListBills returns the bills visible to the given user: their own
// for employees, everything when email is empty (admin).
func (r *Repository) ListBills(ctx context.Context, email string) ([]domain.Bill, error) {
	q := `
		SELECT id, email, COALESCE(type,''), COALESCE(name,''), COALESCE(date,''),
		       COALESCE(amount,0), COALESCE(vat,''), COALESCE(pct,0),
		       COALESCE(commentary,''), status, COALESCE(file_url,''),
		       COALESCE(file_name,'')
		FROM bills
	`
	args := []any{}
	if email != "" {
		q += ` WHERE email = $1`
		args = append(args, email)
	}
	q += ` ORDER BY created_at ASC`

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Bill, 0)
	for rows.Next() {
		var b domain.Bill
		if err := rows.Scan(
			&b.ID,
			&b.Email,
			&b.Type,
			&b.Name,
			&b.Date,
			&b.Amount,
			&b.VAT,
			&b.Pct,
			&b.Commentary,
			&b.Status,
			&b.FileURL,
			&b.FileName,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
