package sqlite

import (
	"context"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
)

type adminsRepo struct {
	q querier
}

func (r *adminsRepo) GetAdminByUsername(ctx context.Context, username string) (domain.Admin, error) {
	var a domain.Admin
	err := r.q.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins WHERE username = ?`, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return a, nil
}

func (r *adminsRepo) CreateAdmin(ctx context.Context, a domain.Admin) (domain.Admin, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO admins (username, password_hash) VALUES (?, ?)`,
		a.Username, a.PasswordHash)
	if err != nil {
		return domain.Admin{}, mapConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Admin{}, err
	}

	var created domain.Admin
	err = r.q.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins WHERE id = ?`, id).
		Scan(&created.ID, &created.Username, &created.PasswordHash,
			&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return created, nil
}

func (r *adminsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
