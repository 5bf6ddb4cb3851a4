package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
)

type guestsRepo struct {
	q querier
}

const guestColumns = `id, name, phone_number, unique_code, rsvp_status,
	email, dietary_restrictions, notes, is_family, plus_one_count,
	device_id, device_id_2, invite_sent, created_at, updated_at`

func scanGuest(row interface{ Scan(...any) error }) (domain.Guest, error) {
	var (
		g                        domain.Guest
		status                   string
		email, dietary, notes    sql.NullString
		deviceOne, deviceTwo     sql.NullString
	)
	err := row.Scan(
		&g.ID, &g.Name, &g.PhoneNumber, &g.UniqueCode, &status,
		&email, &dietary, &notes, &g.IsFamily, &g.PlusOneCount,
		&deviceOne, &deviceTwo, &g.InviteSent, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return domain.Guest{}, err
	}

	g.RSVPStatus = domain.RSVPStatus(status)
	g.Email = mapNullString(email)
	g.DietaryRestrictions = mapNullString(dietary)
	g.Notes = mapNullString(notes)
	g.DeviceIDs[0] = nullAsEmpty(deviceOne)
	g.DeviceIDs[1] = nullAsEmpty(deviceTwo)
	return g, nil
}

func (r *guestsRepo) CreateGuest(ctx context.Context, g domain.Guest) (domain.Guest, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO guests (name, phone_number, unique_code, rsvp_status)
		VALUES (?, ?, ?, ?)`,
		g.Name, g.PhoneNumber, g.UniqueCode, string(domain.RSVPPending),
	)
	if err != nil {
		return domain.Guest{}, mapConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Guest{}, err
	}
	return r.GetGuestByID(ctx, id)
}

func (r *guestsRepo) GetGuestByID(ctx context.Context, id int64) (domain.Guest, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE id = ?`, id)
	g, err := scanGuest(row)
	if err != nil {
		return domain.Guest{}, mapNotFound(err)
	}
	return g, nil
}

func (r *guestsRepo) GetGuestByCode(ctx context.Context, code string) (domain.Guest, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE unique_code = ?`, code)
	g, err := scanGuest(row)
	if err != nil {
		return domain.Guest{}, mapNotFound(err)
	}
	return g, nil
}

func (r *guestsRepo) GetGuestByDeviceID(ctx context.Context, deviceID string) (domain.Guest, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE device_id = ? OR device_id_2 = ?`,
		deviceID, deviceID)
	g, err := scanGuest(row)
	if err != nil {
		return domain.Guest{}, mapNotFound(err)
	}
	return g, nil
}

func (r *guestsRepo) ListGuests(ctx context.Context, offset, limit int) ([]domain.Guest, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+guestColumns+` FROM guests ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGuests(rows)
}

func (r *guestsRepo) AllGuests(ctx context.Context) ([]domain.Guest, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+guestColumns+` FROM guests ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGuests(rows)
}

func collectGuests(rows *sql.Rows) ([]domain.Guest, error) {
	guests := make([]domain.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *guestsRepo) UpdateGuestRSVP(
	ctx context.Context,
	code string,
	upd domain.RSVPUpdate,
) (domain.Guest, error) {
	set := []string{"rsvp_status = ?", "updated_at = CURRENT_TIMESTAMP"}
	args := []any{string(upd.Status)}

	if upd.Notes != nil {
		set = append(set, "notes = ?")
		args = append(args, *upd.Notes)
	}
	if upd.Email != nil {
		set = append(set, "email = ?")
		args = append(args, *upd.Email)
	}
	if upd.DietaryRestrictions != nil {
		set = append(set, "dietary_restrictions = ?")
		args = append(args, *upd.DietaryRestrictions)
	}
	if upd.IsFamily != nil {
		set = append(set, "is_family = ?")
		args = append(args, *upd.IsFamily)
	}
	if upd.PlusOneCount != nil {
		set = append(set, "plus_one_count = ?")
		args = append(args, *upd.PlusOneCount)
	}
	args = append(args, code)

	res, err := r.q.ExecContext(ctx,
		`UPDATE guests SET `+strings.Join(set, ", ")+` WHERE unique_code = ?`,
		args...)
	if err != nil {
		return domain.Guest{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.Guest{}, err
	} else if n == 0 {
		return domain.Guest{}, store.ErrNotFound
	}

	return r.GetGuestByCode(ctx, code)
}

// ClaimDeviceSlot is a single-row compare-and-set: the write only lands when
// the slot is still NULL and the device does not already hold the other slot.
// Two devices racing for the same slot cannot both win.
func (r *guestsRepo) ClaimDeviceSlot(
	ctx context.Context,
	code string,
	slot int,
	deviceID string,
) (bool, error) {
	var query string
	switch slot {
	case 0:
		query = `UPDATE guests SET device_id = ?, updated_at = CURRENT_TIMESTAMP
			WHERE unique_code = ? AND device_id IS NULL
			AND (device_id_2 IS NULL OR device_id_2 <> ?)`
	case 1:
		query = `UPDATE guests SET device_id_2 = ?, updated_at = CURRENT_TIMESTAMP
			WHERE unique_code = ? AND device_id_2 IS NULL
			AND (device_id IS NULL OR device_id <> ?)`
	default:
		return false, fmt.Errorf("sqlite: invalid device slot %d", slot)
	}

	res, err := r.q.ExecContext(ctx, query, deviceID, code, deviceID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *guestsRepo) DeleteGuest(ctx context.Context, code string) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM guests WHERE unique_code = ?`, code)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *guestsRepo) SetInviteSent(ctx context.Context, code string, sent bool) (domain.Guest, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE guests SET invite_sent = ?, updated_at = CURRENT_TIMESTAMP
		WHERE unique_code = ?`,
		sent, code)
	if err != nil {
		return domain.Guest{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.Guest{}, err
	} else if n == 0 {
		return domain.Guest{}, store.ErrNotFound
	}

	return r.GetGuestByCode(ctx, code)
}

func (r *guestsRepo) CountGuests(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM guests`).Scan(&count)
	return count, err
}
