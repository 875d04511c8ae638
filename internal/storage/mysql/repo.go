package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"chalet_booking/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// monthPattern builds the LIKE pattern matching ISO dates of one month.
func monthPattern(year, month int) string {
	return fmt.Sprintf("%04d-%02d-%%", year, month)
}

func (r *Repo) Insert(ctx context.Context, rv domain.Reservation) (int64, error) {
	status := rv.Status
	if status == "" {
		status = domain.StatusReserved
	}
	res, err := r.db.ExecContext(ctx, insertReservationSQL,
		rv.Unit, rv.Checkin, rv.Checkout, rv.DailyRate, rv.GuestName, status, rv.Notes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) Update(ctx context.Context, rv domain.Reservation) error {
	// Zero rows affected (missing id or identical values) is not an error.
	_, err := r.db.ExecContext(ctx, updateReservationSQL,
		rv.Unit, rv.Checkin, rv.Checkout, rv.DailyRate, rv.Notes, rv.ID)
	return err
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, deleteReservationSQL, id)
	return err
}

func (r *Repo) SetPrice(ctx context.Context, unit, date string, value float64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, deleteOverrideSQL, unit, date); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, insertOverrideSQL, unit, date, value); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *Repo) Get(ctx context.Context, id int64) (domain.Reservation, error) {
	return scanReservation(r.db.QueryRowContext(ctx, getReservationSQL, id))
}

func (r *Repo) List(ctx context.Context) ([]domain.Reservation, error) {
	return r.queryReservations(ctx, listReservationsSQL)
}

func (r *Repo) ListByCheckinMonth(ctx context.Context, unit string, year, month int) ([]domain.Reservation, error) {
	return r.queryReservations(ctx, listByCheckinMonthSQL, unit, monthPattern(year, month))
}

func (r *Repo) OverridesForMonth(ctx context.Context, unit string, year, month int) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx, overridesForMonthSQL, unit, monthPattern(year, month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var date string
		var value float64
		if err := rows.Scan(&date, &value); err != nil {
			return nil, err
		}
		out[date] = value
	}
	return out, rows.Err()
}

func (r *Repo) FindBlockContaining(ctx context.Context, unit, date string) (domain.Reservation, error) {
	return scanReservation(r.db.QueryRowContext(ctx, findBlockContainingSQL, unit, date, date))
}

func (r *Repo) queryReservations(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		rv, err := scanReservationRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanReservationRow(row rowScanner) (domain.Reservation, error) {
	var rv domain.Reservation
	var guest, status, notes sql.NullString
	if err := row.Scan(
		&rv.ID, &rv.Unit, &rv.Checkin, &rv.Checkout, &rv.DailyRate,
		&guest, &status, &notes,
	); err != nil {
		return domain.Reservation{}, err
	}
	rv.GuestName = guest.String
	rv.Status = status.String
	if rv.Status == "" {
		rv.Status = domain.StatusReserved
	}
	rv.Notes = notes.String
	return rv, nil
}

func scanReservation(row *sql.Row) (domain.Reservation, error) {
	rv, err := scanReservationRow(row)
	if err == sql.ErrNoRows {
		return domain.Reservation{}, domain.ErrNotFound
	}
	return rv, err
}
