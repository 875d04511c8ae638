package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"chalet_booking/internal/domain"
)

// ---- in-memory fakes ----

type fakeRepo struct {
	nextID int64
	rows   []domain.Reservation
	prices []domain.PriceOverride
}

func (f *fakeRepo) Insert(_ context.Context, r domain.Reservation) (int64, error) {
	f.nextID++
	r.ID = f.nextID
	if r.Status == "" {
		r.Status = domain.StatusReserved
	}
	f.rows = append(f.rows, r)
	return r.ID, nil
}

func (f *fakeRepo) Update(_ context.Context, r domain.Reservation) error {
	for i := range f.rows {
		if f.rows[i].ID == r.ID {
			f.rows[i].Unit = r.Unit
			f.rows[i].Checkin = r.Checkin
			f.rows[i].Checkout = r.Checkout
			f.rows[i].DailyRate = r.DailyRate
			f.rows[i].Notes = r.Notes
			return nil
		}
	}
	return nil // zero rows affected is not an error
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRepo) SetPrice(_ context.Context, unit, date string, value float64) error {
	kept := f.prices[:0]
	for _, p := range f.prices {
		if !(p.Unit == unit && p.Date == date) {
			kept = append(kept, p)
		}
	}
	f.prices = append(kept, domain.PriceOverride{Unit: unit, Date: date, Value: value})
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (domain.Reservation, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Reservation{}, domain.ErrNotFound
}

func (f *fakeRepo) List(_ context.Context) ([]domain.Reservation, error) {
	out := make([]domain.Reservation, len(f.rows))
	copy(out, f.rows)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Checkin != out[j].Checkin {
			return out[i].Checkin > out[j].Checkin
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeRepo) ListByCheckinMonth(_ context.Context, unit string, year, month int) ([]domain.Reservation, error) {
	prefix := isoMonthPrefix(year, month)
	var out []domain.Reservation
	for _, r := range f.rows { // insertion order == id order
		if r.Unit == unit && strings.HasPrefix(r.Checkin, prefix) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) OverridesForMonth(_ context.Context, unit string, year, month int) (map[string]float64, error) {
	prefix := isoMonthPrefix(year, month)
	out := make(map[string]float64)
	for _, p := range f.prices {
		if p.Unit == unit && strings.HasPrefix(p.Date, prefix) {
			out[p.Date] = p.Value
		}
	}
	return out, nil
}

func (f *fakeRepo) FindBlockContaining(_ context.Context, unit, date string) (domain.Reservation, error) {
	for _, r := range f.rows {
		if r.Unit == unit && r.Status == domain.StatusBlocked && r.Checkin <= date && date <= r.Checkout {
			return r, nil
		}
	}
	return domain.Reservation{}, domain.ErrNotFound
}

// overrideRows counts stored override rows for (unit, date).
func (f *fakeRepo) overrideRows(unit, date string) int {
	n := 0
	for _, p := range f.prices {
		if p.Unit == unit && p.Date == date {
			n++
		}
	}
	return n
}

func isoMonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}

// fakeCache keeps JSON blobs, no TTL. Entries persist until deleted, so a
// stale read after a missed invalidation is visible to tests.
type fakeCache struct{ store map[string][]byte }

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	delete(c.store, key)
	return nil
}
