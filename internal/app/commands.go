package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"chalet_booking/internal/domain"
)

// ReservationInput carries the form fields of a create or update. ID zero
// means create. Guest name is deliberately absent: new rows get an empty
// guest name and updates leave the stored one untouched.
type ReservationInput struct {
	ID        int64
	Unit      string
	Checkin   string
	Checkout  string
	DailyRate float64
	Notes     string
}

type CommandService struct {
	repo  domain.ReservationRepository
	cache domain.Cache
}

func NewCommandService(r domain.ReservationRepository, c domain.Cache) *CommandService {
	return &CommandService{repo: r, cache: c}
}

// CreateOrUpdateReservation inserts a new reservation or, when in.ID is set,
// rewrites unit/checkin/checkout/rate/notes of the existing row. No semantic
// validation happens here: date ordering and rate sign are accepted as given.
func (s *CommandService) CreateOrUpdateReservation(ctx context.Context, in ReservationInput) (int64, error) {
	if in.ID != 0 {
		// The row may move to another unit or month; invalidate where it
		// was before rewriting it.
		if prev, err := s.repo.Get(ctx, in.ID); err == nil {
			s.invalidateMonth(ctx, prev.Unit, prev.Checkin)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return 0, err
		}
		if err := s.repo.Update(ctx, domain.Reservation{
			ID:        in.ID,
			Unit:      in.Unit,
			Checkin:   in.Checkin,
			Checkout:  in.Checkout,
			DailyRate: in.DailyRate,
			Notes:     in.Notes,
		}); err != nil {
			return 0, err
		}
		s.invalidateMonth(ctx, in.Unit, in.Checkin)
		return in.ID, nil
	}

	id, err := s.repo.Insert(ctx, domain.Reservation{
		Unit:      in.Unit,
		Checkin:   in.Checkin,
		Checkout:  in.Checkout,
		DailyRate: in.DailyRate,
		GuestName: "",
		Status:    domain.StatusReserved,
		Notes:     in.Notes,
	})
	if err != nil {
		return 0, err
	}
	s.invalidateMonth(ctx, in.Unit, in.Checkin)
	return id, nil
}

// DeleteReservation removes the row if present. A missing id is a no-op.
func (s *CommandService) DeleteReservation(ctx context.Context, id int64) error {
	prev, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateMonth(ctx, prev.Unit, prev.Checkin)
	return nil
}

// SetPrices replaces the override for every (unit, date) pair with value.
// A value of zero is valid; absence is rejected at the boundary, which passes
// nil in that case.
func (s *CommandService) SetPrices(ctx context.Context, unit string, dates []string, value *float64) error {
	if unit == "" {
		return domain.Invalid("unit")
	}
	if len(dates) == 0 {
		return domain.Invalid("dates")
	}
	if value == nil {
		return domain.Invalid("value")
	}
	for _, d := range dates {
		if err := s.repo.SetPrice(ctx, unit, d, *value); err != nil {
			return err
		}
		s.invalidateMonth(ctx, unit, d)
	}
	return nil
}

// ToggleBlocks flips the block state of each date independently. A date
// inside an existing block deletes that block row whole, even when it spans
// several days; otherwise a single-day zero-rate block row is inserted.
// Re-toggling a day of a deleted multi-day block therefore recreates only a
// one-day block.
func (s *CommandService) ToggleBlocks(ctx context.Context, unit string, dates []string) error {
	if unit == "" {
		return domain.Invalid("unit")
	}
	if len(dates) == 0 {
		return domain.Invalid("dates")
	}
	for _, d := range dates {
		blk, err := s.repo.FindBlockContaining(ctx, unit, d)
		switch {
		case err == nil:
			if err := s.repo.Delete(ctx, blk.ID); err != nil {
				return err
			}
			log.Info().
				Int64("id", blk.ID).
				Str("unit", unit).
				Str("date", d).
				Str("span", blk.Checkin+".."+blk.Checkout).
				Msg("block removed")
			s.invalidateMonth(ctx, unit, blk.Checkin)
		case errors.Is(err, domain.ErrNotFound):
			if _, err := s.repo.Insert(ctx, domain.Reservation{
				Unit:      unit,
				Checkin:   d,
				Checkout:  d,
				DailyRate: 0,
				GuestName: "",
				Status:    domain.StatusBlocked,
				Notes:     domain.BlockNote,
			}); err != nil {
				return err
			}
			s.invalidateMonth(ctx, unit, d)
		default:
			return err
		}
	}
	return nil
}

// ImportReservation inserts a fully specified row from a bulk import,
// keeping the source record's guest name and status.
func (s *CommandService) ImportReservation(ctx context.Context, r domain.Reservation) (int64, error) {
	if r.Status == "" {
		r.Status = domain.StatusReserved
	}
	id, err := s.repo.Insert(ctx, r)
	if err != nil {
		return 0, err
	}
	s.invalidateMonth(ctx, r.Unit, r.Checkin)
	return id, nil
}

// invalidateMonth drops the cached calendar for the month the date belongs
// to. A reservation only ever surfaces in its check-in month (the month
// fetch filters on check-in), so one key per mutation is enough.
func (s *CommandService) invalidateMonth(ctx context.Context, unit, date string) {
	y, m, ok := monthOf(date)
	if !ok {
		// A date the month filter can't match never surfaces on a calendar.
		return
	}
	_ = s.cache.Del(ctx, calendarKey(unit, y, m))
}
