package app

import (
	"context"
	"time"

	"chalet_booking/internal/domain"
)

type QueryService struct {
	repo     domain.ReservationRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ReservationRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// BuildCalendar returns one DayState per day of the requested month.
// Results are cached per (unit, year, month); every mutation in the command
// service deletes the affected keys, so a calendar read always reflects the
// latest write.
func (s *QueryService) BuildCalendar(ctx context.Context, unit string, year, month int) ([]domain.DayState, error) {
	key := calendarKey(unit, year, month)
	var days []domain.DayState
	if ok, _ := s.cache.Get(ctx, key, &days); ok {
		return days, nil
	}

	reservations, err := s.repo.ListByCheckinMonth(ctx, unit, year, month)
	if err != nil {
		return nil, err
	}
	overrides, err := s.repo.OverridesForMonth(ctx, unit, year, month)
	if err != nil {
		return nil, err
	}

	days = buildDays(year, month, reservations, overrides)
	_ = s.cache.Set(ctx, key, days, int(s.cacheTTL.Seconds()))
	return days, nil
}

// ListReservations returns all reservations ordered by check-in descending,
// for the administrative listing. Rows are returned raw; display formatting
// is a presentation concern.
func (s *QueryService) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	return s.repo.List(ctx)
}
