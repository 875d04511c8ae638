package domain

import "context"

type ReservationRepository interface {
	// Write paths
	Insert(ctx context.Context, r Reservation) (int64, error)
	Update(ctx context.Context, r Reservation) error
	Delete(ctx context.Context, id int64) error
	SetPrice(ctx context.Context, unit, date string, value float64) error

	// Read paths
	Get(ctx context.Context, id int64) (Reservation, error)
	List(ctx context.Context) ([]Reservation, error)
	ListByCheckinMonth(ctx context.Context, unit string, year, month int) ([]Reservation, error)
	OverridesForMonth(ctx context.Context, unit string, year, month int) (map[string]float64, error)
	FindBlockContaining(ctx context.Context, unit, date string) (Reservation, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
