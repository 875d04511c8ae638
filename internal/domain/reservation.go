package domain

// Reservation row statuses. Stored as free text; empty defaults to reserved.
const (
	StatusReserved = "reserved"
	StatusBlocked  = "blocked"
)

// Per-day calendar statuses derived at read time.
const (
	DayAvailable = "available"
	DayOccupied  = "occupied"
	DayBlocked   = "blocked"
)

// BlockNote marks the synthetic single-day rows created by the block toggle.
const BlockNote = "Manual block"

// Reservation covers the inclusive date span [Checkin, Checkout].
// Dates are raw ISO strings (YYYY-MM-DD); the store does not validate them
// and overlapping spans for the same unit are allowed. Administrative blocks
// share this table: StatusBlocked, zero rate, empty guest name.
type Reservation struct {
	ID        int64
	Unit      string
	Checkin   string
	Checkout  string
	DailyRate float64
	GuestName string
	Status    string
	Notes     string
}

// Blocked reports whether the row is an administrative block rather than a
// guest booking.
func (r Reservation) Blocked() bool { return r.Status == StatusBlocked }

// PriceOverride sets the displayed price for one (unit, date) pair. At most
// one per pair is intended, kept by delete-then-insert on write.
type PriceOverride struct {
	ID    int64
	Unit  string
	Date  string
	Value float64
}

// DayState is one calendar day in a month view.
type DayState struct {
	Date   string  `json:"date"`
	Status string  `json:"status"`
	Price  float64 `json:"price"`
}
