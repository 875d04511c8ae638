package app_test

import (
	"context"
	"testing"

	"chalet_booking/internal/app"
	"chalet_booking/internal/domain"
)

func TestToggleBlocks_SingleDayRoundTrip(t *testing.T) {
	repo := &fakeRepo{}
	q, c := newServices(repo)
	ctx := context.Background()

	if err := c.ToggleBlocks(ctx, "Lakeview", []string{"2024-07-05"}); err != nil {
		t.Fatalf("ToggleBlocks on: %v", err)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("want 1 block row, got %d", len(repo.rows))
	}
	blk := repo.rows[0]
	if blk.Checkin != "2024-07-05" || blk.Checkout != "2024-07-05" ||
		blk.DailyRate != 0 || blk.GuestName != "" ||
		blk.Status != domain.StatusBlocked || blk.Notes != domain.BlockNote {
		t.Fatalf("unexpected block row: %+v", blk)
	}

	days, err := q.BuildCalendar(ctx, "Lakeview", 2024, 7)
	if err != nil {
		t.Fatalf("BuildCalendar: %v", err)
	}
	if indexDays(days)["2024-07-05"].Status != domain.DayBlocked {
		t.Fatalf("day not blocked after toggle")
	}

	if err := c.ToggleBlocks(ctx, "Lakeview", []string{"2024-07-05"}); err != nil {
		t.Fatalf("ToggleBlocks off: %v", err)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("block row not removed: %+v", repo.rows)
	}
	days, err = q.BuildCalendar(ctx, "Lakeview", 2024, 7)
	if err != nil {
		t.Fatalf("BuildCalendar: %v", err)
	}
	if indexDays(days)["2024-07-05"].Status != domain.DayAvailable {
		t.Fatalf("day not available after untoggle")
	}
}

func TestToggleBlocks_MultiDayBlockRemovedWhole(t *testing.T) {
	repo := &fakeRepo{}
	q, c := newServices(repo)
	ctx := context.Background()

	_, _ = repo.Insert(ctx, domain.Reservation{
		Unit: "Lakeview", Checkin: "2024-07-01", Checkout: "2024-07-05",
		Status: domain.StatusBlocked, Notes: domain.BlockNote,
	})

	// Toggling the middle day deletes the whole 5-day block.
	if err := c.ToggleBlocks(ctx, "Lakeview", []string{"2024-07-03"}); err != nil {
		t.Fatalf("ToggleBlocks: %v", err)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("whole block should be gone, got %+v", repo.rows)
	}
	days, err := q.BuildCalendar(ctx, "Lakeview", 2024, 7)
	if err != nil {
		t.Fatalf("BuildCalendar: %v", err)
	}
	byDate := indexDays(days)
	for _, d := range []string{"2024-07-01", "2024-07-02", "2024-07-03", "2024-07-04", "2024-07-05"} {
		if byDate[d].Status != domain.DayAvailable {
			t.Fatalf("%s: want available after block removal, got %s", d, byDate[d].Status)
		}
	}

	// Re-toggling the same day creates a one-day block only.
	if err := c.ToggleBlocks(ctx, "Lakeview", []string{"2024-07-03"}); err != nil {
		t.Fatalf("ToggleBlocks: %v", err)
	}
	if len(repo.rows) != 1 || repo.rows[0].Checkin != "2024-07-03" || repo.rows[0].Checkout != "2024-07-03" {
		t.Fatalf("want a single one-day block, got %+v", repo.rows)
	}
}

func TestToggleBlocks_Validation(t *testing.T) {
	_, c := newServices(&fakeRepo{})
	ctx := context.Background()

	if err := c.ToggleBlocks(ctx, "", []string{"2024-07-01"}); !domain.IsValidation(err) {
		t.Fatalf("empty unit: want validation error, got %v", err)
	}
	if err := c.ToggleBlocks(ctx, "Lakeview", nil); !domain.IsValidation(err) {
		t.Fatalf("no dates: want validation error, got %v", err)
	}
}

func TestSetPrices_Validation(t *testing.T) {
	_, c := newServices(&fakeRepo{})
	ctx := context.Background()

	if err := c.SetPrices(ctx, "", []string{"2024-07-01"}, pfloat(10)); !domain.IsValidation(err) {
		t.Fatalf("empty unit: want validation error, got %v", err)
	}
	if err := c.SetPrices(ctx, "Lakeview", nil, pfloat(10)); !domain.IsValidation(err) {
		t.Fatalf("no dates: want validation error, got %v", err)
	}
	if err := c.SetPrices(ctx, "Lakeview", []string{"2024-07-01"}, nil); !domain.IsValidation(err) {
		t.Fatalf("absent value: want validation error, got %v", err)
	}
	// Zero is a real price, not an absent one.
	if err := c.SetPrices(ctx, "Lakeview", []string{"2024-07-01"}, pfloat(0)); err != nil {
		t.Fatalf("zero value must be accepted, got %v", err)
	}
}

func TestSetPrices_ReplaceKeepsSingleRow(t *testing.T) {
	repo := &fakeRepo{}
	q, c := newServices(repo)
	ctx := context.Background()

	if err := c.SetPrices(ctx, "Lakeview", []string{"2024-07-01"}, pfloat(100)); err != nil {
		t.Fatalf("SetPrices: %v", err)
	}
	if err := c.SetPrices(ctx, "Lakeview", []string{"2024-07-01"}, pfloat(140)); err != nil {
		t.Fatalf("SetPrices: %v", err)
	}
	if n := repo.overrideRows("Lakeview", "2024-07-01"); n != 1 {
		t.Fatalf("want exactly one override row, got %d", n)
	}
	days, err := q.BuildCalendar(ctx, "Lakeview", 2024, 7)
	if err != nil {
		t.Fatalf("BuildCalendar: %v", err)
	}
	if p := indexDays(days)["2024-07-01"].Price; p != 140 {
		t.Fatalf("want latest value 140, got %v", p)
	}
}

func TestCreateOrUpdateReservation_CreateDefaults(t *testing.T) {
	repo := &fakeRepo{}
	_, c := newServices(repo)
	ctx := context.Background()

	id, err := c.CreateOrUpdateReservation(ctx, app.ReservationInput{
		Unit: "Lakeview", Checkin: "2024-07-10", Checkout: "2024-07-12", DailyRate: 200, Notes: "late arrival",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected generated id")
	}
	rv, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rv.Status != domain.StatusReserved || rv.GuestName != "" {
		t.Fatalf("create defaults wrong: %+v", rv)
	}
}

func TestCreateOrUpdateReservation_UpdateKeepsGuestAndStatus(t *testing.T) {
	repo := &fakeRepo{}
	_, c := newServices(repo)
	ctx := context.Background()

	id, _ := repo.Insert(ctx, domain.Reservation{
		Unit: "Lakeview", Checkin: "2024-07-10", Checkout: "2024-07-12",
		DailyRate: 200, GuestName: "Ana", Status: domain.StatusReserved,
	})

	if _, err := c.CreateOrUpdateReservation(ctx, app.ReservationInput{
		ID: id, Unit: "Hilltop", Checkin: "2024-08-01", Checkout: "2024-08-03", DailyRate: 220, Notes: "moved",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	rv, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rv.Unit != "Hilltop" || rv.Checkin != "2024-08-01" || rv.DailyRate != 220 || rv.Notes != "moved" {
		t.Fatalf("update did not apply: %+v", rv)
	}
	if rv.GuestName != "Ana" {
		t.Fatalf("update must not touch guest name, got %q", rv.GuestName)
	}
}

// No date-order or rate-sign checks: the store takes what it is given.
func TestCreateOrUpdateReservation_PermissiveFields(t *testing.T) {
	repo := &fakeRepo{}
	_, c := newServices(repo)
	ctx := context.Background()

	id, err := c.CreateOrUpdateReservation(ctx, app.ReservationInput{
		Unit: "Lakeview", Checkin: "2024-07-20", Checkout: "2024-07-10", DailyRate: -5,
	})
	if err != nil {
		t.Fatalf("permissive create rejected: %v", err)
	}
	rv, _ := repo.Get(ctx, id)
	if rv.Checkin != "2024-07-20" || rv.DailyRate != -5 {
		t.Fatalf("fields mangled: %+v", rv)
	}
}

func TestDeleteReservation_MissingIsNoop(t *testing.T) {
	_, c := newServices(&fakeRepo{})
	if err := c.DeleteReservation(context.Background(), 9999); err != nil {
		t.Fatalf("missing id must be a no-op, got %v", err)
	}
}

func TestMutationsInvalidateCalendarCache(t *testing.T) {
	repo := &fakeRepo{}
	q, c := newServices(repo)
	ctx := context.Background()

	// Prime the cache with an empty month.
	if _, err := q.BuildCalendar(ctx, "Lakeview", 2024, 7); err != nil {
		t.Fatalf("BuildCalendar: %v", err)
	}

	if err := c.SetPrices(ctx, "Lakeview", []string{"2024-07-01"}, pfloat(120)); err != nil {
		t.Fatalf("SetPrices: %v", err)
	}
	days, err := q.BuildCalendar(ctx, "Lakeview", 2024, 7)
	if err != nil {
		t.Fatalf("BuildCalendar: %v", err)
	}
	if indexDays(days)["2024-07-01"].Price != 120 {
		t.Fatalf("price mutation not visible on next read")
	}

	if err := c.ToggleBlocks(ctx, "Lakeview", []string{"2024-07-02"}); err != nil {
		t.Fatalf("ToggleBlocks: %v", err)
	}
	days, _ = q.BuildCalendar(ctx, "Lakeview", 2024, 7)
	if indexDays(days)["2024-07-02"].Status != domain.DayBlocked {
		t.Fatalf("block mutation not visible on next read")
	}

	id, err := c.CreateOrUpdateReservation(ctx, app.ReservationInput{
		Unit: "Lakeview", Checkin: "2024-07-10", Checkout: "2024-07-11", DailyRate: 200,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	days, _ = q.BuildCalendar(ctx, "Lakeview", 2024, 7)
	if indexDays(days)["2024-07-10"].Status != domain.DayOccupied {
		t.Fatalf("reservation not visible on next read")
	}

	if err := c.DeleteReservation(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	days, _ = q.BuildCalendar(ctx, "Lakeview", 2024, 7)
	if indexDays(days)["2024-07-10"].Status != domain.DayAvailable {
		t.Fatalf("deletion not visible on next read")
	}
}
