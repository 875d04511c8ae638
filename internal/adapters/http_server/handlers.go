package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"chalet_booking/internal/adapters/observability"
	"chalet_booking/internal/app"
	"chalet_booking/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	C *app.CommandService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/calendar/{unit}/{year}/{month}", h.getCalendar)
	s.mux.Post("/api/set_price", h.setPrice)
	s.mux.Post("/api/block", h.toggleBlock)
	s.mux.Post("/api/delete_reservation", h.deleteReservation)
	s.mux.Post("/reservations", h.upsertReservation)
	s.mux.Get("/admin", h.listReservations)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeInvalid(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid parameters"})
}

// writeCommandErr maps a command-service error: validation failures are 400,
// everything else is a storage failure and fails the request.
func writeCommandErr(w http.ResponseWriter, err error) {
	if domain.IsValidation(err) {
		writeInvalid(w)
		return
	}
	log.Error().Err(err).Msg("command failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func (h *Handlers) getCalendar(w http.ResponseWriter, r *http.Request) {
	unit := chi.URLParam(r, "unit")
	year, yerr := strconv.Atoi(chi.URLParam(r, "year"))
	month, merr := strconv.Atoi(chi.URLParam(r, "month"))
	if yerr != nil || merr != nil || month < 1 || month > 12 {
		writeInvalid(w)
		return
	}
	days, err := h.Q.BuildCalendar(r.Context(), unit, year, month)
	if err != nil {
		log.Error().Err(err).Str("unit", unit).Msg("build calendar failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (h *Handlers) setPrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Unit  string   `json:"unit"`
		Dates []string `json:"dates"`
		Value *float64 `json:"value"` // pointer: 0 is a valid price, absence is not
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w)
		return
	}
	if err := h.C.SetPrices(r.Context(), req.Unit, req.Dates, req.Value); err != nil {
		writeCommandErr(w, err)
		return
	}
	observability.ObserveMutation("set_price")
	writeOK(w)
}

func (h *Handlers) toggleBlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Unit  string   `json:"unit"`
		Dates []string `json:"dates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w)
		return
	}
	if err := h.C.ToggleBlocks(r.Context(), req.Unit, req.Dates); err != nil {
		writeCommandErr(w, err)
		return
	}
	observability.ObserveMutation("toggle_block")
	writeOK(w)
}

func (h *Handlers) deleteReservation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID *int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == nil {
		writeInvalid(w)
		return
	}
	if err := h.C.DeleteReservation(r.Context(), *req.ID); err != nil {
		writeCommandErr(w, err)
		return
	}
	observability.ObserveMutation("delete_reservation")
	writeOK(w)
}

// upsertReservation handles the admin form post. Only the presence of
// unit/checkin/checkout is checked; date ordering and rate sign are not.
func (h *Handlers) upsertReservation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeInvalid(w)
		return
	}
	unit := r.PostFormValue("unit")
	checkin := r.PostFormValue("checkin")
	checkout := r.PostFormValue("checkout")
	if unit == "" || checkin == "" || checkout == "" {
		writeInvalid(w)
		return
	}
	rate, _ := strconv.ParseFloat(r.PostFormValue("rate"), 64)

	in := app.ReservationInput{
		Unit:      unit,
		Checkin:   checkin,
		Checkout:  checkout,
		DailyRate: rate,
		Notes:     r.PostFormValue("notes"),
	}
	if idStr := r.PostFormValue("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			writeInvalid(w)
			return
		}
		in.ID = id
	}

	if _, err := h.C.CreateOrUpdateReservation(r.Context(), in); err != nil {
		writeCommandErr(w, err)
		return
	}
	observability.ObserveMutation("upsert_reservation")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

type reservationRow struct {
	ID              int64   `json:"id"`
	Unit            string  `json:"unit"`
	Checkin         string  `json:"checkin"`
	Checkout        string  `json:"checkout"`
	CheckinDisplay  string  `json:"checkin_display"`
	CheckoutDisplay string  `json:"checkout_display"`
	DailyRate       float64 `json:"daily_rate"`
	GuestName       string  `json:"guest_name"`
	Status          string  `json:"status"`
	Notes           string  `json:"notes"`
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Q.ListReservations(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list reservations failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	rows := make([]reservationRow, 0, len(rs))
	for _, rv := range rs {
		rows = append(rows, reservationRow{
			ID:              rv.ID,
			Unit:            rv.Unit,
			Checkin:         rv.Checkin,
			Checkout:        rv.Checkout,
			CheckinDisplay:  formatDate(rv.Checkin),
			CheckoutDisplay: formatDate(rv.Checkout),
			DailyRate:       rv.DailyRate,
			GuestName:       rv.GuestName,
			Status:          rv.Status,
			Notes:           rv.Notes,
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

// formatDate renders an ISO date as dd/mm/yyyy for the admin listing.
// Anything that does not parse comes back unchanged.
func formatDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}
