package mysql

const insertReservationSQL = `
INSERT INTO reservations
  (unit, checkin, checkout, daily_rate, guest_name, status, notes)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

// Guest name and status are deliberately not touched on update.
const updateReservationSQL = `
UPDATE reservations
SET unit       = ?,
    checkin    = ?,
    checkout   = ?,
    daily_rate = ?,
    notes      = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const deleteReservationSQL = `DELETE FROM reservations WHERE id = ?`

const reservationColumns = `id, unit, checkin, checkout, daily_rate, guest_name, status, notes`

const getReservationSQL = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE id = ?
`

const listReservationsSQL = `
SELECT ` + reservationColumns + `
FROM reservations
ORDER BY checkin DESC, id DESC
`

// The month filter matches on the check-in only, so a stay spanning a month
// boundary belongs exclusively to its check-in month's view. ORDER BY id
// pins the first-match-wins tie-break to insertion order.
const listByCheckinMonthSQL = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE unit = ? AND checkin LIKE ?
ORDER BY id
`

const overridesForMonthSQL = `
SELECT date, value
FROM price_overrides
WHERE unit = ? AND date LIKE ?
`

const findBlockContainingSQL = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE unit = ? AND status = 'blocked' AND checkin <= ? AND checkout >= ?
ORDER BY id
LIMIT 1
`

// At most one override per (unit, date): replace by delete-then-insert.
const deleteOverrideSQL = `DELETE FROM price_overrides WHERE unit = ? AND date = ?`
const insertOverrideSQL = `INSERT INTO price_overrides (unit, date, value) VALUES (?, ?, ?)`
