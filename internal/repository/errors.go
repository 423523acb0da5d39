// Package repository implements the persistence layer on top of
// database/sql. Sentinel errors defined here let handlers distinguish
// failure kinds without inspecting driver errors: missing rows are
// reported as sql.ErrNoRows, ownership violations as ErrForbidden, and
// lost invoice-creation races as ErrDuplicateInvoice.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource administered or owned by someone else. Handlers translate
// this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicateUser is returned when registration collides with an
// existing email or username. Handlers translate this into HTTP 409.
var ErrDuplicateUser = errors.New("email or username already exists")

// ErrDuplicateInvoice is returned when an invoice insert hits the
// unique key on reservation_id, i.e. a concurrent request created the
// invoice first. Callers should re-read and return the existing row.
var ErrDuplicateInvoice = errors.New("invoice already exists for reservation")
