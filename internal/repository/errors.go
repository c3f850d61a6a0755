// Package repository implements persistence over MySQL. Sentinel errors
// shared by several repositories live here so handlers can distinguish
// failure cases with errors.Is; slot-specific sentinels belong to the
// booking package because they are part of the SlotStore contract.
package repository

import "errors"

// ErrEmailExists is returned when registering an email that is already
// taken. Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
