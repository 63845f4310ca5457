// Package submit validates the check form and runs one check at a time.
//
// A submission moves Idle → Validating → Submitting → Idle. Invalid input
// never reaches the backend: Validate returns FieldErrors keyed by form field
// and the controller drops back to Idle. While a check is in flight further
// submissions fail with ErrBusy.
//
// Each check is bounded by the configured timeout. A failed check is logged
// and recorded in the store, and the previous result set stays on screen.
package submit
