// Package state holds the current link-check result set.
//
// # Overview
//
// The submission controller writes and the UI reads. A check runs on a
// background goroutine while the UI keeps redrawing, so access goes through a
// readers-writer lock and every Snapshot is a copy.
//
// # Update Semantics
//
//	// Success: replace the whole result set
//	store.Update(req, results, nil)
//	→ snapshot.Results = results
//	→ snapshot.Generation++
//	→ snapshot.LastError = nil
//
//	// Failure: keep old results, record error
//	store.Update(req, nil, err)
//	→ snapshot.Results = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// Results are never merged. Generation lets a reader tell a new result set
// from a redraw of the old one.
//
// # Zero Value
//
// A zero Store is ready to use. Snapshot returns a zero Snapshot until the
// first Update.
package state
