// Package common defines shared constants and sentinel errors used across
// DevPulse components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Local store errors. Storage faults are fatal and surfaced to the caller.
	ErrStorage = errors.New("local storage fault")

	// Remote gateway errors. All transient-network-class: the local write has
	// already succeeded, so these never propagate past the sync engine.
	ErrRemoteWrite  = errors.New("remote write failed")
	ErrRemoteRead   = errors.New("remote read failed")
	ErrRemoteDelete = errors.New("remote delete failed")

	// ErrQueueMapping indicates a queued operation whose collection has no
	// table mapping. Logged and skipped, never aborts a drain.
	ErrQueueMapping = errors.New("queue mapping unresolved")

	// ErrNotFound is a logical error (e.g. toggling an absent learning item).
	ErrNotFound = errors.New("not found")
)
