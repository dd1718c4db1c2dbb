package service

import "errors"

var (
	// ErrNotStarted is returned when the service is used before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrNoSource is returned when no prospect source is configured.
	ErrNoSource = errors.New("no prospect source configured")
	// ErrNoSnapshotStore is returned when no snapshot store is configured.
	ErrNoSnapshotStore = errors.New("no snapshot store configured")
)
