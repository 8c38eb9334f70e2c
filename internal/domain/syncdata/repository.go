package syncdata

import "context"

// Repository defines persistence operations for sync snapshots.
// Snapshots are append-only; there is deliberately no read or delete.
type Repository interface {
	Append(ctx context.Context, s *Snapshot) error
}
