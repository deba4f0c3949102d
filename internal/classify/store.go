package classify

import "context"

// Store is the persistence interface for classification records.
type Store interface {
	Get(ctx context.Context, id string) (*Record, bool, error)
	Put(ctx context.Context, r *Record) error
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]*Record, error)
}
