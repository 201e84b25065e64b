package domain

import "context"

// Store is the record platform surface the rules read and write through
type Store interface {
	// Retrieve loads one record; with no fields listed every field is returned
	Retrieve(ctx context.Context, entity, id string, fields ...string) (Record, error)

	// Update overwrites the named fields, leaving others untouched
	Update(ctx context.Context, entity, id string, fields map[string]any) error

	// Create inserts a record and returns its id
	Create(ctx context.Context, entity string, fields map[string]any) (string, error)

	// Query returns records whose fields equal every filter; top <= 0 means no limit
	Query(ctx context.Context, entity string, filters map[string]any, top int) ([]Record, error)
}
