// Package store persists workflow definitions by workflow id.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow"
)

// Store persists workflow definitions.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the definition under id, replacing any previous version.
	Save(ctx context.Context, id string, def workflow.Definition) error

	// Load retrieves a definition.
	// Returns ErrNotFound if nothing is stored under id.
	Load(ctx context.Context, id string) (workflow.Definition, error)

	// List returns metadata for every stored definition, ordered by id.
	// Returns an empty slice (not error) when the store is empty.
	List(ctx context.Context) ([]Info, error)

	// Delete removes a definition.
	// Returns nil if nothing is stored under id.
	Delete(ctx context.Context, id string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes a stored definition without loading it.
type Info struct {
	ID        string
	Nodes     int
	Edges     int
	Size      int64
	UpdatedAt time.Time
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no definition is stored under the id.
	ErrNotFound = errors.New("workflow definition not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("workflow store closed")

	// ErrEmptyID indicates an empty workflow id.
	ErrEmptyID = errors.New("workflow id cannot be empty")
)

// record is the encoded form shared by the SQL stores.
type record struct {
	info Info
	data []byte
}

func encode(id string, def workflow.Definition) (record, error) {
	if id == "" {
		return record{}, ErrEmptyID
	}
	data, err := def.Marshal()
	if err != nil {
		return record{}, fmt.Errorf("encode definition %s: %w", id, err)
	}
	return record{
		info: Info{
			ID:        id,
			Nodes:     len(def.Nodes),
			Edges:     len(def.Edges),
			Size:      int64(len(data)),
			UpdatedAt: time.Now().UTC(),
		},
		data: data,
	}, nil
}

func decode(id string, data []byte) (workflow.Definition, error) {
	def, err := workflow.ParseDefinition(data)
	if err != nil {
		return workflow.Definition{}, fmt.Errorf("decode definition %s: %w", id, err)
	}
	return def, nil
}
