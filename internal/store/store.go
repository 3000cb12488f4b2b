// Package store abstracts the Firestore document database behind a small
// query/mutation interface so repositories can be exercised against an
// in-memory implementation in tests and local development.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is a single record of a collection, keyed by a store-assigned id.
type Document struct {
	ID   string
	Data map[string]any
}

// Filter is an equality or range predicate on a named field.
// Op is one of "==", "!=", "<", "<=", ">", ">=".
type Filter struct {
	Field string
	Op    string
	Value any
}

// Query describes a filtered read of one collection with an optional
// server-side ordering.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Desc       bool
}

// Store is the document-store boundary. Implementations must map their
// native "no such document" failure to ErrNotFound on Get and Update.
type Store interface {
	// Get reads one document.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Set writes a full document at a caller-chosen id, replacing any
	// existing content.
	Set(ctx context.Context, collection, id string, fields map[string]any) error

	// Add writes a new document under a store-generated id.
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)

	// Update merges the given fields into an existing document. The target
	// must already exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Delete removes a document. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Run executes a query and returns the matching documents.
	Run(ctx context.Context, q Query) ([]Document, error)

	Close() error
}

// Fields flattens a domain struct into a write payload keyed by its JSON
// field names. Optional fields tagged omitempty drop out when unset.
func Fields(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return fields, nil
}

// Decode maps raw document data onto a typed struct via its JSON tags.
func Decode(data map[string]any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
