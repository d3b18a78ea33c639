// Package store persists the user-editable fun-fact lists, one document per state.
//
// Two implementations satisfy FunFactStore:
//   - GormStore: the production store, backed by PostgreSQL through GORM
//   - MemoryStore: an in-process map, used for local runs (STORE_DRIVER=memory) and tests
//
// Handlers depend only on the FunFactStore interface, so either can be injected at startup.
package store

import (
	"context"
	"errors"

	"github.com/trentd187/states-api/internal/models"
)

// Sentinel errors returned by every FunFactStore implementation.
// Handlers compare against these with errors.Is to choose an HTTP status.
var (
	// ErrDocumentNotFound means no fun-fact document exists for the state code.
	ErrDocumentNotFound = errors.New("fun fact document not found")
	// ErrIndexRequired means the caller did not supply an index at all.
	ErrIndexRequired = errors.New("fun fact index required")
	// ErrInvalidIndex means the index is outside [1, len(funFacts)].
	ErrInvalidIndex = errors.New("fun fact index out of range")
)

// FunFactStore is the persistence contract for fun-fact documents.
// Every code passed in must already be normalised to uppercase.
type FunFactStore interface {
	// Get returns the document for code, or ErrDocumentNotFound.
	Get(ctx context.Context, code string) (models.FunFactDocument, error)

	// List returns every stored document. Order is unspecified.
	List(ctx context.Context) ([]models.FunFactDocument, error)

	// Append adds facts to the end of the state's list, creating the document if
	// it does not exist yet. created reports whether a new document was made.
	Append(ctx context.Context, code string, facts []string) (doc models.FunFactDocument, created bool, err error)

	// Replace overwrites the fact at the 1-based index.
	Replace(ctx context.Context, code string, index *int, fact string) (models.FunFactDocument, error)

	// Remove deletes the fact at the 1-based index, shifting later entries left.
	Remove(ctx context.Context, code string, index *int) (models.FunFactDocument, error)
}

// resolveIndex converts a 1-based index from the request into a 0-based slice offset.
//
// A missing index is ErrIndexRequired. Anything outside [1, length], including 0 and
// negative values, is ErrInvalidIndex. Callers must have loaded the document first so
// that a missing document is reported before a bad index.
func resolveIndex(index *int, length int) (int, error) {
	if index == nil {
		return 0, ErrIndexRequired
	}
	if *index < 1 || *index > length {
		return 0, ErrInvalidIndex
	}
	return *index - 1, nil
}

// replaceAt returns a copy of facts with position i set to fact.
func replaceAt(facts []string, i int, fact string) []string {
	out := make([]string, len(facts))
	copy(out, facts)
	out[i] = fact
	return out
}

// removeAt returns a copy of facts without position i, preserving relative order.
func removeAt(facts []string, i int) []string {
	out := make([]string, 0, len(facts)-1)
	out = append(out, facts[:i]...)
	return append(out, facts[i+1:]...)
}
