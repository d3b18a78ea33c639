package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/trentd187/states-api/internal/models"
	"gorm.io/gorm"
	// clause lets us add ON CONFLICT, RETURNING and FOR UPDATE to GORM queries
	"gorm.io/gorm/clause"
)

// GormStore is the PostgreSQL-backed FunFactStore.
//
// Appends are one atomic upsert. Replace and Remove lock the row with
// SELECT ... FOR UPDATE inside a transaction, so two concurrent edits to the
// same state are applied one after the other instead of overwriting each other.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open GORM handle (see database.Connect).
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// notFound translates GORM's "no rows" error into our sentinel.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDocumentNotFound
	}
	return err
}

func (s *GormStore) Get(ctx context.Context, code string) (models.FunFactDocument, error) {
	var doc models.FunFactDocument
	err := s.db.WithContext(ctx).Where("state_code = ?", code).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FunFactDocument{}, ErrDocumentNotFound
		}
		return models.FunFactDocument{}, fmt.Errorf("get fun facts for %s: %w", code, err)
	}
	return doc, nil
}

func (s *GormStore) List(ctx context.Context) ([]models.FunFactDocument, error) {
	var docs []models.FunFactDocument
	if err := s.db.WithContext(ctx).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list fun facts: %w", err)
	}
	return docs, nil
}

// Append inserts the document or, if the state already has one, concatenates the
// new facts onto the stored array in the same statement:
//
//	INSERT INTO fun_facts (...) VALUES (...)
//	ON CONFLICT (state_code) DO UPDATE
//	SET fun_facts = fun_facts.fun_facts || EXCLUDED.fun_facts, updated_at = EXCLUDED.updated_at
//	RETURNING *
func (s *GormStore) Append(ctx context.Context, code string, facts []string) (models.FunFactDocument, bool, error) {
	doc := models.FunFactDocument{
		StateCode: code,
		FunFacts:  pq.StringArray(facts),
	}

	err := s.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "state_code"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"fun_facts":  gorm.Expr("fun_facts.fun_facts || EXCLUDED.fun_facts"),
				"updated_at": gorm.Expr("EXCLUDED.updated_at"),
			}),
		},
		clause.Returning{},
	).Create(&doc).Error
	if err != nil {
		return models.FunFactDocument{}, false, fmt.Errorf("append fun facts for %s: %w", code, err)
	}

	// GORM stamps CreatedAt and UpdatedAt with the same instant on insert. On the
	// conflict path RETURNING brings back the original created_at, so the two differ.
	created := doc.CreatedAt.Equal(doc.UpdatedAt)
	return doc, created, nil
}

func (s *GormStore) Replace(ctx context.Context, code string, index *int, fact string) (models.FunFactDocument, error) {
	return s.edit(ctx, code, index, func(facts []string, i int) []string {
		return replaceAt(facts, i, fact)
	})
}

func (s *GormStore) Remove(ctx context.Context, code string, index *int) (models.FunFactDocument, error) {
	return s.edit(ctx, code, index, removeAt)
}

// edit runs a positional change under a row lock. The document is loaded before the
// index is checked, so a missing document always wins over a bad index.
func (s *GormStore) edit(ctx context.Context, code string, index *int, change func(facts []string, i int) []string) (models.FunFactDocument, error) {
	var doc models.FunFactDocument

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("state_code = ?", code).
			First(&doc).Error
		if err != nil {
			return notFound(err)
		}

		i, err := resolveIndex(index, len(doc.FunFacts))
		if err != nil {
			return err // Returning an error rolls the transaction back
		}

		doc.FunFacts = change(doc.FunFacts, i)
		return tx.Model(&doc).Update("fun_facts", doc.FunFacts).Error
	})
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) || errors.Is(err, ErrIndexRequired) || errors.Is(err, ErrInvalidIndex) {
			return models.FunFactDocument{}, err
		}
		return models.FunFactDocument{}, fmt.Errorf("edit fun facts for %s: %w", code, err)
	}
	return doc, nil
}
