// Package states is the merge layer: it combines the static reference dataset with the
// fun facts stored for each state to produce the records the API returns.
// Nothing is cached. Every call reads the store again, which is fine for fifty states.
package states

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	// message formats numbers with locale-aware grouping ("2,893,957").
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/trentd187/states-api/internal/dataset"
	"github.com/trentd187/states-api/internal/models"
	"github.com/trentd187/states-api/internal/store"
)

// Service answers the read-side questions of the API.
type Service struct {
	data  *dataset.Dataset
	store store.FunFactStore
	intn  func(n int) int // Random source for RandomFact; returns a value in [0, n)
}

// NewService wires the dataset and fun-fact store together.
func NewService(data *dataset.Dataset, facts store.FunFactStore) *Service {
	return &Service{
		data:  data,
		store: facts,
		intn:  rand.IntN,
	}
}

// Dataset exposes the static data, e.g. for the state-resolving middleware.
func (s *Service) Dataset() *dataset.Dataset {
	return s.data
}

// Store exposes the fun-fact store used for writes.
func (s *Service) Store() store.FunFactStore {
	return s.store
}

// merge overlays a document's fun facts onto a record. A nil doc leaves FunFacts nil,
// which the JSON encoder omits.
func merge(r models.StateRecord, doc *models.FunFactDocument) models.MergedState {
	m := models.MergedState{StateRecord: r}
	if doc != nil {
		m.FunFacts = doc.Facts()
	}
	return m
}

// List returns every state matching the contiguity filter, each merged with its fun facts.
// All documents are fetched in one query and joined in memory.
func (s *Service) List(ctx context.Context, contig dataset.Contig) ([]models.MergedState, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}

	byCode := make(map[string]*models.FunFactDocument, len(docs))
	for i := range docs {
		byCode[docs[i].StateCode] = &docs[i]
	}

	records := s.data.Filter(contig)
	out := make([]models.MergedState, 0, len(records))
	for _, r := range records {
		out = append(out, merge(r, byCode[r.Code]))
	}
	return out, nil
}

// Merge returns record combined with its stored fun facts, if any.
func (s *Service) Merge(ctx context.Context, record models.StateRecord) (models.MergedState, error) {
	doc, err := s.store.Get(ctx, record.Code)
	switch {
	case err == nil:
		return merge(record, &doc), nil
	case errors.Is(err, store.ErrDocumentNotFound):
		return merge(record, nil), nil
	default:
		return models.MergedState{}, fmt.Errorf("merge state %s: %w", record.Code, err)
	}
}

// RandomFact picks one of the state's fun facts uniformly at random.
// ok is false when the state has no document or its list is empty.
func (s *Service) RandomFact(ctx context.Context, record models.StateRecord) (fact string, ok bool, err error) {
	doc, err := s.store.Get(ctx, record.Code)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("random fact for %s: %w", record.Code, err)
	}

	facts := doc.Facts()
	if len(facts) == 0 {
		return "", false, nil
	}
	return facts[s.intn(len(facts))], true, nil
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPopulation renders a head count with thousands separators, e.g. 2893957 -> "2,893,957".
func FormatPopulation(n int64) string {
	return printer.Sprintf("%d", n)
}
