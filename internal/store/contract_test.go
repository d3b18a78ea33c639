package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

// runContract exercises the FunFactStore behaviour every implementation must share.
// newStore must return an empty store.
func runContract(t *testing.T, newStore func(t *testing.T) FunFactStore) {
	ctx := context.Background()

	t.Run("get missing document", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "KS")
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("append creates then appends in order", func(t *testing.T) {
		s := newStore(t)

		doc, created, err := s.Append(ctx, "KS", []string{"A", "B"})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "KS", doc.StateCode)
		assert.Equal(t, []string{"A", "B"}, doc.Facts())

		doc, created, err = s.Append(ctx, "KS", []string{"C"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, []string{"A", "B", "C"}, doc.Facts())

		got, err := s.Get(ctx, "KS")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, got.Facts())
		assert.Equal(t, doc.ID, got.ID)
	})

	t.Run("list returns every document", func(t *testing.T) {
		s := newStore(t)
		_, _, err := s.Append(ctx, "KS", []string{"A"})
		require.NoError(t, err)
		_, _, err = s.Append(ctx, "NE", []string{"B"})
		require.NoError(t, err)

		docs, err := s.List(ctx)
		require.NoError(t, err)
		codes := []string{}
		for _, d := range docs {
			codes = append(codes, d.StateCode)
		}
		assert.ElementsMatch(t, []string{"KS", "NE"}, codes)
	})

	t.Run("replace at index", func(t *testing.T) {
		s := newStore(t)
		_, _, err := s.Append(ctx, "KS", []string{"A", "B", "C"})
		require.NoError(t, err)

		doc, err := s.Replace(ctx, "KS", intPtr(1), "Z")
		require.NoError(t, err)
		assert.Equal(t, []string{"Z", "B", "C"}, doc.Facts())

		doc, err = s.Replace(ctx, "KS", intPtr(3), "Y")
		require.NoError(t, err)
		assert.Equal(t, []string{"Z", "B", "Y"}, doc.Facts())
	})

	t.Run("remove at index", func(t *testing.T) {
		s := newStore(t)
		_, _, err := s.Append(ctx, "KS", []string{"A", "B", "C"})
		require.NoError(t, err)

		doc, err := s.Remove(ctx, "KS", intPtr(2))
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C"}, doc.Facts())

		got, err := s.Get(ctx, "KS")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C"}, got.Facts())
	})

	t.Run("remove last fact leaves an empty document", func(t *testing.T) {
		s := newStore(t)
		_, _, err := s.Append(ctx, "KS", []string{"A"})
		require.NoError(t, err)

		doc, err := s.Remove(ctx, "KS", intPtr(1))
		require.NoError(t, err)
		assert.Empty(t, doc.Facts())

		_, err = s.Get(ctx, "KS")
		assert.NoError(t, err)
	})

	t.Run("index validation", func(t *testing.T) {
		s := newStore(t)
		_, _, err := s.Append(ctx, "KS", []string{"A", "B", "C"})
		require.NoError(t, err)

		tests := []struct {
			name  string
			index *int
			want  error
		}{
			{"missing", nil, ErrIndexRequired},
			{"zero", intPtr(0), ErrInvalidIndex},
			{"negative", intPtr(-1), ErrInvalidIndex},
			{"past end", intPtr(4), ErrInvalidIndex},
		}
		for _, tt := range tests {
			_, err := s.Replace(ctx, "KS", tt.index, "Z")
			assert.ErrorIs(t, err, tt.want, "replace "+tt.name)
			_, err = s.Remove(ctx, "KS", tt.index)
			assert.ErrorIs(t, err, tt.want, "remove "+tt.name)
		}

		// Nothing was changed by the rejected edits.
		got, err := s.Get(ctx, "KS")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, got.Facts())
	})

	t.Run("missing document wins over bad index", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Replace(ctx, "KS", nil, "Z")
		assert.ErrorIs(t, err, ErrDocumentNotFound)
		_, err = s.Remove(ctx, "KS", intPtr(0))
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("concurrent appends are all kept", func(t *testing.T) {
		s := newStore(t)
		const writers = 20

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, err := s.Append(ctx, "KS", []string{"fact"})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := s.Get(ctx, "KS")
		require.NoError(t, err)
		assert.Len(t, got.Facts(), writers)
	})

	t.Run("concurrent patch and delete on the same index", func(t *testing.T) {
		s := newStore(t)
		_, _, err := s.Append(ctx, "KS", []string{"A", "B", "C"})
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Replace(ctx, "KS", intPtr(1), "Z")
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Remove(ctx, "KS", intPtr(1))
		}()
		wg.Wait()

		got, err := s.Get(ctx, "KS")
		require.NoError(t, err)
		// Either order is valid, but the delete always lands and "A" is gone.
		facts := got.Facts()
		assert.Len(t, facts, 2)
		assert.NotContains(t, facts, "A")
	})
}
