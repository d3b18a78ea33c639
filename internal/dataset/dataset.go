// Package dataset holds the static U.S. state reference data.
//
// The data lives in states.json, which is compiled into the binary with go:embed.
// It is loaded exactly once at startup and never modified afterwards, so a *Dataset
// is safe to share between goroutines without locking.
package dataset

import (
	_ "embed" // Required for the //go:embed directive below
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/trentd187/states-api/internal/models"
)

//go:embed states.json
var statesJSON []byte

// The two non-contiguous states. Everything else is part of the "lower 48".
var nonContiguous = map[string]bool{"AK": true, "HI": true}

// Contig is the value of the ?contig= query parameter on GET /states.
type Contig int

const (
	ContigAll     Contig = iota // No filter (parameter absent or unrecognised)
	ContigOnly                  // contig=true: the 48 contiguous states
	NonContigOnly               // contig=false: Alaska and Hawaii only
)

// ParseContig converts the raw query string value into a Contig filter.
// Only the exact strings "true" and "false" select a filter.
func ParseContig(raw string) Contig {
	switch raw {
	case "true":
		return ContigOnly
	case "false":
		return NonContigOnly
	default:
		return ContigAll
	}
}

// Dataset is the immutable, in-memory list of state records.
type Dataset struct {
	records []models.StateRecord
	byCode  map[string]int // code -> index into records
}

// Load parses the embedded states.json file.
func Load() (*Dataset, error) {
	return Parse(statesJSON)
}

// Parse builds a Dataset from raw JSON. It rejects duplicate or malformed codes
// and negative populations, then fills in PopulationRank.
func Parse(raw []byte) (*Dataset, error) {
	var records []models.StateRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse states dataset: %w", err)
	}

	d := &Dataset{
		records: records,
		byCode:  make(map[string]int, len(records)),
	}
	for i, r := range records {
		code := NormalizeCode(r.Code)
		if !ValidCodeFormat(code) {
			return nil, fmt.Errorf("state %q has malformed code %q", r.State, r.Code)
		}
		if _, dup := d.byCode[code]; dup {
			return nil, fmt.Errorf("duplicate state code %q", code)
		}
		if r.Population < 0 {
			return nil, fmt.Errorf("state %q has negative population", code)
		}
		d.records[i].Code = code
		d.byCode[code] = i
	}

	d.rankByPopulation()
	return d, nil
}

// rankByPopulation assigns PopulationRank (1 = most populous).
// Ties keep file order so the ranking is deterministic.
func (d *Dataset) rankByPopulation() {
	order := make([]int, len(d.records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return d.records[order[a]].Population > d.records[order[b]].Population
	})
	for rank, idx := range order {
		d.records[idx].PopulationRank = rank + 1
	}
}

// NormalizeCode trims whitespace and uppercases a state code so "ks", " Ks " and "KS"
// all refer to the same state.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidCodeFormat reports whether code is exactly two ASCII letters.
// It says nothing about whether the code belongs to a real state.
func ValidCodeFormat(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// Lookup finds a state by code, case-insensitively.
func (d *Dataset) Lookup(code string) (models.StateRecord, bool) {
	idx, ok := d.byCode[NormalizeCode(code)]
	if !ok {
		return models.StateRecord{}, false
	}
	return d.records[idx], true
}

// Len returns the number of states in the dataset.
func (d *Dataset) Len() int {
	return len(d.records)
}

// All returns a copy of every record in file order.
// Returning a copy means callers can never mutate the shared dataset.
func (d *Dataset) All() []models.StateRecord {
	out := make([]models.StateRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Filter returns the records matching the contiguity filter, in file order.
func (d *Dataset) Filter(contig Contig) []models.StateRecord {
	if contig == ContigAll {
		return d.All()
	}
	out := make([]models.StateRecord, 0, len(d.records))
	for _, r := range d.records {
		isNonContig := nonContiguous[r.Code]
		if (contig == ContigOnly && !isNonContig) || (contig == NonContigOnly && isNonContig) {
			out = append(out, r)
		}
	}
	return out
}
