// Package models defines the data structures shared by the States API.
//
// There are two kinds of data in this service:
//   - StateRecord: static reference data (name, capital, nickname, population, admission date)
//     bundled with the binary and loaded once at startup. It is never written at runtime.
//   - FunFactDocument: a user-editable, ordered list of fun facts for one state,
//     persisted in the fun_facts table and keyed by the two-letter state code.
//
// The API merges the two into a MergedState when responding to clients.
package models

import (
	"time"

	// uuid provides the document identifier (exposed to clients as "_id").
	"github.com/google/uuid"
	// pq.StringArray maps a Go []string onto a Postgres text[] column, which keeps
	// a state's fun facts in one row with their order preserved.
	"github.com/lib/pq"
)

// StateRecord is one entry of the bundled reference dataset.
// The JSON tags match the bundled states.json file and the API output.
type StateRecord struct {
	State           string `json:"state"`            // Display name, e.g. "Kansas"
	Slug            string `json:"slug"`             // URL-friendly name, e.g. "new-york"
	Code            string `json:"code"`             // Two-letter uppercase code, e.g. "KS"
	Nickname        string `json:"nickname"`         // e.g. "Sunflower State"
	AdmissionDate   string `json:"admission_date"`   // "YYYY-MM-DD"
	AdmissionNumber int    `json:"admission_number"` // Order of admission to the Union (Delaware = 1)
	CapitalCity     string `json:"capital_city"`
	Population      int64  `json:"population"`      // Non-negative head count
	PopulationRank  int    `json:"population_rank"` // Computed at load time: 1 = most populous
}

// FunFactDocument is the persisted, mutable list of fun facts for one state.
// The order of FunFacts matters: the API addresses entries by 1-based position.
//
// GORM maps this struct to the fun_facts table (see TableName). The table itself is
// created by the SQL migrations in migrations/, not by GORM AutoMigrate.
type FunFactDocument struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StateCode string         `gorm:"size:2;uniqueIndex;not null"` // Unique key; always uppercase
	FunFacts  pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt time.Time      // GORM sets this on create
	UpdatedAt time.Time      // GORM updates this on every save
}

// TableName overrides GORM's default pluralised name ("fun_fact_documents").
func (FunFactDocument) TableName() string {
	return "fun_facts"
}

// Facts returns the fun facts as a plain slice that is never nil, so an empty
// document serialises as [] instead of null.
func (d FunFactDocument) Facts() []string {
	if d.FunFacts == nil {
		return []string{}
	}
	return []string(d.FunFacts)
}

// MergedState is the API view of a state: the static record plus its fun facts.
//
// `omitzero` drops FunFacts only when it is nil, i.e. when no document exists for the
// state. A document whose list has been emptied still produces "funFacts": [].
type MergedState struct {
	StateRecord
	FunFacts []string `json:"funFacts,omitzero"`
}
