package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/states-api/internal/middleware"
	"github.com/trentd187/states-api/internal/models"
	"github.com/trentd187/states-api/internal/states"
	"github.com/trentd187/states-api/internal/store"
)

// FunFactDocumentResponse is what write endpoints send back: the stored document
// after the change.
type FunFactDocumentResponse struct {
	ID        string   `json:"_id"`
	StateCode string   `json:"stateCode"`
	FunFacts  []string `json:"funFacts"` // Never null; [] when every fact was removed
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// CreateFunFactsRequest is the JSON body expected on POST /states/:state/funfact.
type CreateFunFactsRequest struct {
	FunFacts []string `json:"funfacts"` // Required, non-empty
}

// UpdateFunFactRequest is the JSON body expected on PATCH /states/:state/funfact.
// Only the first element of FunFacts is used.
type UpdateFunFactRequest struct {
	Index    json.RawMessage `json:"index"` // 1-based; kept raw so non-integers can be rejected after the document lookup
	FunFacts []string        `json:"funfacts"`
}

// DeleteFunFactRequest is the JSON body expected on DELETE /states/:state/funfact.
type DeleteFunFactRequest struct {
	Index json.RawMessage `json:"index"`
}

func documentResponse(doc models.FunFactDocument) FunFactDocumentResponse {
	return FunFactDocumentResponse{
		ID:        doc.ID.String(),
		StateCode: doc.StateCode,
		FunFacts:  doc.Facts(),
		CreatedAt: doc.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: doc.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// parseBody decodes a JSON body into out. An empty body is treated as "{}" so that
// DELETE requests without a body reach the index check instead of failing here.
func parseBody(c *fiber.Ctx, out any) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return nil
	}
	return json.Unmarshal(c.Body(), out)
}

// parseIndex turns the raw "index" value into the *int the store expects.
//
//   - absent or null → nil (the store reports ErrIndexRequired)
//   - a JSON integer  → its value
//   - anything else (string, fraction, bool) → 0, which the store always rejects as out of range
//
// Deferring the rejection to the store keeps the error order the same for every bad
// index: a missing document is reported first.
func parseIndex(raw json.RawMessage) *int {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	i, err := strconv.Atoi(string(trimmed))
	if err != nil {
		i = 0
	}
	return &i
}

// editError maps store errors from PATCH/DELETE onto HTTP responses.
func editError(c *fiber.Ctx, record models.StateRecord, err error) error {
	switch {
	case errors.Is(err, store.ErrDocumentNotFound):
		return message(c, fiber.StatusNotFound, fmt.Sprintf(msgNoFunFactsTmpl, record.State))
	case errors.Is(err, store.ErrIndexRequired):
		return message(c, fiber.StatusBadRequest, msgIndexRequired)
	case errors.Is(err, store.ErrInvalidIndex):
		return message(c, fiber.StatusBadRequest, fmt.Sprintf(msgNoFunFactIndexTmpl, record.State))
	default:
		return serverError(c, err)
	}
}

// GetRandomFunFact returns a handler for GET /states/:state/funfact.
// It responds {"funfact": "..."} with one fact chosen at random, or a
// {"message": "No Fun Facts found for <State>"} body when the state has none.
func GetRandomFunFact(svc *states.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, _ := middleware.State(c)

		fact, ok, err := svc.RandomFact(c.UserContext(), record)
		if err != nil {
			return serverError(c, err)
		}
		if !ok {
			return c.JSON(fiber.Map{"message": fmt.Sprintf(msgNoFunFactsTmpl, record.State)})
		}
		return c.JSON(fiber.Map{"funfact": fact})
	}
}

// CreateFunFacts returns a handler for POST /states/:state/funfact.
// The first submission for a state creates its document (201 Created); later
// submissions append to the end of the existing list (200 OK).
func CreateFunFacts(svc *states.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, _ := middleware.State(c)

		var req CreateFunFactsRequest
		if err := parseBody(c, &req); err != nil {
			// {"funfacts": "just one"} fails to decode into []string
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field == "funfacts" {
				return message(c, fiber.StatusBadRequest, msgFunFactsNotArray)
			}
			return message(c, fiber.StatusBadRequest, msgInvalidBody)
		}
		if len(req.FunFacts) == 0 {
			return message(c, fiber.StatusBadRequest, msgFunFactsRequired)
		}

		doc, created, err := svc.Store().Append(c.UserContext(), record.Code, req.FunFacts)
		if err != nil {
			return serverError(c, err)
		}

		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(documentResponse(doc))
	}
}

// UpdateFunFact returns a handler for PATCH /states/:state/funfact.
// Body: {"index": 1, "funfacts": ["replacement"]}. The index is 1-based.
func UpdateFunFact(svc *states.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, _ := middleware.State(c)

		var req UpdateFunFactRequest
		if err := parseBody(c, &req); err != nil {
			return message(c, fiber.StatusBadRequest, msgInvalidBody)
		}
		// The replacement text can be checked without the store, so it is checked first.
		if len(req.FunFacts) == 0 || strings.TrimSpace(req.FunFacts[0]) == "" {
			return message(c, fiber.StatusBadRequest, msgFunFactRequired)
		}

		doc, err := svc.Store().Replace(c.UserContext(), record.Code, parseIndex(req.Index), req.FunFacts[0])
		if err != nil {
			return editError(c, record, err)
		}
		return c.JSON(documentResponse(doc))
	}
}

// DeleteFunFact returns a handler for DELETE /states/:state/funfact.
// Body: {"index": 2}. Removes exactly one fact; later facts shift down by one.
func DeleteFunFact(svc *states.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, _ := middleware.State(c)

		var req DeleteFunFactRequest
		if err := parseBody(c, &req); err != nil {
			return message(c, fiber.StatusBadRequest, msgInvalidBody)
		}

		doc, err := svc.Store().Remove(c.UserContext(), record.Code, parseIndex(req.Index))
		if err != nil {
			return editError(c, record, err)
		}
		return c.JSON(documentResponse(doc))
	}
}
