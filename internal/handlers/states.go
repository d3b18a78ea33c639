// Package handlers contains HTTP route handler functions for the States API.
// This file handles the read-only /states routes.
//
// Each exported function follows the "handler factory" pattern: it takes the
// *states.Service and returns a fiber.Handler, so dependencies are injected rather
// than reached for through globals.
//
// Every /states/:state route runs behind middleware.ResolveState, which has already
// rejected unknown codes and stored the StateRecord in the request context.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/states-api/internal/dataset"
	"github.com/trentd187/states-api/internal/middleware"
	"github.com/trentd187/states-api/internal/models"
	"github.com/trentd187/states-api/internal/states"
)

// CapitalResponse is the body of GET /states/:state/capital.
type CapitalResponse struct {
	State   string `json:"state"`
	Capital string `json:"capital"`
}

// NicknameResponse is the body of GET /states/:state/nickname.
type NicknameResponse struct {
	State    string `json:"state"`
	Nickname string `json:"nickname"`
}

// PopulationResponse is the body of GET /states/:state/population.
// Population is formatted with thousands separators, e.g. "2,893,957".
type PopulationResponse struct {
	State      string `json:"state"`
	Population string `json:"population"`
}

// AdmissionResponse is the body of GET /states/:state/admission.
type AdmissionResponse struct {
	State    string `json:"state"`
	Admitted string `json:"admitted"`
}

// GetStates returns a handler for GET /states.
// Optional query param: ?contig=true (lower 48 only) or ?contig=false (Alaska and Hawaii only).
func GetStates(svc *states.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		merged, err := svc.List(c.UserContext(), dataset.ParseContig(c.Query("contig")))
		if err != nil {
			return serverError(c, err)
		}
		return c.JSON(merged)
	}
}

// GetState returns a handler for GET /states/:state: one state merged with its fun facts.
func GetState(svc *states.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, _ := middleware.State(c)

		merged, err := svc.Merge(c.UserContext(), record)
		if err != nil {
			return serverError(c, err)
		}
		return c.JSON(merged)
	}
}

// field builds a handler that answers from the static record alone. No store access.
func field(build func(r models.StateRecord) any) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, _ := middleware.State(c)
		return c.JSON(build(record))
	}
}

// GetCapital returns a handler for GET /states/:state/capital.
func GetCapital() fiber.Handler {
	return field(func(r models.StateRecord) any {
		return CapitalResponse{State: r.State, Capital: r.CapitalCity}
	})
}

// GetNickname returns a handler for GET /states/:state/nickname.
func GetNickname() fiber.Handler {
	return field(func(r models.StateRecord) any {
		return NicknameResponse{State: r.State, Nickname: r.Nickname}
	})
}

// GetPopulation returns a handler for GET /states/:state/population.
func GetPopulation() fiber.Handler {
	return field(func(r models.StateRecord) any {
		return PopulationResponse{State: r.State, Population: states.FormatPopulation(r.Population)}
	})
}

// GetAdmission returns a handler for GET /states/:state/admission.
func GetAdmission() fiber.Handler {
	return field(func(r models.StateRecord) any {
		return AdmissionResponse{State: r.State, Admitted: r.AdmissionDate}
	})
}
