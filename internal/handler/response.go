// Package handler exposes the HTTP surface of the API. Handlers bind
// and validate request bodies, delegate to the services and translate
// domain errors to status codes.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homehero/homehero/internal/assign"
	"github.com/homehero/homehero/internal/auth"
	"github.com/homehero/homehero/internal/chores"
	"github.com/homehero/homehero/internal/expenses"
	"github.com/homehero/homehero/internal/groceries"
	"github.com/homehero/homehero/internal/households"
	"github.com/homehero/homehero/internal/schedules"
)

// notFoundErrs map to 404, validationErrs to 400, authErrs to 401.
// Anything else is a 500 and gets logged; its message is not leaked.
var (
	notFoundErrs = []error{
		chores.ErrHouseholdNotFound,
		chores.ErrChoreNotFound,
		expenses.ErrHouseholdNotFound,
		expenses.ErrExpenseNotFound,
		expenses.ErrSplitNotFound,
		households.ErrHouseholdNotFound,
		households.ErrInviteNotFound,
		households.ErrProfileNotFound,
		groceries.ErrHouseholdNotFound,
		groceries.ErrGroceryNotFound,
		schedules.ErrScheduleNotFound,
	}
	validationErrs = []error{
		chores.ErrTitleRequired,
		chores.ErrConflictingDueFields,
		chores.ErrInvalidDateRange,
		chores.ErrInvalidRepeatRule,
		assign.ErrNoEligibleMembers,
		assign.ErrAssigneeRequired,
		assign.ErrAssigneeNotMember,
		assign.ErrNoEligibleCandidates,
		expenses.ErrItemRequired,
		expenses.ErrInvalidCost,
		households.ErrNameRequired,
		households.ErrInvalidHomeCode,
		households.ErrInviteClosed,
		households.ErrNotMember,
		groceries.ErrNameRequired,
		schedules.ErrInvalidWeekly,
		auth.ErrWeakPassword,
		auth.ErrEmailExists,
	}
	authErrs = []error{
		auth.ErrInvalidCredentials,
		households.ErrNotInvitee,
	}
)

func respondError(c *gin.Context, err error) {
	for _, sentinel := range notFoundErrs {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusNotFound, gin.H{"error": sentinel.Error()})
			return
		}
	}
	for _, sentinel := range validationErrs {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": sentinel.Error()})
			return
		}
	}
	for _, sentinel := range authErrs {
		if errors.Is(err, sentinel) {
			status := http.StatusUnauthorized
			if errors.Is(err, households.ErrNotInvitee) {
				status = http.StatusForbidden
			}
			c.JSON(status, gin.H{"error": sentinel.Error()})
			return
		}
	}

	slog.Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
