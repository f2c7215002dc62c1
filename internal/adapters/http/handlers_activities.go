package web

import (
	"errors"
	"log/slog"
	"net/http"

	"mergington/internal/adapters/http/middleware"
	"mergington/internal/application/orchestrators"
	"mergington/internal/domain/activity"
)

type activityResponse struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// handleActivities returns the full catalog keyed by activity name.
// GET /activities
func handleActivities(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetIdentityFromContext(r.Context()); !ok {
		writeDetail(w, http.StatusUnauthorized, detailInvalidCredentials)
		return
	}

	activities, err := stores.ActivityStore.List(r.Context())
	if err != nil {
		slog.Error("list_activities_failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	catalog := make(map[string]activityResponse, len(activities))
	for _, a := range activities {
		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		catalog[a.Name] = activityResponse{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    participants,
		}
	}
	writeJSON(w, http.StatusOK, catalog)
}

// handleSignup enrolls the authenticated student in an activity.
// POST /activities/{name}/signup
func handleSignup(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailInvalidCredentials)
		return
	}

	message, err := orchestrators.ExecuteSignup(r.Context(), orchestrators.CommandInput{
		ActivityName: r.PathValue("name"),
		Email:        identity.Email,
		Role:         identity.Role,
	}, orchestrators.CommandDeps{ActivityStore: stores.ActivityStore})
	if err != nil {
		writeCommandError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

// handleUnregister removes the authenticated user from an activity.
// DELETE /activities/{name}/unregister
func handleUnregister(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailInvalidCredentials)
		return
	}

	message, err := orchestrators.ExecuteUnregister(r.Context(), orchestrators.CommandInput{
		ActivityName: r.PathValue("name"),
		Email:        identity.Email,
		Role:         identity.Role,
	}, orchestrators.CommandDeps{ActivityStore: stores.ActivityStore})
	if err != nil {
		writeCommandError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

// writeCommandError maps enrollment mutation failures onto the wire contract.
func writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrActivityNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orchestrators.ErrOnlyStudents):
		writeDetail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, activity.ErrAlreadySignedUp),
		errors.Is(err, activity.ErrFull),
		errors.Is(err, activity.ErrNotSignedUp):
		writeDetail(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("activity_command_failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}
