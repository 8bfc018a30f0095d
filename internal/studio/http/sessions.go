package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lotusloft/studio/internal/studio/service"
	"github.com/lotusloft/studio/internal/studio/store"
	"github.com/lotusloft/studio/pkg/httpx"
	"github.com/lotusloft/studio/pkg/idx"
	"github.com/lotusloft/studio/pkg/slogx"
)

type SessionHandler struct {
	SessionService *service.SessionService
}

// pathID parses a ULID path value, writing a 400 when it is unparsable.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id, err := idx.Parse(r.PathValue(name))
	if err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "Invalid id")
		return "", false
	}
	return id.String(), true
}

// HandleList godoc
//
//	@Summary	List all sessions
//	@Tags		Sessions
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		SessionResponse
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Router		/api/session [get].
func (h *SessionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.SessionService.ListSessions(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to list sessions", "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSessionResponses(sessions))
}

// HandleGet godoc
//
//	@Summary	Get a session by id
//	@Tags		Sessions
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Session id"
//	@Success	200	{object}	SessionResponse
//	@Failure	400	{object}	httpx.ErrorResponse	"Invalid id"
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/session/{id} [get].
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sess, err := h.SessionService.GetSessionByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, r, http.StatusNotFound, "Session not found")
			return
		}
		slogx.FromContext(r.Context()).Error("failed to load session", "session_id", id, "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(sess))
}

// HandleCreate godoc
//
//	@Summary	Create a session
//	@Tags		Sessions
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		SessionRequest	true	"Session fields"
//	@Success	200		{object}	SessionResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/api/session [post].
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeSessionRequest(w, r)
	if !ok {
		return
	}

	sess, err := h.SessionService.CreateSession(r.Context(), params)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to create session", "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(sess))
}

// HandleUpdate godoc
//
//	@Summary	Update a session
//	@Tags		Sessions
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Session id"
//	@Param		request	body		SessionRequest	true	"Session fields"
//	@Success	200		{object}	SessionResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Router		/api/session/{id} [put].
func (h *SessionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	params, ok := decodeSessionRequest(w, r)
	if !ok {
		return
	}

	sess, err := h.SessionService.UpdateSession(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, r, http.StatusNotFound, "Session not found")
			return
		}
		slogx.FromContext(r.Context()).Error("failed to update session", "session_id", id, "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(sess))
}

// HandleDelete godoc
//
//	@Summary	Delete a session
//	@Tags		Sessions
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path	string	true	"Session id"
//	@Success	200
//	@Failure	400	{object}	httpx.ErrorResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/session/{id} [delete].
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.SessionService.DeleteSession(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, r, http.StatusNotFound, "Session not found")
			return
		}
		slogx.FromContext(r.Context()).Error("failed to delete session", "session_id", id, "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleParticipate godoc
//
//	@Summary	Sign a user up for a session
//	@Tags		Sessions
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id		path	string	true	"Session id"
//	@Param		userId	path	string	true	"User id"
//	@Success	200
//	@Failure	400	{object}	httpx.ErrorResponse	"Invalid id or already participating"
//	@Failure	404	{object}	httpx.ErrorResponse	"Unknown session or user"
//	@Router		/api/session/{id}/participate/{userId} [post].
func (h *SessionHandler) HandleParticipate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	err := h.SessionService.Participate(r.Context(), sessionID, userID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, r, http.StatusNotFound, "Session or user not found")
	case errors.Is(err, service.ErrAlreadyParticipating):
		httpx.WriteError(w, r, http.StatusBadRequest, "Already participating")
	default:
		slogx.FromContext(r.Context()).Error("participate failed", "session_id", sessionID, "user_id", userID, "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleNoLongerParticipate godoc
//
//	@Summary	Take a user off a session
//	@Tags		Sessions
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id		path	string	true	"Session id"
//	@Param		userId	path	string	true	"User id"
//	@Success	200
//	@Failure	400	{object}	httpx.ErrorResponse	"Invalid id or not participating"
//	@Failure	404	{object}	httpx.ErrorResponse	"Unknown session"
//	@Router		/api/session/{id}/participate/{userId} [delete].
func (h *SessionHandler) HandleNoLongerParticipate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	err := h.SessionService.NoLongerParticipate(r.Context(), sessionID, userID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, r, http.StatusNotFound, "Session not found")
	case errors.Is(err, service.ErrNotParticipating):
		httpx.WriteError(w, r, http.StatusBadRequest, "Not participating")
	default:
		slogx.FromContext(r.Context()).Error("no longer participate failed", "session_id", sessionID, "user_id", userID, "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeSessionRequest(w http.ResponseWriter, r *http.Request) (service.SessionParams, bool) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "Invalid request body")
		return service.SessionParams{}, false
	}
	if req.Name == "" || req.Description == "" || req.Date.IsZero() {
		httpx.WriteError(w, r, http.StatusBadRequest, "Name, date and description are required")
		return service.SessionParams{}, false
	}
	return service.SessionParams{
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
		TeacherID:   req.TeacherID,
	}, true
}
