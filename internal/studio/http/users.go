package http

import (
	"errors"
	"net/http"

	"github.com/lotusloft/studio/internal/studio/service"
	"github.com/lotusloft/studio/internal/studio/store"
	"github.com/lotusloft/studio/pkg/httpx"
	"github.com/lotusloft/studio/pkg/slogx"
)

type UserHandler struct {
	UserService *service.UserService
}

// HandleGet godoc
//
//	@Summary	Get a user by id
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	UserResponse
//	@Failure	400	{object}	httpx.ErrorResponse	"Invalid id"
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/user/{id} [get].
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, r, http.StatusNotFound, "User not found")
			return
		}
		slogx.FromContext(r.Context()).Error("failed to load user", "user_id", id, "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleDelete godoc
//
//	@Summary		Delete a user account
//	@Description	Only the account owner or an admin may delete an account.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path	string	true	"User id"
//	@Success		200
//	@Failure		400	{object}	httpx.ErrorResponse	"Invalid id"
//	@Failure		401	{object}	httpx.ErrorResponse	"Not the owner"
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/api/user/{id} [delete].
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.UserService.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, r, http.StatusNotFound, "User not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to load user", "user_id", id, "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	principal, _ := httpx.PrincipalFromContext(ctx)
	if principal.Email != user.Email && !principal.Admin {
		httpx.WriteError(w, r, http.StatusUnauthorized, "You can only delete your own account")
		return
	}

	if err := h.UserService.DeleteUser(ctx, id); err != nil {
		slogx.FromContext(ctx).Error("failed to delete user", "user_id", id, "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusOK)
}
