package http

import (
	"errors"
	"net/http"

	"github.com/lotusloft/studio/internal/studio/service"
	"github.com/lotusloft/studio/internal/studio/store"
	"github.com/lotusloft/studio/pkg/httpx"
	"github.com/lotusloft/studio/pkg/slogx"
)

type TeacherHandler struct {
	TeacherService *service.TeacherService
}

// HandleList godoc
//
//	@Summary	List all teachers
//	@Tags		Teachers
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		TeacherResponse
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Router		/api/teacher [get].
func (h *TeacherHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.TeacherService.ListTeachers(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to list teachers", "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, toTeacherResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary	Get a teacher by id
//	@Tags		Teachers
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Teacher id"
//	@Success	200	{object}	TeacherResponse
//	@Failure	400	{object}	httpx.ErrorResponse	"Invalid id"
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/teacher/{id} [get].
func (h *TeacherHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	teacher, err := h.TeacherService.GetTeacherByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, r, http.StatusNotFound, "Teacher not found")
			return
		}
		slogx.FromContext(r.Context()).Error("failed to load teacher", "teacher_id", id, "err", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTeacherResponse(teacher))
}
