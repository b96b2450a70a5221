package app

import (
	"net/http"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/ctxutil"
	"github.com/lingvodom/school-api/internal/models"
)

type createRequestBody struct {
	CourseID int64 `json:"course_id"`
}

// handleCreateRequest — заявка всегда создаётся от имени аутентифицированного
// пользователя, user_id в теле не принимается.
func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserID(r.Context())
	if !ok {
		s.writeErr(w, r, apperr.BadRequest("нет аутентификации"))
		return
	}
	var req createRequestBody
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	cr, err := s.enrollment.Create(r.Context(), userID, req.CourseID)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, requestDTO(cr))
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	rs, err := s.enrollment.ListAll(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	out := make([]requestResponse, 0, len(rs))
	for i := range rs {
		out = append(out, requestDTO(&rs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUserRequests(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	rs, err := s.enrollment.ListByUser(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	out := make([]requestResponse, 0, len(rs))
	for i := range rs {
		out = append(out, requestDTO(&rs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	cr, err := s.enrollment.GetDetailed(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requestDTO(cr))
}

type updateRequestBody struct {
	Status      *string `json:"status"`
	IsProcessed *bool   `json:"is_processed"`
	IsArchived  *bool   `json:"is_archived"`
}

func (s *Server) handleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req updateRequestBody
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	upd := models.RequestUpdate{IsProcessed: req.IsProcessed, IsArchived: req.IsArchived}
	if req.Status != nil {
		st, err := models.ParseRequestStatus(*req.Status)
		if err != nil {
			s.writeErr(w, r, apperr.BadRequest("%v", err))
			return
		}
		upd.Status = &st
	}
	cr, err := s.enrollment.Update(r.Context(), id, upd)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requestDTO(cr))
}

func (s *Server) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.enrollment.Delete(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
