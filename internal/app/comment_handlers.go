package app

import (
	"net/http"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/ctxutil"
	"github.com/lingvodom/school-api/internal/models"
)

type addCommentRequest struct {
	Comment string `json:"comment"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserID(r.Context())
	if !ok {
		s.writeErr(w, r, apperr.BadRequest("нет аутентификации"))
		return
	}
	var req addCommentRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	id, err := s.comments.Add(r.Context(), userID, req.Comment)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// handleListComments — публичный список, только подтверждённые отзывы.
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	out, err := s.comments.ListVerified(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeComments(w, out)
}

// handleModerationQueue — админская выборка: по умолчанию неподтверждённые,
// с ?all=1 отдаёт всё.
func (s *Server) handleModerationQueue(w http.ResponseWriter, r *http.Request) {
	var (
		out []models.SchoolComment
		err error
	)
	if r.URL.Query().Get("all") == "1" {
		out, err = s.comments.ListAll(r.Context())
	} else {
		out, err = s.comments.ListUnverified(r.Context())
	}
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeComments(w, out)
}

func writeComments(w http.ResponseWriter, out []models.SchoolComment) {
	res := make([]commentResponse, 0, len(out))
	for i := range out {
		res = append(res, commentDTO(&out[i]))
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleVerifyComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.comments.Verify(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.comments.Delete(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
