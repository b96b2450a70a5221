package app

import (
	"encoding/json"
	"net/http"

	"github.com/lingvodom/school-api/internal/models"
)

type addGradeRequest struct {
	GroupID int64           `json:"group_id"`
	UserID  int64           `json:"user_id"`
	Grade   json.RawMessage `json:"grade"` // тип проверяется сервисом, поэтому сырое значение
	Comment *string         `json:"comment"`
}

func (s *Server) handleAddGrade(w http.ResponseWriter, r *http.Request) {
	var req addGradeRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	var gradeVal any
	if len(req.Grade) > 0 {
		_ = json.Unmarshal(req.Grade, &gradeVal)
	}
	g, err := s.grading.Add(r.Context(), req.GroupID, req.UserID, gradeVal, req.Comment)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, gradeDTO(g))
}

type updateGradeRequest struct {
	Grade   *int    `json:"grade"`
	Comment *string `json:"comment"`
}

func (s *Server) handleUpdateGrade(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req updateGradeRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	g, err := s.grading.Update(r.Context(), id, models.GradeUpdate{Grade: req.Grade, Comment: req.Comment})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gradeDTO(g))
}

func (s *Server) handleDeleteGrade(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.grading.Delete(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStudentMarks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	marks, err := s.grading.StudentMarks(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	out := make([]gradeResponse, 0, len(marks))
	for i := range marks {
		out = append(out, gradeDTO(&marks[i]))
	}
	writeJSON(w, http.StatusOK, out)
}
