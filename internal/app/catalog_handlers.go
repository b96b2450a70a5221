package app

import (
	"net/http"

	"github.com/lingvodom/school-api/internal/models"
)

type createCourseRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	GroupSize   int     `json:"group_size"`
	Intensity   string  `json:"intensity"`
	Price       float64 `json:"price"`
	LanguageID  int64   `json:"language_id"`
	FormatID    int64   `json:"format_id"`
	AgeGroupID  int64   `json:"age_group_id"`
	IsActive    *bool   `json:"is_active"`
	Levels      []int64 `json:"levels"`
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	c, err := s.catalog.Create(r.Context(), models.NewCourse{
		Name:        req.Name,
		Description: req.Description,
		GroupSize:   req.GroupSize,
		Intensity:   req.Intensity,
		Price:       req.Price,
		LanguageID:  req.LanguageID,
		FormatID:    req.FormatID,
		AgeGroupID:  req.AgeGroupID,
		IsActive:    active,
		Levels:      req.Levels,
	})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, courseDTO(c))
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	cs, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	out := make([]courseResponse, 0, len(cs))
	for i := range cs {
		out = append(out, courseDTO(&cs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	c, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, courseDTO(c))
}

type editCourseRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	GroupSize   *int     `json:"group_size"`
	Intensity   *string  `json:"intensity"`
	Price       *float64 `json:"price"`
	LanguageID  *int64   `json:"language_id"`
	FormatID    *int64   `json:"format_id"`
	AgeGroupID  *int64   `json:"age_group_id"`
	IsActive    *bool    `json:"is_active"`
	Levels      []int64  `json:"levels"` // непустой или пустой список заменяет набор целиком; отсутствие поля не трогает
}

func (s *Server) handleEditCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req editCourseRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	c, err := s.catalog.Edit(r.Context(), id, models.CourseUpdate{
		Name:        req.Name,
		Description: req.Description,
		GroupSize:   req.GroupSize,
		Intensity:   req.Intensity,
		Price:       req.Price,
		LanguageID:  req.LanguageID,
		FormatID:    req.FormatID,
		AgeGroupID:  req.AgeGroupID,
		IsActive:    req.IsActive,
		Levels:      req.Levels,
	})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, courseDTO(c))
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.catalog.Delete(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCourseStudents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	students, err := s.groups.CourseStudents(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usersDTO(students))
}
