package app

import (
	"net/http"

	"github.com/lingvodom/school-api/internal/models"
)

// referenceRoutes — CRUD четырёх справочников. Чтение публичное,
// запись только администратору.
func (s *Server) referenceRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /languages", s.instrument("languages.create", s.superuserOnly(s.handleCreateLanguage)))
	mux.HandleFunc("GET /languages", s.instrument("languages.list", s.handleListLanguages))
	mux.HandleFunc("GET /languages/{id}", s.instrument("languages.get", s.handleGetLanguage))
	mux.HandleFunc("PUT /languages/{id}", s.instrument("languages.edit", s.superuserOnly(s.handleEditLanguage)))
	mux.HandleFunc("DELETE /languages/{id}", s.instrument("languages.delete", s.superuserOnly(s.handleDeleteLanguage)))

	mux.HandleFunc("POST /levels", s.instrument("levels.create", s.superuserOnly(s.handleCreateLevel)))
	mux.HandleFunc("GET /levels", s.instrument("levels.list", s.handleListLevels))
	mux.HandleFunc("GET /levels/{id}", s.instrument("levels.get", s.handleGetLevel))
	mux.HandleFunc("PUT /levels/{id}", s.instrument("levels.edit", s.superuserOnly(s.handleEditLevel)))
	mux.HandleFunc("DELETE /levels/{id}", s.instrument("levels.delete", s.superuserOnly(s.handleDeleteLevel)))

	mux.HandleFunc("POST /formats", s.instrument("formats.create", s.superuserOnly(s.handleCreateFormat)))
	mux.HandleFunc("GET /formats", s.instrument("formats.list", s.handleListFormats))
	mux.HandleFunc("GET /formats/{id}", s.instrument("formats.get", s.handleGetFormat))
	mux.HandleFunc("PUT /formats/{id}", s.instrument("formats.edit", s.superuserOnly(s.handleEditFormat)))
	mux.HandleFunc("DELETE /formats/{id}", s.instrument("formats.delete", s.superuserOnly(s.handleDeleteFormat)))

	mux.HandleFunc("POST /age-groups", s.instrument("age_groups.create", s.superuserOnly(s.handleCreateAgeGroup)))
	mux.HandleFunc("GET /age-groups", s.instrument("age_groups.list", s.handleListAgeGroups))
	mux.HandleFunc("GET /age-groups/{id}", s.instrument("age_groups.get", s.handleGetAgeGroup))
	mux.HandleFunc("PUT /age-groups/{id}", s.instrument("age_groups.edit", s.superuserOnly(s.handleEditAgeGroup)))
	mux.HandleFunc("DELETE /age-groups/{id}", s.instrument("age_groups.delete", s.superuserOnly(s.handleDeleteAgeGroup)))
}

type languageBody struct {
	Name    string `json:"name"`
	RusName string `json:"rus_name"`
}

func (s *Server) handleCreateLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageBody
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	l, err := s.reference.CreateLanguage(r.Context(), models.Language{Name: req.Name, RusName: req.RusName})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, languageDTO(l))
}

func (s *Server) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	out, err := s.reference.ListLanguages(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, languagesDTO(out))
}

func (s *Server) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	l, err := s.reference.GetLanguage(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, languageDTO(l))
}

func (s *Server) handleEditLanguage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req languageBody
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	l, err := s.reference.EditLanguage(r.Context(), models.Language{ID: id, Name: req.Name, RusName: req.RusName})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, languageDTO(l))
}

func (s *Server) handleDeleteLanguage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.reference.DeleteLanguage(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type levelBody struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) handleCreateLevel(w http.ResponseWriter, r *http.Request) {
	var req levelBody
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	l, err := s.reference.CreateLevel(r.Context(), models.Level{Name: req.Name, Description: req.Description})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, levelDTO(l))
}

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	out, err := s.reference.ListLevels(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, levelsDTO(out))
}

func (s *Server) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	l, err := s.reference.GetLevel(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, levelDTO(l))
}

func (s *Server) handleEditLevel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req levelBody
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	l, err := s.reference.EditLevel(r.Context(), models.Level{ID: id, Name: req.Name, Description: req.Description})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, levelDTO(l))
}

func (s *Server) handleDeleteLevel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.reference.DeleteLevel(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type formatBody struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateFormat(w http.ResponseWriter, r *http.Request) {
	var req formatBody
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	f, err := s.reference.CreateFormat(r.Context(), req.Name)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, formatDTO(f))
}

func (s *Server) handleListFormats(w http.ResponseWriter, r *http.Request) {
	out, err := s.reference.ListFormats(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatsDTO(out))
}

func (s *Server) handleGetFormat(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	f, err := s.reference.GetFormat(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatDTO(f))
}

func (s *Server) handleEditFormat(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req formatBody
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	f, err := s.reference.EditFormat(r.Context(), id, req.Name)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatDTO(f))
}

func (s *Server) handleDeleteFormat(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.reference.DeleteFormat(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ageGroupBody struct {
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
}

func (s *Server) handleCreateAgeGroup(w http.ResponseWriter, r *http.Request) {
	var req ageGroupBody
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	g, err := s.reference.CreateAgeGroup(r.Context(), models.AgeGroup{Name: req.Name, MinAge: req.MinAge, MaxAge: req.MaxAge})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ageGroupDTO(g))
}

func (s *Server) handleListAgeGroups(w http.ResponseWriter, r *http.Request) {
	out, err := s.reference.ListAgeGroups(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ageGroupsDTO(out))
}

func (s *Server) handleGetAgeGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	g, err := s.reference.GetAgeGroup(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ageGroupDTO(g))
}

func (s *Server) handleEditAgeGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req ageGroupBody
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	g, err := s.reference.EditAgeGroup(r.Context(), models.AgeGroup{ID: id, Name: req.Name, MinAge: req.MinAge, MaxAge: req.MaxAge})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ageGroupDTO(g))
}

func (s *Server) handleDeleteAgeGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.reference.DeleteAgeGroup(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
