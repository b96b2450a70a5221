package app

import (
	"net/http"

	"github.com/lingvodom/school-api/internal/models"
)

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	u, err := s.users.GetDetailed(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userDTO(u))
}

type updateUserRequest struct {
	Email     *string `json:"email"`
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"is_active"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req updateUserRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	u, err := s.users.Update(r.Context(), id, models.UserUpdate{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  req.IsActive,
	})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userDTO(u))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setRoleRequest struct {
	RoleID int64 `json:"role_id"`
}

func (s *Server) handleSetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req setRoleRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.users.SetRole(r.Context(), id, req.RoleID); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUserCourses(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	cs, err := s.catalog.UserCourses(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	type userCourseResponse struct {
		CourseID   int64  `json:"course_id"`
		CourseName string `json:"course_name"`
		GroupID    int64  `json:"group_id"`
		GroupName  string `json:"group_name"`
	}
	out := make([]userCourseResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, userCourseResponse{
			CourseID:   c.CourseID,
			CourseName: c.CourseName,
			GroupID:    c.GroupID,
			GroupName:  c.GroupName,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.users.ListRoles(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	type roleResponse struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	out := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleResponse{ID: role.ID, Name: role.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	ts, err := s.users.ListTeachers(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usersDTO(ts))
}
