package app

import (
	"net/http"
)

type createGroupRequest struct {
	CourseID  int64  `json:"course_id"`
	TeacherID int64  `json:"teacher_id"`
	GroupName string `json:"group_name"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	g, err := s.groups.CreateGroup(r.Context(), req.CourseID, req.TeacherID, req.GroupName)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, groupDTO(g))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	gs, err := s.groups.List(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	out := make([]groupResponse, 0, len(gs))
	for i := range gs {
		out = append(out, groupDTO(&gs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	g, err := s.groups.GetDetailed(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupDTO(g))
}

type groupUserRequest struct {
	UserID int64 `json:"user_id"`
}

func (s *Server) handleAddGroupUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req groupUserRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.groups.AddUser(r.Context(), id, req.UserID); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveGroupUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.groups.RemoveUser(r.Context(), id, userID); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type assignTeacherRequest struct {
	TeacherID int64 `json:"teacher_id"`
}

func (s *Server) handleAssignTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req assignTeacherRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.groups.AssignTeacher(r.Context(), id, req.TeacherID); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTeacherGroups(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	gs, err := s.groups.TeacherGroups(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	out := make([]groupResponse, 0, len(gs))
	for i := range gs {
		out = append(out, groupDTO(&gs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGroupMarks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	marks, err := s.grading.GroupMarks(r.Context(), id)
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
