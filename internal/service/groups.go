package service

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/ctxutil"
	"github.com/lingvodom/school-api/internal/db"
	"github.com/lingvodom/school-api/internal/models"
)

// Groups — учебные группы и членство в них.
type Groups struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func NewGroups(database *sql.DB, log *zap.SugaredLogger) *Groups {
	return &Groups{db: database, log: log.Named("groups")}
}

// CreateGroup — курс и преподаватель проверяются до вставки: контракт
// отдаёт NotFound вместо голой ошибки внешнего ключа.
func (s *Groups) CreateGroup(ctx context.Context, courseID, teacherID int64, name string) (*models.CourseGroup, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.BadRequest("название группы не может быть пустым")
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	course, err := db.GetCourseByID(ctx, s.db, courseID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if course == nil {
		return nil, apperr.NotFound("курс с id %d не найден", courseID)
	}
	teacher, err := db.GetUserByID(ctx, s.db, teacherID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if teacher == nil {
		return nil, apperr.NotFound("преподаватель с id %d не найден", teacherID)
	}

	g := models.CourseGroup{CourseID: courseID, TeacherID: teacherID, GroupName: name}
	id, err := db.CreateCourseGroup(ctx, s.db, g)
	if err != nil {
		s.log.Errorw("create group", "course", courseID, "err", err)
		return nil, apperr.Internal(err)
	}
	g.ID = id
	return &g, nil
}

func (s *Groups) AddUser(ctx context.Context, groupID, userID int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	group, err := db.GetCourseGroupByID(ctx, s.db, groupID)
	if err != nil {
		return apperr.Internal(err)
	}
	if group == nil {
		return apperr.NotFound("группа с id %d не найдена", groupID)
	}
	user, err := db.GetUserByID(ctx, s.db, userID)
	if err != nil {
		return apperr.Internal(err)
	}
	if user == nil {
		return apperr.NotFound("пользователь с id %d не найден", userID)
	}

	if err := db.AddUserToGroup(ctx, s.db, groupID, userID); err != nil {
		if apperr.IsUniqueViolation(err) {
			return apperr.Conflict("пользователь уже состоит в этой группе")
		}
		s.log.Errorw("add user to group", "group", groupID, "user", userID, "err", err)
		return apperr.Internal(err)
	}
	return nil
}

func (s *Groups) RemoveUser(ctx context.Context, groupID, userID int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.RemoveUserFromGroup(ctx, s.db, groupID, userID)
	if err != nil {
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("пользователь не состоит в этой группе")
	}
	return nil
}

// AssignTeacher — перезаписывает преподавателя группы; истории назначений нет.
func (s *Groups) AssignTeacher(ctx context.Context, groupID, teacherID int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	teacher, err := db.GetUserByID(ctx, s.db, teacherID)
	if err != nil {
		return apperr.Internal(err)
	}
	if teacher == nil {
		return apperr.NotFound("преподаватель с id %d не найден", teacherID)
	}

	n, err := db.AssignTeacher(ctx, s.db, groupID, teacherID)
	if err != nil {
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("группа с id %d не найдена", groupID)
	}
	return nil
}

func (s *Groups) List(ctx context.Context) ([]models.CourseGroup, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.ListCourseGroups(ctx, s.db)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Groups) GetDetailed(ctx context.Context, id int64) (*models.CourseGroup, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	g, err := db.GetDetailedGroup(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if g == nil {
		return nil, apperr.NotFound("группа с id %d не найдена", id)
	}
	return g, nil
}

// CourseStudents — все ученики всех групп курса.
func (s *Groups) CourseStudents(ctx context.Context, courseID int64) ([]models.User, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.GetGroupStudents(ctx, s.db, courseID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Groups) TeacherGroups(ctx context.Context, teacherID int64) ([]models.CourseGroup, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.GetTeacherGroups(ctx, s.db, teacherID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}
