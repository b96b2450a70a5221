package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/ctxutil"
	"github.com/lingvodom/school-api/internal/db"
	"github.com/lingvodom/school-api/internal/models"
	"github.com/lingvodom/school-api/internal/validate"
)

// Grading — выставление и выборка оценок. Оценку можно ставить только
// участнику группы, диапазон [0;10] проверяется до любых запросов к базе.
type Grading struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func NewGrading(database *sql.DB, log *zap.SugaredLogger) *Grading {
	return &Grading{db: database, log: log.Named("grading")}
}

func (s *Grading) Add(ctx context.Context, groupID, userID int64, grade any, comment *string) (*models.Grade, error) {
	if !validate.IsValidGrade(grade) {
		return nil, apperr.BadRequest("оценка должна быть целым числом от %d до %d", models.GradeMin, models.GradeMax)
	}
	value := validate.GradeValue(grade)

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	group, err := db.GetCourseGroupByID(ctx, s.db, groupID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if group == nil {
		return nil, apperr.NotFound("группа с id %d не найдена", groupID)
	}
	user, err := db.GetUserByID(ctx, s.db, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("пользователь с id %d не найден", userID)
	}

	member, err := db.IsGroupMember(ctx, s.db, groupID, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !member {
		return nil, apperr.BadRequest("пользователь не состоит в этой группе")
	}

	g := models.Grade{GroupID: groupID, UserID: userID, Grade: value, Comment: comment}
	id, err := db.AddGrade(ctx, s.db, g)
	if err != nil {
		s.log.Errorw("add grade", "group", groupID, "user", userID, "err", err)
		return nil, apperr.Internal(err)
	}
	out, err := db.GetGradeByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Grading) Update(ctx context.Context, id int64, upd models.GradeUpdate) (*models.Grade, error) {
	if upd.Grade != nil && !validate.IsValidGrade(*upd.Grade) {
		return nil, apperr.BadRequest("оценка должна быть целым числом от %d до %d", models.GradeMin, models.GradeMax)
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.UpdateGrade(ctx, s.db, id, upd)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if n == 0 {
		return nil, apperr.NotFound("оценка с id %d не найдена", id)
	}
	out, err := db.GetGradeByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Grading) Delete(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.DeleteGrade(ctx, s.db, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("оценка с id %d не найдена", id)
	}
	return nil
}

// StudentMarks — оценки ученика, новые сверху.
func (s *Grading) StudentMarks(ctx context.Context, userID int64) ([]models.Grade, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.GetStudentMarks(ctx, s.db, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// AllMarks — полная выборка для выгрузки в Excel.
func (s *Grading) AllMarks(ctx context.Context) ([]models.Grade, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.GetAllMarks(ctx, s.db)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Grading) GroupMarks(ctx context.Context, groupID int64) ([]models.Grade, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	group, err := db.GetCourseGroupByID(ctx, s.db, groupID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if group == nil {
		return nil, apperr.NotFound("группа с id %d не найдена", groupID)
	}
	out, err := db.GetGroupMarks(ctx, s.db, groupID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}
