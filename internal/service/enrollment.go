package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/ctxutil"
	"github.com/lingvodom/school-api/internal/db"
	"github.com/lingvodom/school-api/internal/models"
)

// Enrollment — заявки на курсы и их жизненный цикл.
type Enrollment struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func NewEnrollment(database *sql.DB, log *zap.SugaredLogger) *Enrollment {
	return &Enrollment{db: database, log: log.Named("enrollment")}
}

// Create — новая заявка со статусом pending. Повторная заявка на тот же курс
// отбивается уникальным constraint-ом: гонка двух одинаковых заявок закрыта
// на уровне БД, а не проверкой перед вставкой.
func (s *Enrollment) Create(ctx context.Context, userID, courseID int64) (*models.CourseRequest, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	course, err := db.GetCourseByID(ctx, s.db, courseID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if course == nil {
		return nil, apperr.NotFound("курс с данным id не найден")
	}

	req, err := db.CreateCourseRequest(ctx, s.db, userID, courseID)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("вы уже отправляли заявку на данный курс")
		}
		if apperr.IsForeignKeyViolation(err) {
			return nil, apperr.NotFound("пользователь или курс не найдены")
		}
		s.log.Errorw("create course request", "user", userID, "course", courseID, "err", err)
		return nil, apperr.Internal(err)
	}
	return req, nil
}

// Update — независимое частичное обновление статуса и флагов.
// Статус принимается только из закрытого набора, переход проверяется
// по таблице переходов.
func (s *Enrollment) Update(ctx context.Context, id int64, upd models.RequestUpdate) (*models.CourseRequest, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	cur, err := db.GetCourseRequestByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if cur == nil {
		return nil, apperr.NotFound("заявка с id %d не найдена", id)
	}

	if upd.Status != nil && !cur.Status.CanTransition(*upd.Status) {
		return nil, apperr.BadRequest("переход статуса %s → %s запрещён", cur.Status, *upd.Status)
	}

	n, err := db.UpdateCourseRequest(ctx, s.db, id, upd)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if n == 0 {
		return nil, apperr.NotFound("заявка с id %d не найдена", id)
	}
	updated, err := db.GetCourseRequestByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return updated, nil
}

func (s *Enrollment) Delete(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.DeleteCourseRequest(ctx, s.db, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("заявка с id %d не найдена", id)
	}
	return nil
}

func (s *Enrollment) ListAll(ctx context.Context) ([]models.CourseRequest, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.ListCourseRequests(ctx, s.db)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Enrollment) ListByUser(ctx context.Context, userID int64) ([]models.CourseRequest, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.ListCourseRequestsByUser(ctx, s.db, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Enrollment) GetDetailed(ctx context.Context, id int64) (*models.CourseRequest, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	r, err := db.GetDetailedCourseRequest(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if r == nil {
		return nil, apperr.NotFound("заявка с id %d не найдена", id)
	}
	return r, nil
}
