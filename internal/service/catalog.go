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

// Catalog — курсы и их связи с уровнями.
type Catalog struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func NewCatalog(database *sql.DB, log *zap.SugaredLogger) *Catalog {
	return &Catalog{db: database, log: log.Named("catalog")}
}

func (s *Catalog) Create(ctx context.Context, nc models.NewCourse) (*models.Course, error) {
	if strings.TrimSpace(nc.Name) == "" {
		return nil, apperr.BadRequest("название курса не может быть пустым")
	}
	if nc.GroupSize <= 0 {
		return nil, apperr.BadRequest("размер группы должен быть положительным")
	}
	if nc.Price < 0 {
		return nil, apperr.BadRequest("цена не может быть отрицательной")
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	id, err := db.CreateCourse(ctx, s.db, nc)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("курс с названием %q уже существует", nc.Name)
		}
		if apperr.IsForeignKeyViolation(err) {
			return nil, apperr.NotFound("указан несуществующий язык, формат, уровень или возрастная группа")
		}
		s.log.Errorw("create course", "err", err)
		return nil, apperr.Internal(err)
	}
	return s.Get(ctx, id)
}

func (s *Catalog) Get(ctx context.Context, id int64) (*models.Course, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	c, err := db.GetCourseByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if c == nil {
		return nil, apperr.NotFound("курс с id %d не найден", id)
	}
	return c, nil
}

func (s *Catalog) List(ctx context.Context) ([]models.Course, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.ListCourses(ctx, s.db)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// Edit — частичное обновление: заданные поля перезаписываются, отсутствующие
// не трогаются; upd.Levels != nil заменяет набор уровней целиком.
func (s *Catalog) Edit(ctx context.Context, id int64, upd models.CourseUpdate) (*models.Course, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, apperr.BadRequest("название курса не может быть пустым")
	}
	if upd.GroupSize != nil && *upd.GroupSize <= 0 {
		return nil, apperr.BadRequest("размер группы должен быть положительным")
	}
	if upd.Price != nil && *upd.Price < 0 {
		return nil, apperr.BadRequest("цена не может быть отрицательной")
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.UpdateCourse(ctx, s.db, id, upd)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("курс с таким названием уже существует")
		}
		if apperr.IsForeignKeyViolation(err) {
			return nil, apperr.NotFound("указан несуществующий язык, формат, уровень или возрастная группа")
		}
		s.log.Errorw("edit course", "id", id, "err", err)
		return nil, apperr.Internal(err)
	}
	if n == 0 {
		return nil, apperr.NotFound("курс с id %d не найден", id)
	}
	return s.Get(ctx, id)
}

func (s *Catalog) Delete(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.DeleteCourse(ctx, s.db, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("курс с id %d не найден", id)
	}
	return nil
}

// UserCourses — производное представление: курсы, в группах которых
// состоит пользователь.
func (s *Catalog) UserCourses(ctx context.Context, userID int64) ([]models.UserCourse, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.GetUserCourses(ctx, s.db, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}
