// Package service — менеджеры предметной области. Каждый метод выполняется
// в рамках одного запроса: валидация до каких-либо мутаций, типизированная
// ошибка наружу, таймаут на обращения к БД.
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

// Reference — CRUD справочников: языки, уровни, форматы, возрастные группы.
type Reference struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func NewReference(database *sql.DB, log *zap.SugaredLogger) *Reference {
	return &Reference{db: database, log: log.Named("reference")}
}

// --- языки ---

func (s *Reference) CreateLanguage(ctx context.Context, l models.Language) (*models.Language, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	id, err := db.CreateLanguage(ctx, s.db, l)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("язык с названием %q уже существует", l.Name)
		}
		s.log.Errorw("create language", "err", err)
		return nil, apperr.Internal(err)
	}
	l.ID = id
	return &l, nil
}

func (s *Reference) GetLanguage(ctx context.Context, id int64) (*models.Language, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	l, err := db.GetLanguageByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if l == nil {
		return nil, apperr.NotFound("язык с id %d не найден", id)
	}
	return l, nil
}

func (s *Reference) ListLanguages(ctx context.Context) ([]models.Language, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.ListLanguages(ctx, s.db)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Reference) EditLanguage(ctx context.Context, l models.Language) (*models.Language, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.UpdateLanguage(ctx, s.db, l)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("язык с названием %q уже существует", l.Name)
		}
		return nil, apperr.Internal(err)
	}
	if n == 0 {
		return nil, apperr.NotFound("язык с id %d не найден", l.ID)
	}
	return &l, nil
}

func (s *Reference) DeleteLanguage(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.DeleteLanguage(ctx, s.db, id)
	if err != nil {
		if apperr.IsForeignKeyViolation(err) {
			return apperr.Conflict("язык используется курсами и не может быть удалён")
		}
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("язык с id %d не найден", id)
	}
	return nil
}

// --- уровни ---

func (s *Reference) CreateLevel(ctx context.Context, l models.Level) (*models.Level, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	id, err := db.CreateLevel(ctx, s.db, l)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("уровень %q уже существует", l.Name)
		}
		s.log.Errorw("create level", "err", err)
		return nil, apperr.Internal(err)
	}
	l.ID = id
	return &l, nil
}

func (s *Reference) GetLevel(ctx context.Context, id int64) (*models.Level, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	l, err := db.GetLevelByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if l == nil {
		return nil, apperr.NotFound("уровень с id %d не найден", id)
	}
	return l, nil
}

func (s *Reference) ListLevels(ctx context.Context) ([]models.Level, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.ListLevels(ctx, s.db)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Reference) EditLevel(ctx context.Context, l models.Level) (*models.Level, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.UpdateLevel(ctx, s.db, l)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("уровень %q уже существует", l.Name)
		}
		return nil, apperr.Internal(err)
	}
	if n == 0 {
		return nil, apperr.NotFound("уровень с id %d не найден", l.ID)
	}
	return &l, nil
}

func (s *Reference) DeleteLevel(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.DeleteLevel(ctx, s.db, id)
	if err != nil {
		if apperr.IsForeignKeyViolation(err) {
			return apperr.Conflict("уровень используется курсами и не может быть удалён")
		}
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("уровень с id %d не найден", id)
	}
	return nil
}

// --- форматы курсов ---

func (s *Reference) CreateFormat(ctx context.Context, name string) (*models.CourseFormat, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	id, err := db.CreateCourseFormat(ctx, s.db, name)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("формат %q уже существует", name)
		}
		s.log.Errorw("create format", "err", err)
		return nil, apperr.Internal(err)
	}
	return &models.CourseFormat{ID: id, Name: name}, nil
}

func (s *Reference) GetFormat(ctx context.Context, id int64) (*models.CourseFormat, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	f, err := db.GetCourseFormatByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if f == nil {
		return nil, apperr.NotFound("формат с id %d не найден", id)
	}
	return f, nil
}

func (s *Reference) ListFormats(ctx context.Context) ([]models.CourseFormat, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.ListCourseFormats(ctx, s.db)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Reference) EditFormat(ctx context.Context, id int64, name string) (*models.CourseFormat, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.UpdateCourseFormat(ctx, s.db, id, name)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("формат %q уже существует", name)
		}
		return nil, apperr.Internal(err)
	}
	if n == 0 {
		return nil, apperr.NotFound("формат с id %d не найден", id)
	}
	return &models.CourseFormat{ID: id, Name: name}, nil
}

func (s *Reference) DeleteFormat(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.DeleteCourseFormat(ctx, s.db, id)
	if err != nil {
		if apperr.IsForeignKeyViolation(err) {
			return apperr.Conflict("формат используется курсами и не может быть удалён")
		}
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("формат с id %d не найден", id)
	}
	return nil
}

// --- возрастные группы ---

func (s *Reference) CreateAgeGroup(ctx context.Context, g models.AgeGroup) (*models.AgeGroup, error) {
	if g.MinAge < 0 || g.MaxAge < g.MinAge {
		return nil, apperr.BadRequest("некорректный возрастной диапазон: %d–%d", g.MinAge, g.MaxAge)
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	id, err := db.CreateAgeGroup(ctx, s.db, g)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("возрастная группа %q уже существует", g.Name)
		}
		s.log.Errorw("create age group", "err", err)
		return nil, apperr.Internal(err)
	}
	g.ID = id
	return &g, nil
}

func (s *Reference) GetAgeGroup(ctx context.Context, id int64) (*models.AgeGroup, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	g, err := db.GetAgeGroupByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if g == nil {
		return nil, apperr.NotFound("возрастная группа с id %d не найдена", id)
	}
	return g, nil
}

func (s *Reference) ListAgeGroups(ctx context.Context) ([]models.AgeGroup, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.ListAgeGroups(ctx, s.db)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Reference) EditAgeGroup(ctx context.Context, g models.AgeGroup) (*models.AgeGroup, error) {
	if g.MinAge < 0 || g.MaxAge < g.MinAge {
		return nil, apperr.BadRequest("некорректный возрастной диапазон: %d–%d", g.MinAge, g.MaxAge)
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.UpdateAgeGroup(ctx, s.db, g)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("возрастная группа %q уже существует", g.Name)
		}
		return nil, apperr.Internal(err)
	}
	if n == 0 {
		return nil, apperr.NotFound("возрастная группа с id %d не найдена", g.ID)
	}
	return &g, nil
}

func (s *Reference) DeleteAgeGroup(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.DeleteAgeGroup(ctx, s.db, id)
	if err != nil {
		if apperr.IsForeignKeyViolation(err) {
			return apperr.Conflict("возрастная группа используется курсами и не может быть удалена")
		}
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("возрастная группа с id %d не найдена", id)
	}
	return nil
}
