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

// Comments — отзывы о школе с премодерацией: отзыв виден публично
// только после подтверждения.
type Comments struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func NewComments(database *sql.DB, log *zap.SugaredLogger) *Comments {
	return &Comments{db: database, log: log.Named("comments")}
}

func (s *Comments) Add(ctx context.Context, userID int64, text string) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, apperr.BadRequest("текст отзыва не может быть пустым")
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	user, err := db.GetUserByID(ctx, s.db, userID)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if user == nil {
		return 0, apperr.NotFound("пользователь с id %d не найден", userID)
	}

	id, err := db.AddSchoolComment(ctx, s.db, userID, text)
	if err != nil {
		s.log.Errorw("add comment", "user", userID, "err", err)
		return 0, apperr.Internal(err)
	}
	return id, nil
}

func (s *Comments) Verify(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.VerifySchoolComment(ctx, s.db, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("отзыв с id %d не найден", id)
	}
	return nil
}

func (s *Comments) Delete(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.DeleteSchoolComment(ctx, s.db, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("отзыв с id %d не найден", id)
	}
	return nil
}

// ListVerified — публичная выборка подтверждённых отзывов.
func (s *Comments) ListVerified(ctx context.Context) ([]models.SchoolComment, error) {
	v := true
	return s.list(ctx, &v)
}

// ListUnverified — очередь модерации.
func (s *Comments) ListUnverified(ctx context.Context) ([]models.SchoolComment, error) {
	v := false
	return s.list(ctx, &v)
}

func (s *Comments) ListAll(ctx context.Context) ([]models.SchoolComment, error) {
	return s.list(ctx, nil)
}

func (s *Comments) list(ctx context.Context, verified *bool) ([]models.SchoolComment, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.ListSchoolComments(ctx, s.db, verified)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}
