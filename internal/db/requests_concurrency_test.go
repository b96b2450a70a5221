//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/db"
	"github.com/lingvodom/school-api/internal/models"
	"github.com/lingvodom/school-api/internal/testutil/testdb"
)

func TestCreateCourseRequest_Duplicate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	userID := mustSeedUser(t, h.DB, "Иван")
	courseID := mustSeedCourse(t, h.DB)

	first, err := db.CreateCourseRequest(ctx, h.DB, userID, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if first.Status != models.RequestPending {
		t.Fatalf("новая заявка должна быть pending, получили %s", first.Status)
	}

	_, err = db.CreateCourseRequest(ctx, h.DB, userID, courseID)
	if !apperr.IsUniqueViolation(err) {
		t.Fatalf("повторная заявка: ожидали unique violation, получили %v", err)
	}
}

// Гонка двух одинаковых заявок закрывается constraint-ом, а не проверкой
// перед вставкой: из N конкурентных попыток проходит ровно одна.
func TestCreateCourseRequest_Parallel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	userID := mustSeedUser(t, h.DB, "Иван")
	courseID := mustSeedCourse(t, h.DB)

	var ok, dup int64
	wg := sync.WaitGroup{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := db.CreateCourseRequest(ctx, h.DB, userID, courseID)
			switch {
			case err == nil:
				atomic.AddInt64(&ok, 1)
			case apperr.IsUniqueViolation(err):
				atomic.AddInt64(&dup, 1)
			default:
				t.Errorf("неожиданная ошибка: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 {
		t.Fatalf("успешных вставок %d, ожидали ровно 1 (отклонено %d)", ok, dup)
	}
}

func TestUpdateCourseRequest_Fields(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	userID := mustSeedUser(t, h.DB, "Иван")
	courseID := mustSeedCourse(t, h.DB)
	req, err := db.CreateCourseRequest(ctx, h.DB, userID, courseID)
	if err != nil {
		t.Fatal(err)
	}

	st := models.RequestApproved
	proc := true
	n, err := db.UpdateCourseRequest(ctx, h.DB, req.ID, models.RequestUpdate{Status: &st, IsProcessed: &proc})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("affected=%d", n)
	}

	got, err := db.GetCourseRequestByID(ctx, h.DB, req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.RequestApproved || !got.IsProcessed || got.IsArchived {
		t.Fatalf("после обновления: %+v", got)
	}

	// несуществующая заявка
	n, err = db.UpdateCourseRequest(ctx, h.DB, 99999, models.RequestUpdate{Status: &st})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("обновление несуществующей заявки: affected=%d", n)
	}
}
