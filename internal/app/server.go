package app

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lingvodom/school-api/internal/config"
	"github.com/lingvodom/school-api/internal/ctxutil"
	"github.com/lingvodom/school-api/internal/metrics"
	"github.com/lingvodom/school-api/internal/service"
)

// Server — HTTP-слой поверх сервисов. Маршрутизация на stdlib-мультиплексоре
// с шаблонами методов и путей (Go 1.22+).
type Server struct {
	db  *sql.DB
	log *zap.SugaredLogger

	users      *service.Users
	reference  *service.Reference
	catalog    *service.Catalog
	enrollment *service.Enrollment
	groups     *service.Groups
	grading    *service.Grading
	comments   *service.Comments

	jwtSecret []byte
	tokenTTL  time.Duration

	srv *http.Server
}

func NewServer(cfg *config.Config, database *sql.DB, log *zap.SugaredLogger) *Server {
	s := &Server{
		db:         database,
		log:        log.Named("http"),
		users:      service.NewUsers(database, log),
		reference:  service.NewReference(database, log),
		catalog:    service.NewCatalog(database, log),
		enrollment: service.NewEnrollment(database, log),
		groups:     service.NewGroups(database, log),
		grading:    service.NewGrading(database, log),
		comments:   service.NewComments(database, log),
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
	}
	s.srv = &http.Server{Addr: cfg.HTTPAddr, Handler: s.routes()}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := s.db.PingContext(ctx); err != nil {
			http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		metrics.ObserveDBPing(time.Since(t0))
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", metrics.Handler())

	// Аутентификация
	mux.HandleFunc("POST /auth/register", s.instrument("auth.register", s.handleRegister))
	mux.HandleFunc("POST /auth/login", s.instrument("auth.login", s.handleLogin))
	mux.HandleFunc("GET /auth/me", s.instrument("auth.me", s.authenticated(s.handleMe)))

	// Пользователи и роли
	mux.HandleFunc("GET /users/{id}", s.instrument("users.get", s.authenticated(s.handleGetUser)))
	mux.HandleFunc("PATCH /users/{id}", s.instrument("users.update", s.superuserOnly(s.handleUpdateUser)))
	mux.HandleFunc("DELETE /users/{id}", s.instrument("users.delete", s.superuserOnly(s.handleDeleteUser)))
	mux.HandleFunc("PUT /users/{id}/role", s.instrument("users.set_role", s.superuserOnly(s.handleSetRole)))
	mux.HandleFunc("GET /users/{id}/courses", s.instrument("users.courses", s.authenticated(s.handleUserCourses)))
	mux.HandleFunc("GET /users/{id}/marks", s.instrument("users.marks", s.authenticated(s.handleStudentMarks)))
	mux.HandleFunc("GET /users/{id}/requests", s.instrument("users.requests", s.authenticated(s.handleUserRequests)))
	mux.HandleFunc("GET /roles", s.instrument("roles.list", s.superuserOnly(s.handleListRoles)))
	mux.HandleFunc("GET /teachers", s.instrument("teachers.list", s.superuserOnly(s.handleListTeachers)))
	mux.HandleFunc("GET /teachers/{id}/groups", s.instrument("teachers.groups", s.authenticated(s.handleTeacherGroups)))

	// Справочники
	s.referenceRoutes(mux)

	// Каталог курсов
	mux.HandleFunc("POST /courses", s.instrument("courses.create", s.superuserOnly(s.handleCreateCourse)))
	mux.HandleFunc("GET /courses", s.instrument("courses.list", s.handleListCourses))
	mux.HandleFunc("GET /courses/{id}", s.instrument("courses.get", s.handleGetCourse))
	mux.HandleFunc("PATCH /courses/{id}", s.instrument("courses.edit", s.superuserOnly(s.handleEditCourse)))
	mux.HandleFunc("DELETE /courses/{id}", s.instrument("courses.delete", s.superuserOnly(s.handleDeleteCourse)))
	mux.HandleFunc("GET /courses/{id}/students", s.instrument("courses.students", s.superuserOnly(s.handleCourseStudents)))

	// Заявки на курсы
	mux.HandleFunc("POST /requests", s.instrument("requests.create", s.authenticated(s.handleCreateRequest)))
	mux.HandleFunc("GET /requests", s.instrument("requests.list", s.superuserOnly(s.handleListRequests)))
	mux.HandleFunc("GET /requests/{id}", s.instrument("requests.get", s.superuserOnly(s.handleGetRequest)))
	mux.HandleFunc("PATCH /requests/{id}", s.instrument("requests.update", s.superuserOnly(s.handleUpdateRequest)))
	mux.HandleFunc("DELETE /requests/{id}", s.instrument("requests.delete", s.superuserOnly(s.handleDeleteRequest)))

	// Группы
	mux.HandleFunc("POST /groups", s.instrument("groups.create", s.superuserOnly(s.handleCreateGroup)))
	mux.HandleFunc("GET /groups", s.instrument("groups.list", s.superuserOnly(s.handleListGroups)))
	mux.HandleFunc("GET /groups/{id}", s.instrument("groups.get", s.superuserOnly(s.handleGetGroup)))
	mux.HandleFunc("POST /groups/{id}/users", s.instrument("groups.add_user", s.superuserOnly(s.handleAddGroupUser)))
	mux.HandleFunc("DELETE /groups/{id}/users/{userID}", s.instrument("groups.remove_user", s.superuserOnly(s.handleRemoveGroupUser)))
	mux.HandleFunc("PUT /groups/{id}/teacher", s.instrument("groups.assign_teacher", s.superuserOnly(s.handleAssignTeacher)))
	mux.HandleFunc("GET /groups/{id}/marks", s.instrument("groups.marks", s.authenticated(s.handleGroupMarks)))

	// Оценки
	mux.HandleFunc("POST /grades", s.instrument("grades.add", s.authenticated(s.handleAddGrade)))
	mux.HandleFunc("PATCH /grades/{id}", s.instrument("grades.update", s.authenticated(s.handleUpdateGrade)))
	mux.HandleFunc("DELETE /grades/{id}", s.instrument("grades.delete", s.authenticated(s.handleDeleteGrade)))

	// Отзывы о школе
	mux.HandleFunc("POST /comments", s.instrument("comments.add", s.authenticated(s.handleAddComment)))
	mux.HandleFunc("GET /comments", s.instrument("comments.list", s.handleListComments))
	mux.HandleFunc("GET /comments/moderation", s.instrument("comments.moderation", s.superuserOnly(s.handleModerationQueue)))
	mux.HandleFunc("POST /comments/{id}/verify", s.instrument("comments.verify", s.superuserOnly(s.handleVerifyComment)))
	mux.HandleFunc("DELETE /comments/{id}", s.instrument("comments.delete", s.superuserOnly(s.handleDeleteComment)))

	// Экспорт
	mux.HandleFunc("GET /export/grades", s.instrument("export.grades", s.superuserOnly(s.handleExportGrades)))

	return mux
}

// instrument — имя операции в контекст и счётчик запросов по маршруту и статусу.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r.WithContext(ctxutil.WithOp(r.Context(), route)))
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Start — неблокирующий запуск; сервер гасится при отмене ctx.
func (s *Server) Start(ctx context.Context) {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Errorw("http server", "err", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shCtx)
	}()
}
