package service

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/ctxutil"
	"github.com/lingvodom/school-api/internal/db"
	"github.com/lingvodom/school-api/internal/models"
	"github.com/lingvodom/school-api/internal/validate"
)

// Users — учётные записи и роли.
type Users struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func NewUsers(database *sql.DB, log *zap.SugaredLogger) *Users {
	return &Users{db: database, log: log.Named("users")}
}

type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Phone     string
	Password  string
}

func (s *Users) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if !validate.EmailValid(in.Email) {
		return nil, apperr.BadRequest("некорректный email")
	}
	if len(in.Password) < 8 {
		return nil, apperr.BadRequest("пароль должен быть не короче 8 символов")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	u := models.User{
		Email:          in.Email,
		Username:       in.Username,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		HashedPassword: string(hash),
		IsActive:       true,
	}
	id, err := db.CreateUser(ctx, s.db, u)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("пользователь с таким email или телефоном уже зарегистрирован")
		}
		s.log.Errorw("register user", "email", in.Email, "err", err)
		return nil, apperr.Internal(err)
	}

	out, err := db.GetUserByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// Authenticate — проверка пары email/пароль. Неактивная учётная запись
// отклоняется тем же сообщением, что и неверный пароль.
func (s *Users) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	u, err := db.GetUserByEmail(ctx, s.db, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil || !u.IsActive {
		return nil, apperr.BadRequest("неверный email или пароль")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return nil, apperr.BadRequest("неверный email или пароль")
	}
	return u, nil
}

func (s *Users) Get(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	u, err := db.GetUserByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		return nil, apperr.NotFound("пользователь с id %d не найден", id)
	}
	return u, nil
}

func (s *Users) GetDetailed(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	u, err := db.GetDetailedUser(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		return nil, apperr.NotFound("пользователь с id %d не найден", id)
	}
	return u, nil
}

func (s *Users) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	if upd.Email != nil {
		e := strings.TrimSpace(strings.ToLower(*upd.Email))
		if !validate.EmailValid(e) {
			return nil, apperr.BadRequest("некорректный email")
		}
		upd.Email = &e
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.UpdateUser(ctx, s.db, id, upd)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("пользователь с таким email или телефоном уже существует")
		}
		return nil, apperr.Internal(err)
	}
	if n == 0 {
		return nil, apperr.NotFound("пользователь с id %d не найден", id)
	}
	u, err := db.GetUserByID(ctx, s.db, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return u, nil
}

func (s *Users) SetRole(ctx context.Context, userID, roleID int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	role, err := db.GetRoleByID(ctx, s.db, roleID)
	if err != nil {
		return apperr.Internal(err)
	}
	if role == nil {
		return apperr.NotFound("роль с id %d не найдена", roleID)
	}
	n, err := db.SetUserRole(ctx, s.db, userID, roleID)
	if err != nil {
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("пользователь с id %d не найден", userID)
	}
	return nil
}

// Delete — запрещает удаление, пока на пользователя ссылаются группы,
// оценки или заявки: ограничение внешнего ключа превращается в Conflict.
func (s *Users) Delete(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.DeleteUser(ctx, s.db, id)
	if err != nil {
		if apperr.IsForeignKeyViolation(err) {
			return apperr.Conflict("пользователь участвует в группах, заявках или оценках и не может быть удалён")
		}
		return apperr.Internal(err)
	}
	if n == 0 {
		return apperr.NotFound("пользователь с id %d не найден", id)
	}
	return nil
}

func (s *Users) ListRoles(ctx context.Context) ([]models.Role, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.ListRoles(ctx, s.db)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Users) ListTeachers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	out, err := db.ListTeachers(ctx, s.db)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}
