package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/ctxutil"
	"github.com/lingvodom/school-api/internal/service"
)

type claims struct {
	UserID    int64 `json:"uid"`
	Superuser bool  `json:"su"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(userID int64, superuser bool) (string, error) {
	now := time.Now()
	c := claims{
		UserID:    userID,
		Superuser: superuser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.jwtSecret)
}

// authenticated — middleware: Bearer-токен обязателен, пользователь должен
// существовать и быть активным. Кладёт id и признак администратора в контекст.
func (s *Server) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if !strings.HasPrefix(raw, "Bearer ") {
			s.writeErr(w, r, apperr.BadRequest("требуется заголовок Authorization: Bearer"))
			return
		}
		raw = strings.TrimPrefix(raw, "Bearer ")

		var c claims
		tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, apperr.BadRequest("неожиданный метод подписи токена")
			}
			return s.jwtSecret, nil
		})
		if err != nil || !tok.Valid {
			s.writeErr(w, r, apperr.BadRequest("недействительный токен"))
			return
		}

		u, err := s.users.Get(r.Context(), c.UserID)
		if err != nil {
			s.writeErr(w, r, apperr.BadRequest("недействительный токен"))
			return
		}
		if !u.IsActive {
			s.writeErr(w, r, apperr.BadRequest("учётная запись отключена"))
			return
		}

		ctx := ctxutil.WithUserID(r.Context(), u.ID)
		ctx = ctxutil.WithSuperuser(ctx, u.IsSuperuser)
		next(w, r.WithContext(ctx))
	}
}

// superuserOnly — операции администратора.
func (s *Server) superuserOnly(next http.HandlerFunc) http.HandlerFunc {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request) {
		if !ctxutil.IsSuperuser(r.Context()) {
			writeJSON(w, http.StatusForbidden, map[string]any{
				"error": map[string]string{"kind": "forbidden", "message": "требуются права администратора"},
			})
			return
		}
		next(w, r)
	})
}

type registerRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	u, err := s.users.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userDTO(u))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	u, err := s.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	tok, err := s.issueToken(u.ID, u.IsSuperuser)
	if err != nil {
		s.writeErr(w, r, apperr.Internal(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": tok,
		"token_type":   "bearer",
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := ctxutil.UserID(r.Context())
	if !ok {
		s.writeErr(w, r, apperr.BadRequest("нет аутентификации"))
		return
	}
	u, err := s.users.GetDetailed(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userDTO(u))
}
