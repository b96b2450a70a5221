package ctxutil

import (
	"context"
	"time"
)

// приватные ключи, чтобы исключить коллизии
type key int

const (
	keyUserID key = iota
	keySuperuser
	keyOpName
)

// WithUserID /UserID — id аутентифицированного пользователя в контексте запроса.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, keyUserID, userID)
}

func UserID(ctx context.Context) (int64, bool) {
	v := ctx.Value(keyUserID)
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// WithSuperuser /IsSuperuser — признак администратора, выставляется middleware-ом.
func WithSuperuser(ctx context.Context, su bool) context.Context {
	return context.WithValue(ctx, keySuperuser, su)
}

func IsSuperuser(ctx context.Context) bool {
	v := ctx.Value(keySuperuser)
	if v == nil {
		return false
	}
	su, _ := v.(bool)
	return su
}

// WithOp /Op — имя операции (для логов/трейса)
func WithOp(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyOpName, name)
}

func Op(ctx context.Context) (string, bool) {
	v := ctx.Value(keyOpName)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Таймаут на поход в БД. Пока константа; при желании вынесем в конфиг.
var DefaultDBTimeout = 5 * time.Second

// WithDBTimeout — стандартный таймаут для БД с учётом дедлайна родителя.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		remain := time.Until(dl)
		if remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
