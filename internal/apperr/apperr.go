// Package apperr — типизированные ошибки доменного слоя.
// Каждая операция возвращает ошибку с устойчивым Kind, по которому
// HTTP-слой выбирает статус ответа; текст не содержит SQL и стектрейсов.
package apperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindBadRequest
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is позволяет сравнивать через errors.Is(err, apperr.NotFound("")) по Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Msg: fmt.Sprintf(format, args...)}
}

func Internal(err error) error {
	return &Error{Kind: KindInternal, Msg: "внутренняя ошибка сервера", Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsBadRequest(err error) bool { return KindOf(err) == KindBadRequest }

// SQLSTATE-коды PostgreSQL, которые мы распознаём.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	// в тестовой обвязке соединение идёт через lib/pq
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation — нарушение уникального constraint-а. Именно оно, а не
// предварительная проверка существования, служит сигналом Conflict.
func IsUniqueViolation(err error) bool { return sqlState(err) == pgUniqueViolation }

// IsForeignKeyViolation — нарушение внешнего ключа (ссылка на отсутствующую
// запись либо удаление записи, на которую ещё ссылаются).
func IsForeignKeyViolation(err error) bool { return sqlState(err) == pgForeignKeyViolation }

// IsCheckViolation — нарушение CHECK-constraint-а (например, оценка вне 0..10).
func IsCheckViolation(err error) bool { return sqlState(err) == pgCheckViolation }
