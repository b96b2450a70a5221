package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestKindOf(t *testing.T) {
	if KindOf(NotFound("нет")) != KindNotFound {
		t.Error("NotFound должен давать KindNotFound")
	}
	if KindOf(Conflict("занято")) != KindConflict {
		t.Error("Conflict должен давать KindConflict")
	}
	if KindOf(BadRequest("плохо")) != KindBadRequest {
		t.Error("BadRequest должен давать KindBadRequest")
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("произвольная ошибка должна давать KindInternal")
	}
}

func TestErrorsIsByKind(t *testing.T) {
	err := fmt.Errorf("обёртка: %w", NotFound("курс с id %d не найден", 7))
	if !errors.Is(err, &Error{Kind: KindNotFound}) {
		t.Error("errors.Is должен сравнивать по Kind через обёртки")
	}
	if errors.Is(err, &Error{Kind: KindConflict}) {
		t.Error("не совпадающий Kind не должен матчиться")
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound должен видеть обёрнутую ошибку")
	}
}

func TestSQLStatePredicates(t *testing.T) {
	unique := &pq.Error{Code: "23505"}
	fk := &pq.Error{Code: "23503"}
	check := &pq.Error{Code: "23514"}

	if !IsUniqueViolation(fmt.Errorf("insert: %w", unique)) {
		t.Error("23505 — это unique violation")
	}
	if !IsForeignKeyViolation(fk) {
		t.Error("23503 — это foreign key violation")
	}
	if !IsCheckViolation(check) {
		t.Error("23514 — это check violation")
	}
	if IsUniqueViolation(fk) || IsForeignKeyViolation(unique) {
		t.Error("предикаты перепутали коды")
	}
	if IsUniqueViolation(errors.New("plain")) {
		t.Error("обычная ошибка не должна матчиться")
	}
}

func TestInternalMessage(t *testing.T) {
	err := Internal(errors.New("pq: deadlock detected"))
	if err.Error() != "внутренняя ошибка сервера" {
		t.Errorf("внутренняя ошибка не должна раскрывать детали, получили %q", err.Error())
	}
	var ae *Error
	if !errors.As(err, &ae) || ae.Unwrap() == nil {
		t.Error("исходная причина должна сохраняться в цепочке")
	}
}
