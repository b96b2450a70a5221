package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/ctxutil"
	"github.com/lingvodom/school-api/internal/metrics"
	"github.com/lingvodom/school-api/internal/observability"
)

type errBody struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeErr переводит доменную ошибку в HTTP-статус. Внутренние ошибки
// уходят в Sentry и отдаются клиенту без деталей.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var body errBody

	var ae *apperr.Error
	kind := apperr.KindInternal
	if errors.As(err, &ae) {
		kind = ae.Kind
	}

	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindBadRequest:
		status = http.StatusBadRequest
	}

	body.Error.Kind = kind.String()
	if kind == apperr.KindInternal {
		body.Error.Message = "внутренняя ошибка сервера"
		metrics.HandlerErrors.Inc()
		observability.CaptureErr(err)
		op, _ := ctxutil.Op(r.Context())
		s.log.Errorw("internal error", "op", op, "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		body.Error.Message = err.Error()
	}

	writeJSON(w, status, body)
}

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return apperr.BadRequest("некорректное тело запроса: %v", err)
	}
	return nil
}

// pathID — числовой идентификатор из шаблона маршрута ({id} и т.п.).
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("некорректный идентификатор %q", raw)
	}
	return id, nil
}
