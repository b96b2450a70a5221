package models

import (
	"fmt"
	"time"
)

// RequestStatus — закрытый набор статусов заявки. В исходной версии статус
// был свободной строкой; теперь любое значение вне набора отклоняется.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:  {RequestApproved, RequestRejected},
	RequestApproved: {},
	RequestRejected: {},
}

func ParseRequestStatus(s string) (RequestStatus, error) {
	switch st := RequestStatus(s); st {
	case RequestPending, RequestApproved, RequestRejected:
		return st, nil
	}
	return "", fmt.Errorf("неизвестный статус заявки %q", s)
}

// CanTransition — разрешён ли переход статуса. Повторная установка того же
// статуса допускается (идемпотентное обновление).
func (s RequestStatus) CanTransition(to RequestStatus) bool {
	if s == to {
		return true
	}
	for _, t := range requestTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

type CourseRequest struct {
	ID          int64
	UserID      int64
	CourseID    int64
	Status      RequestStatus
	IsProcessed bool
	IsArchived  bool
	CreatedAt   time.Time

	// Детали для админской карточки заявки
	UserName     *string
	UserEmail    *string
	CourseName   *string
	LanguageName *string
}

// RequestUpdate — частичное обновление заявки, поля независимы.
type RequestUpdate struct {
	Status      *RequestStatus
	IsProcessed *bool
	IsArchived  *bool
}
