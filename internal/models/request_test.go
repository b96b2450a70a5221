package models

import "testing"

func TestParseRequestStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		if _, err := ParseRequestStatus(s); err != nil {
			t.Errorf("ParseRequestStatus(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "new", "PENDING", "done"} {
		if _, err := ParseRequestStatus(s); err == nil {
			t.Errorf("ParseRequestStatus(%q): ожидали ошибку", s)
		}
	}
}

func TestRequestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		want     bool
	}{
		{RequestPending, RequestApproved, true},
		{RequestPending, RequestRejected, true},
		{RequestPending, RequestPending, true}, // идемпотентно
		{RequestApproved, RequestApproved, true},
		{RequestApproved, RequestRejected, false}, // конечный статус
		{RequestApproved, RequestPending, false},
		{RequestRejected, RequestApproved, false},
		{RequestRejected, RequestPending, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("%s → %s: получили %v, ожидали %v", c.from, c.to, got, c.want)
		}
	}
}
