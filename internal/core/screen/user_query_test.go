package screen

import (
	"errors"
	"net/url"
	"testing"

	"github.com/gerenciador/painel/internal/core/domain"
)

func TestParseUserQuery_Defaults(t *testing.T) {
	admin := domain.SessionUser{ID: 7, Role: domain.RoleAdmin}
	q, err := ParseUserQuery(url.Values{}, admin)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v := q.Values()
	if v.Get("role") != "USER" || v.Get("managerId") != "7" || v.Has("sortBy") || v.Has("order") {
		t.Fatalf("unexpected defaults %v", v)
	}
}

func TestParseUserQuery_Valid(t *testing.T) {
	admin := domain.SessionUser{ID: 7, Role: domain.RoleAdmin}
	q, err := ParseUserQuery(url.Values{
		"role": {"admin"}, "sortBy": {"createdAt"}, "order": {"DESC"}, "managerId": {"12"},
	}, admin)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Role != domain.RoleAdmin || q.SortBy != SortByCreatedAt || q.Order != OrderDesc || *q.ManagerID != 12 {
		t.Fatalf("unexpected query %+v", q)
	}
}

func TestParseUserQuery_EmptyRoleMeansAll(t *testing.T) {
	q, err := ParseUserQuery(url.Values{"role": {""}}, domain.SessionUser{ID: 1})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Values().Has("role") {
		t.Fatalf("empty role should not be sent")
	}
}

func TestParseUserQuery_Rejects(t *testing.T) {
	admin := domain.SessionUser{ID: 7}
	for _, v := range []url.Values{
		{"role": {"ROOT"}},
		{"sortBy": {"email"}},
		{"order": {"up"}},
		{"managerId": {"abc"}},
	} {
		if _, err := ParseUserQuery(v, admin); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%v: expected ErrValidation, got %v", v, err)
		}
	}
}
