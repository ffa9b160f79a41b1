package screen

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gerenciador/painel/internal/core/domain"
)

type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "createdAt"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// UserQuery is the typed form of the /users list parameters. Empty SortBy and
// Order leave ordering to the API.
type UserQuery struct {
	Role      domain.Role
	SortBy    SortField
	Order     SortOrder
	ManagerID *int64
}

// DefaultUserQuery lists the regular users managed by admin.
func DefaultUserQuery(admin domain.SessionUser) UserQuery {
	id := admin.ID
	return UserQuery{Role: domain.RoleUser, ManagerID: &id}
}

// ParseUserQuery reads the query from request parameters on top of the
// defaults for admin and validates it.
func ParseUserQuery(v url.Values, admin domain.SessionUser) (UserQuery, error) {
	q := DefaultUserQuery(admin)
	if raw, ok := v["role"]; ok {
		q.Role = domain.Role(strings.ToUpper(strings.TrimSpace(firstOf(raw))))
	}
	q.SortBy = SortField(strings.TrimSpace(v.Get("sortBy")))
	q.Order = SortOrder(strings.ToLower(strings.TrimSpace(v.Get("order"))))
	if raw := strings.TrimSpace(v.Get("managerId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return q, fmt.Errorf("%w: managerId %q", domain.ErrValidation, raw)
		}
		q.ManagerID = &id
	}
	return q, q.Validate()
}

func (q UserQuery) Validate() error {
	if q.Role != "" && !q.Role.Valid() {
		return fmt.Errorf("%w: role %q", domain.ErrValidation, q.Role)
	}
	switch q.SortBy {
	case "", SortByName, SortByCreatedAt:
	default:
		return fmt.Errorf("%w: sortBy %q", domain.ErrValidation, q.SortBy)
	}
	switch q.Order {
	case "", OrderAsc, OrderDesc:
	default:
		return fmt.Errorf("%w: order %q", domain.ErrValidation, q.Order)
	}
	return nil
}

// Values encodes the set parameters only.
func (q UserQuery) Values() url.Values {
	v := url.Values{}
	if q.Role != "" {
		v.Set("role", string(q.Role))
	}
	if q.SortBy != "" {
		v.Set("sortBy", string(q.SortBy))
	}
	if q.Order != "" {
		v.Set("order", string(q.Order))
	}
	if q.ManagerID != nil {
		v.Set("managerId", strconv.FormatInt(*q.ManagerID, 10))
	}
	return v
}

func firstOf(v []string) string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}
