package employee

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SortKey names a column the list may be ordered by.
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByEmail      SortKey = "email"
	SortByRole       SortKey = "role"
	SortByDepartment SortKey = "department"
	SortByStatus     SortKey = "status"
	SortByHireDate   SortKey = "hire_date"
	SortBySalary     SortKey = "salary"
)

var sortKeys = map[SortKey]struct{}{
	SortByName:       {},
	SortByEmail:      {},
	SortByRole:       {},
	SortByDepartment: {},
	SortByStatus:     {},
	SortByHireDate:   {},
	SortBySalary:     {},
}

func (k SortKey) Valid() bool {
	_, ok := sortKeys[k]
	return ok
}

type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// ListParams are the raw list criteria as received from the caller.
type ListParams struct {
	Search     string
	Department string
	Role       string
	Status     string
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

// ListQuery is a validated set of list criteria. Empty strings mean "no filter".
type ListQuery struct {
	Search     string
	Department string
	Role       string
	Status     Status
	SortBy     SortKey
	Order      SortOrder
	Limit      int
	Offset     int
}

// Filter is a ListQuery with access scoping applied. A non-nil OwnerID restricts
// the result to rows owned by that user.
type Filter struct {
	ListQuery
	OwnerID *uuid.UUID
}

// ParseListQuery validates raw criteria. Sort key and direction are checked against
// an allow-list; anything else is rejected with ErrInvalidArgument.
func ParseListQuery(p ListParams) (ListQuery, error) {
	q := ListQuery{
		Search:     strings.TrimSpace(p.Search),
		Department: strings.TrimSpace(p.Department),
		Role:       strings.TrimSpace(p.Role),
		SortBy:     SortByName,
		Order:      Asc,
		Limit:      p.Limit,
		Offset:     p.Offset,
	}

	if s := strings.TrimSpace(p.Status); s != "" {
		q.Status = Status(strings.ToLower(s))
		if !q.Status.Valid() {
			return ListQuery{}, fmt.Errorf("%w: unsupported status %q", ErrInvalidArgument, s)
		}
	}

	if k := strings.TrimSpace(p.SortBy); k != "" {
		q.SortBy = SortKey(k)
		if !q.SortBy.Valid() {
			return ListQuery{}, fmt.Errorf("%w: unsupported sort key %q", ErrInvalidArgument, k)
		}
	}

	if o := strings.TrimSpace(p.SortOrder); o != "" {
		switch SortOrder(strings.ToUpper(o)) {
		case Asc:
			q.Order = Asc
		case Desc:
			q.Order = Desc
		default:
			return ListQuery{}, fmt.Errorf("%w: unsupported sort order %q", ErrInvalidArgument, o)
		}
	}

	if q.Limit < 0 || q.Offset < 0 {
		return ListQuery{}, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidArgument)
	}
	return q, nil
}
