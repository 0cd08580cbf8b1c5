// Package query turns list parameters (page, size, order, at most one filter)
// into validated SQL fragments for the repositories.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrAmbiguousFilter is returned when more than one filter parameter is supplied.
	ErrAmbiguousFilter = errors.New("just one search parameter for filtering must be provided")

	// ErrMalformedFilterValue is returned when a numeric filter receives a non-numeric value.
	ErrMalformedFilterValue = errors.New("the parameter id must be a number")

	// ErrUnknownField is returned when a filter or order field is not part of the entity.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidPaging is returned when page < 0 or size < 1.
	ErrInvalidPaging = errors.New("page must be >= 0 and size must be >= 1")
)

// Match selects how a filter value is compared against the stored column.
type Match int

const (
	// MatchExact compares the full value. Used for identifier-like fields.
	MatchExact Match = iota

	// MatchContains performs a substring match. Used for free-text fields and
	// for time fields stored as text.
	MatchContains

	// MatchNumeric compares the full value after an int64 coercion that must
	// succeed before the store is touched.
	MatchNumeric
)

// Field maps an exposed parameter name onto a column and a match kind.
type Field struct {
	Column string
	Match  Match
}

// FieldSet describes the filterable/orderable fields of one entity.
type FieldSet map[string]Field

// Entity field sets. One uniform matching policy across entity kinds:
// entity ids exact, free text contains, time-as-text contains, user id numeric.
var (
	ChannelFields = FieldSet{
		"id":          {Column: "id", Match: MatchExact},
		"name":        {Column: "name", Match: MatchContains},
		"description": {Column: "description", Match: MatchContains},
		"createdTime": {Column: "created_time", Match: MatchContains},
	}

	VideoFields = FieldSet{
		"id":          {Column: "id", Match: MatchExact},
		"name":        {Column: "name", Match: MatchContains},
		"description": {Column: "description", Match: MatchContains},
		"releaseTime": {Column: "release_time", Match: MatchContains},
	}

	CommentFields = FieldSet{
		"id":        {Column: "id", Match: MatchExact},
		"text":      {Column: "text", Match: MatchContains},
		"createdOn": {Column: "created_on", Match: MatchContains},
	}

	CaptionFields = FieldSet{
		"id":       {Column: "id", Match: MatchExact},
		"name":     {Column: "name", Match: MatchContains},
		"language": {Column: "language", Match: MatchExact},
	}

	UserFields = FieldSet{
		"id":          {Column: "id", Match: MatchNumeric},
		"name":        {Column: "name", Match: MatchContains},
		"userLink":    {Column: "user_link", Match: MatchContains},
		"pictureLink": {Column: "picture_link", Match: MatchContains},
	}
)

// ListQuery is a validated list request ready to be rendered into SQL.
type ListQuery struct {
	Page int
	Size int

	filterColumn string
	filterMatch  Match
	filterValue  any

	orderColumn string
	descending  bool
}

// Parse validates page/size, the single optional filter and the optional
// order expression ("field" ascending, "-field" descending) against the
// entity's field set.
func Parse(page, size int, order string, filters map[string]string, fields FieldSet) (*ListQuery, error) {
	if page < 0 || size < 1 {
		return nil, ErrInvalidPaging
	}

	q := &ListQuery{Page: page, Size: size}

	if len(filters) > 1 {
		return nil, ErrAmbiguousFilter
	}

	for name, value := range filters {
		field, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		q.filterColumn = field.Column
		q.filterMatch = field.Match

		switch field.Match {
		case MatchNumeric:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, ErrMalformedFilterValue
			}
			q.filterValue = n
		case MatchContains:
			q.filterValue = "%" + value + "%"
		default:
			q.filterValue = value
		}
	}

	if order != "" {
		name := order
		if strings.HasPrefix(order, "-") {
			q.descending = true
			name = order[1:]
		}
		field, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		q.orderColumn = field.Column
	}

	return q, nil
}

// Where renders the optional filter as a WHERE clause with positional
// arguments starting at $1. An empty clause is returned for unfiltered lists.
func (q *ListQuery) Where() (string, []any) {
	if q.filterColumn == "" {
		return "", nil
	}
	if q.filterMatch == MatchContains {
		return fmt.Sprintf("WHERE %s LIKE $1", q.filterColumn), []any{q.filterValue}
	}
	return fmt.Sprintf("WHERE %s = $1", q.filterColumn), []any{q.filterValue}
}

// OrderBy renders the ORDER BY clause, falling back to the given column when
// no order was requested so a single read stays stable across pages.
func (q *ListQuery) OrderBy(defaultColumn string) string {
	column := q.orderColumn
	if column == "" {
		column = defaultColumn
	}
	direction := "ASC"
	if q.descending {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

// Limit returns the page size.
func (q *ListQuery) Limit() int {
	return q.Size
}

// Offset returns the zero-indexed row offset.
func (q *ListQuery) Offset() int {
	return q.Page * q.Size
}
