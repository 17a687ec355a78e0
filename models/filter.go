package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FilterAll is the wire form of a filter that matches everything.
const FilterAll = "all"

const DefaultBudget = 20000

var ErrInvalidFilter = errors.New("invalid filter value")

// Filter is either All, which matches every value, or Only(v), which matches v alone.
// The zero value is All.
type Filter[T comparable] struct {
	value T
	only  bool
}

func All[T comparable]() Filter[T] {
	return Filter[T]{}
}

func Only[T comparable](v T) Filter[T] {
	return Filter[T]{value: v, only: true}
}

func (f Filter[T]) IsAll() bool {
	return !f.only
}

func (f Filter[T]) Value() (T, bool) {
	return f.value, f.only
}

func (f Filter[T]) Matches(v T) bool {
	return !f.only || f.value == v
}

func (f Filter[T]) String() string {
	if !f.only {
		return FilterAll
	}
	return fmt.Sprint(f.value)
}

func (f Filter[T]) MarshalJSON() ([]byte, error) {
	if !f.only {
		return json.Marshal(FilterAll)
	}
	return json.Marshal(f.value)
}

func (f *Filter[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = All[T]()
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err == nil && isAllToken(raw) {
		*f = All[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFilter, err.Error())
	}
	if err := checkValid(v); err != nil {
		return err
	}
	*f = Only(v)
	return nil
}

// ParseFilter reads a query-string filter. Empty and "all" mean All.
func ParseFilter[T comparable](raw string, parse func(string) (T, error)) (Filter[T], error) {
	raw = strings.TrimSpace(raw)
	if isAllToken(raw) {
		return All[T](), nil
	}
	v, err := parse(raw)
	if err != nil {
		return All[T](), fmt.Errorf("%w: %s", ErrInvalidFilter, err.Error())
	}
	return Only(v), nil
}

func isAllToken(s string) bool {
	return s == "" || strings.EqualFold(s, FilterAll)
}

func checkValid(v any) error {
	if vv, ok := v.(interface{ Valid() bool }); ok && !vv.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, v)
	}
	return nil
}

func parseArea(s string) (string, error) {
	return s, nil
}

// FilterState is the full set of constraints applied to the catalog.
type FilterState struct {
	Budget int                      `json:"budget"`
	Type   Filter[RoomType]         `json:"type"`
	Gender Filter[GenderPreference] `json:"gender"`
	Area   Filter[string]           `json:"area"`
	Query  string                   `json:"query"`
}

// DefaultFilterState is also the target of a filter reset.
func DefaultFilterState() FilterState {
	return FilterState{
		Budget: DefaultBudget,
		Type:   All[RoomType](),
		Gender: All[GenderPreference](),
		Area:   All[string](),
	}
}

// FilterPatch carries a partial filter update; nil fields keep their value.
type FilterPatch struct {
	Budget *int                      `json:"budget" binding:"omitempty,min=0"`
	Type   *Filter[RoomType]         `json:"type"`
	Gender *Filter[GenderPreference] `json:"gender"`
	Area   *Filter[string]           `json:"area"`
	Query  *string                   `json:"query"`
}

func (p FilterPatch) Apply(s FilterState) FilterState {
	if p.Budget != nil {
		s.Budget = *p.Budget
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Gender != nil {
		s.Gender = *p.Gender
	}
	if p.Area != nil {
		s.Area = *p.Area
	}
	if p.Query != nil {
		s.Query = *p.Query
	}
	return s
}

// SearchQuery is the query-string form of a FilterState.
type SearchQuery struct {
	Query  string `form:"q"`
	Budget *int   `form:"budget" binding:"omitempty,min=0"`
	Type   string `form:"type"`
	Gender string `form:"gender"`
	Area   string `form:"area"`
}

// FilterState fills unset parameters from the defaults.
func (q SearchQuery) FilterState() (FilterState, error) {
	s := DefaultFilterState()
	s.Query = q.Query
	if q.Budget != nil {
		s.Budget = *q.Budget
	}

	var err error
	if s.Type, err = ParseFilter(q.Type, ParseRoomType); err != nil {
		return s, err
	}
	if s.Gender, err = ParseFilter(q.Gender, ParseGenderPreference); err != nil {
		return s, err
	}
	if s.Area, err = ParseFilter(q.Area, parseArea); err != nil {
		return s, err
	}
	return s, nil
}

// SearchResult is the engine output as served to clients.
type SearchResult struct {
	Rooms   []Room      `json:"rooms"`
	Total   int         `json:"total"`
	Empty   bool        `json:"empty"`
	Filters FilterState `json:"filters"`
	Reset   FilterState `json:"reset"`
}
