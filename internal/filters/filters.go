// Package filters holds the active value of each registered filter
// criterion and composes them into a single predicate over codes.
//
// The criteria are fixed in number and shape; this is not a query engine.
package filters

import (
	"fmt"
	"math"
	"strings"

	"github.com/northgard/sigil/internal/models"
)

// NoMax marks an unbounded upper end of a range.
const NoMax = int64(math.MaxInt64)

// Range is the value of a numeric range criterion.
type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Criterion is one registered filter: a keyed value holder with a default,
// an "is applied" check (value differs from the default), and a predicate
// over its own value.
type Criterion interface {
	Key() string
	Label() string
	Applied() bool
	Reset()
	Set(value any) error
	Match(c models.Code) bool
}

// RangeCriterion filters on a numeric metric lying within [Min, Max].
type RangeCriterion struct {
	key, label string
	value, def Range
	metric     func(models.Code) int64
}

// NewRangeCriterion registers a range filter over the given metric.
// The default (not applied) value is [0, NoMax].
func NewRangeCriterion(key, label string, metric func(models.Code) int64) *RangeCriterion {
	def := Range{Min: 0, Max: NoMax}
	return &RangeCriterion{key: key, label: label, value: def, def: def, metric: metric}
}

func (r *RangeCriterion) Key() string   { return r.key }
func (r *RangeCriterion) Label() string { return r.label }
func (r *RangeCriterion) Applied() bool { return r.value != r.def }
func (r *RangeCriterion) Reset()        { r.value = r.def }
func (r *RangeCriterion) Value() Range  { return r.value }

func (r *RangeCriterion) Set(value any) error {
	v, ok := value.(Range)
	if !ok {
		return fmt.Errorf("filter %q expects a range value, got %T", r.key, value)
	}
	r.value = v
	return nil
}

func (r *RangeCriterion) Match(c models.Code) bool {
	if !r.Applied() {
		return true
	}
	m := r.metric(c)
	return m >= r.value.Min && m <= r.value.Max
}

// TextCriterion filters on a case-insensitive substring of a text field.
type TextCriterion struct {
	key, label string
	value      string
	field      func(models.Code) string
}

// NewTextCriterion registers a text filter over the given field.
// The default (not applied) value is the empty string.
func NewTextCriterion(key, label string, field func(models.Code) string) *TextCriterion {
	return &TextCriterion{key: key, label: label, field: field}
}

func (t *TextCriterion) Key() string   { return t.key }
func (t *TextCriterion) Label() string { return t.label }
func (t *TextCriterion) Applied() bool { return t.value != "" }
func (t *TextCriterion) Reset()        { t.value = "" }
func (t *TextCriterion) Value() string { return t.value }

func (t *TextCriterion) Set(value any) error {
	v, ok := value.(string)
	if !ok {
		return fmt.Errorf("filter %q expects a string value, got %T", t.key, value)
	}
	t.value = v
	return nil
}

func (t *TextCriterion) Match(c models.Code) bool {
	if !t.Applied() {
		return true
	}
	return strings.Contains(strings.ToLower(t.field(c)), strings.ToLower(t.value))
}

// Applied describes one applied criterion for the "applied filters" summary,
// with a callback that removes it.
type Applied struct {
	Key    string
	Label  string
	Remove func()
}

// Set is an ordered collection of criteria.
type Set struct {
	ordered []Criterion
	byKey   map[string]Criterion
}

// NewSet registers the given criteria in order. Keys must be unique.
func NewSet(criteria ...Criterion) *Set {
	s := &Set{byKey: make(map[string]Criterion, len(criteria))}
	for _, c := range criteria {
		if _, dup := s.byKey[c.Key()]; dup {
			panic(fmt.Sprintf("filters: duplicate criterion key %q", c.Key()))
		}
		s.ordered = append(s.ordered, c)
		s.byKey[c.Key()] = c
	}
	return s
}

// Set assigns a new value to the criterion registered under key.
func (s *Set) Set(key string, value any) error {
	c, ok := s.byKey[key]
	if !ok {
		return fmt.Errorf("filters: unknown criterion %q", key)
	}
	return c.Set(value)
}

// Reset restores the default value for one criterion.
func (s *Set) Reset(key string) error {
	c, ok := s.byKey[key]
	if !ok {
		return fmt.Errorf("filters: unknown criterion %q", key)
	}
	c.Reset()
	return nil
}

// ResetAll restores every criterion to its default.
func (s *Set) ResetAll() {
	for _, c := range s.ordered {
		c.Reset()
	}
}

// AppliedSummary returns the applied criteria in registration order.
func (s *Set) AppliedSummary() []Applied {
	var out []Applied
	for _, c := range s.ordered {
		if !c.Applied() {
			continue
		}
		c := c
		out = append(out, Applied{
			Key:    c.Key(),
			Label:  c.Label(),
			Remove: c.Reset,
		})
	}
	return out
}

// Predicate returns the logical AND of every criterion's own predicate.
func (s *Set) Predicate() func(models.Code) bool {
	return func(c models.Code) bool {
		for _, crit := range s.ordered {
			if !crit.Match(c) {
				return false
			}
		}
		return true
	}
}
