// Package validation holds the ordered rules a seat selection must pass against a
// layout snapshot before anything is persisted.
package validation

import (
	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/metinatakli/screening-reservation/internal/layout"
)

// Rule accepts a selection by returning nil. The snapshot is the flattened layout of the
// schedule and desired holds the ids of the seats being requested.
type Rule interface {
	Name() string
	Validate(snapshot []layout.Seat, desired []int) error
}

// Chain is an immutable ordered list of rules. The zero value accepts everything.
type Chain struct {
	rules []Rule
}

func NewChain(rules ...Rule) Chain {
	return Chain{rules: append([]Rule(nil), rules...)}
}

// DefaultRules returns the seat availability rule followed by the seat block rule.
func DefaultRules() []Rule {
	return []Rule{SeatAvailable{}, NewSeatBlock()}
}

func DefaultChain() Chain {
	return NewChain(DefaultRules()...)
}

// With returns a new chain with rule appended.
func (c Chain) With(rule Rule) Chain {
	rules := make([]Rule, 0, len(c.rules)+1)
	rules = append(rules, c.rules...)
	rules = append(rules, rule)

	return Chain{rules: rules}
}

func (c Chain) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

func (c Chain) Len() int {
	return len(c.rules)
}

// Validate runs the rules in order and stops at the first rejection, which is returned
// as a *domain.ValidationError naming the rule.
func (c Chain) Validate(snapshot []layout.Seat, desired []int) error {
	for _, rule := range c.rules {
		err := rule.Validate(snapshot, desired)
		if err != nil {
			return &domain.ValidationError{Rule: rule.Name(), Err: err}
		}
	}

	return nil
}
