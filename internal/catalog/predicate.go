package catalog

import (
	"strings"

	"skincat/models"
)

// MatchMode decides how an ingredient term is tested against an item.
type MatchMode string

const (
	// MatchSubstring tests case-insensitive containment in the raw ingredient
	// text. Short names match inside longer ones ("Glycerin" matches
	// "Glycerine-X"); this is the legacy behavior and is kept on purpose.
	MatchSubstring MatchMode = "substring"
	// MatchToken tests case-insensitive equality against the item's
	// individual ingredient names.
	MatchToken MatchMode = "token"
)

// Op is the node kind of a Predicate.
type Op int

const (
	OpAlways Op = iota
	OpContains
	OpAnd
	OpOr
	OpNot
)

// Predicate is a boolean condition over an item's ingredients.
type Predicate struct {
	Op    Op
	Term  string
	Left  *Predicate
	Right *Predicate
}

// Combinator joins two predicates into one.
type Combinator func(a, b Predicate) Predicate

// Always is the predicate that holds for every item.
func Always() Predicate { return Predicate{Op: OpAlways} }

// Contains holds when the item's ingredients contain term.
func Contains(term string) Predicate { return Predicate{Op: OpContains, Term: term} }

func And(a, b Predicate) Predicate { return Predicate{Op: OpAnd, Left: &a, Right: &b} }

func Or(a, b Predicate) Predicate { return Predicate{Op: OpOr, Left: &a, Right: &b} }

func Not(p Predicate) Predicate { return Predicate{Op: OpNot, Left: &p} }

// IsAlways reports whether p places no constraint.
func (p Predicate) IsAlways() bool { return p.Op == OpAlways }

// Fold combines preds left to right. An empty list folds to Always.
func Fold(combine Combinator, preds []Predicate) Predicate {
	if len(preds) == 0 {
		return Always()
	}
	acc := preds[0]
	for _, p := range preds[1:] {
		acc = combine(acc, p)
	}
	return acc
}

// IncludeAll holds when every term is present. No terms means no constraint.
func IncludeAll(terms []string) Predicate {
	return Fold(And, containsEach(terms))
}

// ExcludeAny holds when none of the terms is present. No terms means no
// constraint.
func ExcludeAny(terms []string) Predicate {
	if len(terms) == 0 {
		return Always()
	}
	return Not(Fold(Or, containsEach(terms)))
}

func containsEach(terms []string) []Predicate {
	preds := make([]Predicate, 0, len(terms))
	for _, term := range terms {
		preds = append(preds, Contains(term))
	}
	return preds
}

// Match evaluates p against an item in memory.
func (p Predicate) Match(item models.Item, mode MatchMode) bool {
	switch p.Op {
	case OpAlways:
		return true
	case OpContains:
		if mode == MatchToken {
			for _, name := range item.IngredientNames() {
				if strings.EqualFold(name, p.Term) {
					return true
				}
			}
			return false
		}
		return strings.Contains(strings.ToLower(item.Ingredients), strings.ToLower(p.Term))
	case OpAnd:
		return p.Left.Match(item, mode) && p.Right.Match(item, mode)
	case OpOr:
		return p.Left.Match(item, mode) || p.Right.Match(item, mode)
	case OpNot:
		return !p.Left.Match(item, mode)
	}
	return false
}
