// Package query turns loosely-typed listing parameters into validated
// predicates, page bounds and sort clauses for the repositories. Raw request
// strings never reach gorm directly; they pass through a Builder that either
// maps them to a parametrized condition or drops them.
package query

import "gorm.io/gorm"

// Cond is one parametrized SQL fragment. Args travel separately from the
// expression, so nothing from the request is ever interpolated.
type Cond struct {
	Expr string
	Args []any
}

// Predicate is an AND-composition of conditions, consumable only through
// Apply.
type Predicate struct {
	conds []Cond
}

func (p *Predicate) add(expr string, args ...any) {
	p.conds = append(p.conds, Cond{Expr: expr, Args: args})
}

// Empty reports whether no dimension is constrained.
func (p *Predicate) Empty() bool {
	return len(p.conds) == 0
}

// Conds exposes the built conditions; used by tests and logging.
func (p *Predicate) Conds() []Cond {
	return p.conds
}

// Apply attaches every condition to the query. The same predicate value must
// be used for both the count and the fetch query of a listing so the two
// reflect one filter.
func (p *Predicate) Apply(db *gorm.DB) *gorm.DB {
	for _, c := range p.conds {
		db = db.Where(c.Expr, c.Args...)
	}
	return db
}
