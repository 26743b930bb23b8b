package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IsAbsent reports whether the raw value means "no constraint". Clients send
// "" and the literal strings "all" and "undefined" interchangeably for an
// unset filter; all three are equivalent to the parameter being omitted.
func IsAbsent(raw string) bool {
	switch raw {
	case "", "all", "undefined":
		return true
	}
	return false
}

// BuildError carries per-parameter messages for malformed filter input.
type BuildError struct {
	Fields map[string]string
}

func (e *BuildError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for param, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", param, msg))
	}
	return "invalid filter parameters: " + strings.Join(parts, "; ")
}

// Builder maps recognized parameters to predicate fragments. Absent and
// sentinel values are skipped, enum values outside the allowed set are
// dropped, malformed numerics are collected and reported as one BuildError.
type Builder struct {
	pred Predicate
	errs map[string]string
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) fail(param, msg string) {
	if b.errs == nil {
		b.errs = make(map[string]string)
	}
	b.errs[param] = msg
}

// ILike constrains column to a case-insensitive substring match.
func (b *Builder) ILike(column, raw string) *Builder {
	if IsAbsent(raw) {
		return b
	}
	b.pred.add(column+" ILIKE ?", "%"+raw+"%")
	return b
}

// Equals constrains column to an exact value.
func (b *Builder) Equals(column, raw string) *Builder {
	if IsAbsent(raw) {
		return b
	}
	b.pred.add(column+" = ?", raw)
	return b
}

// Enum constrains column to raw only when raw belongs to the allowed set.
// Unrecognized values are ignored rather than passed to the storage engine.
func (b *Builder) Enum(column, raw string, allowed map[string]bool) *Builder {
	if IsAbsent(raw) || !allowed[raw] {
		return b
	}
	b.pred.add(column+" = ?", raw)
	return b
}

// MinNumber constrains column >= raw. Malformed or negative input is a
// validation failure keyed by param.
func (b *Builder) MinNumber(param, column, raw string) *Builder {
	v, ok := b.parseNumber(param, raw)
	if ok {
		b.pred.add(column+" >= ?", v)
	}
	return b
}

// MaxNumber constrains column <= raw.
func (b *Builder) MaxNumber(param, column, raw string) *Builder {
	v, ok := b.parseNumber(param, raw)
	if ok {
		b.pred.add(column+" <= ?", v)
	}
	return b
}

// MinInt constrains column >= raw for integer dimensions (bedrooms,
// bathrooms).
func (b *Builder) MinInt(param, column, raw string) *Builder {
	if IsAbsent(raw) {
		return b
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		b.fail(param, "must be an integer")
		return b
	}
	if v < 0 {
		b.fail(param, "must not be negative")
		return b
	}
	b.pred.add(column+" >= ?", v)
	return b
}

// Search expands one free-text term into an OR across the given columns,
// each matched case-insensitively.
func (b *Builder) Search(raw string, columns ...string) *Builder {
	if IsAbsent(raw) || len(columns) == 0 {
		return b
	}
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	needle := "%" + raw + "%"
	for i, col := range columns {
		parts[i] = col + " ILIKE ?"
		args[i] = needle
	}
	b.pred.add("("+strings.Join(parts, " OR ")+")", args...)
	return b
}

// Period constrains column to records created within the named window.
// Unknown period names are ignored.
func (b *Builder) Period(column, raw string) *Builder {
	if IsAbsent(raw) {
		return b
	}

	now := time.Now()
	var cutoff time.Time
	switch raw {
	case "today":
		cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		cutoff = now.AddDate(0, 0, -7)
	case "month":
		cutoff = now.AddDate(0, -1, 0)
	case "year":
		cutoff = now.AddDate(-1, 0, 0)
	default:
		return b
	}
	b.pred.add(column+" >= ?", cutoff)
	return b
}

// Where attaches a fixed, trusted condition (role gates, ownership scopes).
// Never pass request input into expr.
func (b *Builder) Where(expr string, args ...any) *Builder {
	b.pred.add(expr, args...)
	return b
}

// Build returns the predicate, or a BuildError when any numeric parameter
// was malformed.
func (b *Builder) Build() (Predicate, error) {
	if len(b.errs) > 0 {
		return Predicate{}, &BuildError{Fields: b.errs}
	}
	return b.pred, nil
}

func (b *Builder) parseNumber(param, raw string) (float64, bool) {
	if IsAbsent(raw) {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		b.fail(param, "must be a number")
		return 0, false
	}
	if v < 0 {
		b.fail(param, "must not be negative")
		return 0, false
	}
	return v, true
}
