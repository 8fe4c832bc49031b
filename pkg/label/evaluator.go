// Package label normalizes a heterogeneous good/bad indicator column
// into strict booleans.
package label

// defaultTruths is the closed set of values recognized as "good" by
// the default policy. Initialized once, never mutated.
var defaultTruths = map[string]struct{}{
	"true": {}, "True": {}, "TRUE": {}, "t": {}, "T": {},
	"good": {}, "Good": {}, "GOOD": {}, "g": {}, "G": {},
	"active": {}, "Active": {}, "ACTIVE": {}, "a": {}, "A": {},
	"yes": {}, "Yes": {}, "YES": {}, "y": {}, "Y": {},
	"1": {},
}

type policyKind int

const (
	kindDefault policyKind = iota
	kindValue
	kindFunc
)

// Policy decides whether a raw label cell marks a good example. The
// zero value is the default truth-set policy.
type Policy struct {
	kind  policyKind
	value any
	fn    func(any) bool
}

// Default recognizes the fixed truth-value set: common spellings of
// true/good/active/yes, the literal 1 (string or numeric), and
// boolean true. Anything else is bad.
func Default() Policy {
	return Policy{kind: kindDefault}
}

// Value matches a single fixed good value by equality.
func Value(v any) Policy {
	return Policy{kind: kindValue, value: v}
}

// Func wraps an arbitrary predicate over the raw cell value.
func Func(fn func(any) bool) Policy {
	return Policy{kind: kindFunc, fn: fn}
}

// Good evaluates one raw cell. There is no unknown state: a value not
// recognized as good is bad.
func (p Policy) Good(v any) bool {
	switch p.kind {
	case kindValue:
		return v == p.value
	case kindFunc:
		if p.fn == nil {
			return false
		}
		return p.fn(v)
	default:
		return inDefaultTruths(v)
	}
}

// Apply evaluates a whole raw column. Missing cells yield nil so rows
// without a label are excluded from statistics rather than counted as bad.
func (p Policy) Apply(raw []any) []*bool {
	out := make([]*bool, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		b := p.Good(v)
		out[i] = &b
	}
	return out
}

func inDefaultTruths(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		_, ok := defaultTruths[x]
		return ok
	case float64:
		return x == 1
	case int:
		return x == 1
	case int64:
		return x == 1
	default:
		return false
	}
}
