package validator

import (
	"math"
	"sort"
)

// Kind is the JSON type a schema field accepts.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return ""
	}
}

// Rule is an extra constraint run after the type check passed. Fn receives
// the value already converted to string or float64.
type Rule struct {
	Message string
	Fn      func(value any) bool
}

// Field describes one member of a schema.
type Field struct {
	Kind  Kind
	Rules []Rule
}

// Schema is a closed set of fields: any key outside it invalidates a candidate.
type Schema map[string]Field

// Fields returns the field names in a stable order.
func (s Schema) Fields() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate reports whether candidate satisfies the schema. With partial set
// missing fields are allowed, everything else is checked the same way.
func (s Schema) Validate(candidate any, partial bool) bool {
	v := New()
	s.Check(v, candidate, partial)
	return v.Valid()
}

// Check records one message per offending key on v.
func (s Schema) Check(v *Validator, candidate any, partial bool) {
	object, ok := candidate.(map[string]any)
	if !ok || object == nil {
		v.AddError("body", "must be a JSON object")
		return
	}

	for key := range object {
		_, known := s[key]
		v.Check(!known, key, "is not a recognised field")
	}

	for _, name := range s.Fields() {
		field := s[name]

		raw, present := object[name]
		if !present {
			v.Check(!partial, name, "must be provided")
			continue
		}

		value, ok := coerce(field.Kind, raw)
		if !ok {
			v.AddError(name, "must be a "+field.Kind.String())
			continue
		}

		for _, rule := range field.Rules {
			v.Check(!rule.Fn(value), name, rule.Message)
		}
	}
}

// converts a decoded JSON value to the representation rules work with
func coerce(kind Kind, raw any) (any, bool) {
	switch kind {
	case KindString:
		s, ok := raw.(string)
		return s, ok
	case KindNumber:
		var f float64
		switch n := raw.(type) {
		case float64:
			f = n
		case float32:
			f = float64(n)
		case int:
			f = float64(n)
		case int32:
			f = float64(n)
		case int64:
			f = float64(n)
		default:
			return nil, false
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return f, true
	}
	return nil, false
}

// StringRule adapts a string predicate into a Rule.
func StringRule(message string, fn func(string) bool) Rule {
	return Rule{Message: message, Fn: func(value any) bool {
		s, ok := value.(string)
		return ok && fn(s)
	}}
}

// NumberRule adapts a float64 predicate into a Rule.
func NumberRule(message string, fn func(float64) bool) Rule {
	return Rule{Message: message, Fn: func(value any) bool {
		f, ok := value.(float64)
		return ok && fn(f)
	}}
}

// Integral accepts numbers without a fractional part.
func Integral(f float64) bool {
	return f == math.Trunc(f)
}
