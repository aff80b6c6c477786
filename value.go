package lrcalc

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tells which variant a Value holds.
type ValueKind int8

// Variants of values. The zero Value is Pending.
const (
	Pending ValueKind = iota // no value computed yet
	NumberValue
	StringValue
	ListValue
)

func (k ValueKind) String() string {
	switch k {
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	case ListValue:
		return "list"
	}
	return "pending"
}

// Value is the semantic value of a token or a reduced grammar symbol.
// It is either a number, a string, a list of values, or pending.
// Values are immutable; list values share their elements.
type Value struct {
	kind ValueKind
	num  float64
	str  string
	list []Value
}

// Number creates a numeric value.
func Number(f float64) Value {
	return Value{kind: NumberValue, num: f}
}

// String creates a string value. Do not confuse with v.String(), which
// renders any value for output.
func String(s string) Value {
	return Value{kind: StringValue, str: s}
}

// List creates a list value from a sequence of values.
func List(vals ...Value) Value {
	l := make([]Value, len(vals))
	copy(l, vals)
	return Value{kind: ListValue, list: l}
}

// Kind returns the variant of v.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsPending is true for the zero value.
func (v Value) IsPending() bool {
	return v.kind == Pending
}

// Number returns the numeric content of v and true, or (0, false) if v is
// not a number.
func (v Value) Number() (float64, bool) {
	if v.kind != NumberValue {
		return 0, false
	}
	return v.num, true
}

// Text returns the string content of v and true, or ("", false) if v is not
// a string.
func (v Value) Text() (string, bool) {
	if v.kind != StringValue {
		return "", false
	}
	return v.str, true
}

// Elements returns the elements of a list value, or nil.
func (v Value) Elements() []Value {
	if v.kind != ListValue {
		return nil
	}
	return v.list
}

// Append returns a new list value with x appended. If v is not a list, it is
// treated as a one-element list.
func (v Value) Append(x Value) Value {
	var l []Value
	if v.kind == ListValue {
		l = make([]Value, len(v.list), len(v.list)+1)
		copy(l, v.list)
	} else if v.kind != Pending {
		l = []Value{v}
	}
	return Value{kind: ListValue, list: append(l, x)}
}

// Equal compares two values structurally.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case NumberValue:
		return v.num == w.num
	case StringValue:
		return v.str == w.str
	case ListValue:
		if len(v.list) != len(w.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(w.list[i]) {
				return false
			}
		}
	}
	return true
}

func (v Value) String() string {
	switch v.kind {
	case NumberValue:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case StringValue:
		return strconv.Quote(v.str)
	case ListValue:
		s := make([]string, len(v.list))
		for i, x := range v.list {
			s[i] = x.String()
		}
		return "[" + strings.Join(s, ", ") + "]"
	}
	return "<pending>"
}

// GoString is used for %#v.
func (v Value) GoString() string {
	return fmt.Sprintf("%s(%s)", v.kind, v.String())
}
