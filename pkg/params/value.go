package params

import (
	"math"
	"strconv"
	"strings"
)

// Value is the value of a parameter entry: a Number, a Text, a Vector or a Matrix.
type Value interface {
	isValue()
}

// Scalar is a single token of a parameter file: a Number or a Text.
type Scalar interface {
	Value
	isScalar()
}

// Number is a numeric token.
type Number float64

// Text is a token that is not a number, kept verbatim.
type Text string

// Vector is a single value line holding several tokens.
type Vector []Scalar

// Matrix is a value block of several lines. Rows may have different lengths.
type Matrix []Vector

func (Number) isValue() {}
func (Text) isValue()   {}
func (Vector) isValue() {}
func (Matrix) isValue() {}

func (Number) isScalar() {}
func (Text) isScalar()   {}

// String returns the shortest decimal form of the number, without exponent.
func (n Number) String() string {
	f := float64(n)
	if f == 0 {
		// avoid "-0"
		return "0"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (t Text) String() string {
	return string(t)
}

func (v Vector) String() string {
	tokens := make([]string, len(v))
	for i, s := range v {
		tokens[i] = scalarString(s)
	}

	return strings.Join(tokens, "\t")
}

func (m Matrix) String() string {
	rows := make([]string, len(m))
	for i, row := range m {
		rows[i] = row.String()
	}

	return strings.Join(rows, "\n")
}

func scalarString(s Scalar) string {
	switch s := s.(type) {
	case Number:
		return s.String()
	case Text:
		return s.String()
	default:
		return ""
	}
}

// Numbers builds a Vector of numbers.
func Numbers(values ...float64) Vector {
	vec := make(Vector, len(values))
	for i, v := range values {
		vec[i] = Number(v)
	}

	return vec
}

// Repeat builds a Vector holding n copies of s.
func Repeat(s Scalar, n int) Vector {
	vec := make(Vector, n)
	for i := range vec {
		vec[i] = s
	}

	return vec
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch v := v.(type) {
	case Vector:
		return cloneVector(v)
	case Matrix:
		m := make(Matrix, len(v))
		for i, row := range v {
			m[i] = cloneVector(row)
		}

		return m
	default:
		return v
	}
}

func cloneVector(v Vector) Vector {
	if v == nil {
		return nil
	}
	c := make(Vector, len(v))
	copy(c, v)

	return c
}

// Equal reports whether a and b hold the same shape and tokens.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		return ok && (a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b))))
	case Text:
		b, ok := b.(Text)
		return ok && a == b
	case Vector:
		b, ok := b.(Vector)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}

		return true
	case Matrix:
		b, ok := b.(Matrix)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}

		return true
	default:
		return a == nil && b == nil
	}
}
