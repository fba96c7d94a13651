package params

import (
	"strings"
)

// Serialize generates the content of an Imperial parameter file.
// Every entry must hold a value: a nil value, an empty vector or matrix, or an empty matrix
// row fails with a FormatError naming the key.
func Serialize(doc *Document) (string, error) {
	var sb strings.Builder
	for i, key := range doc.keys {
		value, err := serializeValue(doc.values[key])
		if err != nil {
			return "", &FormatError{Key: key, Err: err}
		}
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		sb.WriteString(key)
		sb.WriteString("]\n")
		sb.WriteString(value)
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

func serializeValue(v Value) (string, error) {
	switch v := v.(type) {
	case Number:
		return v.String(), nil
	case Text:
		return v.String(), nil
	case Vector:
		if err := checkVector(v); err != nil {
			return "", err
		}

		return v.String(), nil
	case Matrix:
		if len(v) == 0 {
			return "", ErrMissingValue
		}
		for _, row := range v {
			if err := checkVector(row); err != nil {
				return "", err
			}
		}

		return v.String(), nil
	default:
		return "", ErrMissingValue
	}
}

func checkVector(v Vector) error {
	if len(v) == 0 {
		return ErrMissingValue
	}
	for _, s := range v {
		if s == nil {
			return ErrMissingValue
		}
	}

	return nil
}
