package params

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parse parses the contents of an Imperial parameter file.
func Parse(text string) (*Document, error) {
	doc := NewDocument()
	lines := strings.Split(text, "\n")

	for i := 0; i < len(lines); {
		line := strings.TrimRight(lines[i], " \t\r")
		i++
		if !strings.HasPrefix(line, "[") {
			continue
		}
		if !strings.HasSuffix(line, "]") {
			return nil, &FormatError{Line: i, Err: ErrUnclosedBracket}
		}
		key := line[1 : len(line)-1]

		var block []string
		for i < len(lines) && isValueLine(lines[i]) {
			block = append(block, strings.TrimRight(lines[i], " \t\r"))
			i++
		}

		value, ok, err := parseBlock(block)
		if err != nil {
			return nil, &FormatError{Key: key, Err: err}
		}
		if ok {
			doc.Set(key, value)
		}
	}

	return doc, nil
}

// isValueLine reports whether line continues the value block of the previous header.
func isValueLine(line string) bool {
	if line == "" {
		return false
	}
	c := line[0]

	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '#'
}

// parseBlock parses the value lines of one entry. ok is false when the entry has no value.
func parseBlock(block []string) (Value, bool, error) {
	for _, line := range block {
		if !utf8.ValidString(line) {
			return nil, false, ErrInvalidValue
		}
	}

	if len(block) == 0 {
		return Text(""), true, nil
	}
	if len(block) == 1 {
		return parseLine(block[0])
	}

	rows := make(Matrix, 0, len(block))
	for _, line := range block {
		tokens, ok := splitLine(line)
		if !ok {
			continue
		}
		rows = append(rows, tokens)
	}

	switch len(rows) {
	case 0:
		return nil, false, nil
	case 1:
		return lineValue(rows[0]), true, nil
	default:
		return rows, true, nil
	}
}

// parseLine parses a single value line into a scalar or a vector.
func parseLine(line string) (Value, bool, error) {
	tokens, ok := splitLine(line)
	if !ok {
		return nil, false, nil
	}

	return lineValue(tokens), true, nil
}

func lineValue(tokens Vector) Value {
	if len(tokens) == 1 {
		return tokens[0]
	}

	return tokens
}

// splitLine splits a value line on runs of spaces and tabs. A token starting with '#' ends
// the line; ok is false when nothing precedes it.
func splitLine(line string) (Vector, bool) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	})

	tokens := make(Vector, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f, "#") {
			break
		}
		tokens = append(tokens, parseToken(f))
	}

	return tokens, len(tokens) > 0
}

func parseToken(token string) Scalar {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Text(token)
	}

	return Number(f)
}
