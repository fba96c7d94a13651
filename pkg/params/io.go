package params

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Decode reads a whole parameter file from r and parses it.
func Decode(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read parameter file")
	}

	return Parse(string(b))
}

// Encode serializes doc to w.
func Encode(w io.Writer, doc *Document) error {
	text, err := Serialize(doc)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	if err != nil {
		return errors.Wrap(err, "unable to write parameter file")
	}

	return nil
}

// ParseFile parses the parameter file at path.
func ParseFile(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read parameter file %s", path)
	}
	doc, err := Parse(string(b))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse parameter file %s", path)
	}

	return doc, nil
}

// WriteFile serializes doc to the file at path.
func WriteFile(path string, doc *Document) error {
	text, err := Serialize(doc)
	if err != nil {
		return errors.Wrapf(err, "unable to serialize parameter file %s", path)
	}
	err = os.WriteFile(path, []byte(text), 0o644)
	if err != nil {
		return errors.Wrapf(err, "unable to write parameter file %s", path)
	}

	return nil
}
