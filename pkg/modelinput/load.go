package modelinput

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// DecodeRequest reads a RequestInput from r and validates its configuration.
func DecodeRequest(r io.Reader) (*RequestInput, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	req := &RequestInput{}
	if err := dec.Decode(req); err != nil {
		return nil, errors.Wrap(err, "unable to decode model input JSON")
	}
	if err := req.Configuration.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// LoadRequest reads and validates the RequestInput stored at path.
func LoadRequest(path string) (*RequestInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open model input %s", path)
	}
	defer f.Close()

	req, err := DecodeRequest(f)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load model input %s", path)
	}

	return req, nil
}
