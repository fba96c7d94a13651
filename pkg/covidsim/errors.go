package covidsim

import "github.com/pkg/errors"

var (
	ErrInvalidModel = errors.New("invalid model")
	ErrModelFailed  = errors.New("model run failed")
)
