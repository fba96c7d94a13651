package modelinput

import "github.com/pkg/errors"

var (
	ErrInvalidIntensity = errors.New("invalid intensity")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidInput     = errors.New("invalid model input")
)
