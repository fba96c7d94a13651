// Package imperial compiles a generalized intervention schedule into the parameters of the
// Imperial College CovidSim simulator.
//
// The Compiler mutates parsed parameter documents in place. It is invoked once per
// generated file: AssignPreParameters on the pre-parameter template, AssignParameters on
// the parameter template and AssignAdminParameters on the administrative units file.
package imperial

import (
	"time"

	"github.com/askiada/go-covidsim/pkg/modelinput"
)

// DefaultEpoch is day 0 of the simulator's calendar.
var DefaultEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Compiler derives simulator parameters from model parameters.
type Compiler struct {
	epoch time.Time
	now   func() time.Time
}

// Option configures a Compiler.
type Option func(c *Compiler)

// WithEpoch sets the reference date all day offsets are counted from.
func WithEpoch(epoch time.Time) Option {
	return func(c *Compiler) {
		c.epoch = epoch.UTC()
	}
}

// WithClock sets the clock used when there are no intervention periods.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) {
		c.now = now
	}
}

// New creates a Compiler. Without options it counts days from DefaultEpoch.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		epoch: DefaultEpoch,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Epoch returns the reference date of the compiler.
func (c *Compiler) Epoch() time.Time {
	return c.epoch
}

// daysBetween counts the whole days from t0 to t1, truncated toward zero.
func daysBetween(t0, t1 time.Time) int {
	return int(t1.UTC().Sub(t0.UTC()) / (24 * time.Hour))
}

func (c *Compiler) daysSinceEpoch(d modelinput.Date) int {
	return daysBetween(c.epoch, d.Time)
}
