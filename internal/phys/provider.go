package phys

import (
	"fmt"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
)

// Provider advances every attached body. Implementations decide how time
// is stepped; callers only feed them the frame delta.
type Provider interface {
	Name() string
	Attach(b *Body)
	Detach(b *Body)
	Advance(dt float64)
	Len() int
}

type Options struct {
	TimeStep float64
	Gravity  mgl32.Vec2
	// Workers caps parallel integration. Zero picks GOMAXPROCS, at most 8.
	Workers int
}

func DefaultOptions() Options {
	return Options{TimeStep: DefaultTimeStep, Gravity: DefaultGravity}
}

const (
	BuiltinName  = "builtin"
	ChipmunkName = "chipmunk"
)

func NewProvider(name string, opts Options) (Provider, error) {
	if opts.TimeStep <= 0 {
		opts.TimeStep = DefaultTimeStep
	}
	switch name {
	case BuiltinName, "":
		return NewBuiltin(opts), nil
	case ChipmunkName:
		return NewChipmunk(opts), nil
	}
	return nil, fmt.Errorf("phys: unknown provider %q", name)
}

func workerCount(requested, bodies int) int {
	n := requested
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
		if n > 8 {
			n = 8
		}
	}
	if n > bodies {
		n = bodies
	}
	if n < 1 {
		n = 1
	}
	return n
}

// clock fires once per full timestep and reports the real time since it
// last fired. It never catches up on missed steps.
type clock struct {
	step      float64
	acc       float64
	sinceLast float64
}

func (c *clock) tick(dt float64) (float64, bool) {
	c.acc += dt
	c.sinceLast += dt
	if c.acc < c.step {
		return 0, false
	}
	c.acc = math.Mod(c.acc, c.step)
	elapsed := c.sinceLast
	c.sinceLast = 0
	return elapsed, true
}
