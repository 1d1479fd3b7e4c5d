package phys

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// parallelThreshold is the body count below which integration stays on the
// calling goroutine.
const parallelThreshold = 256

// Builtin is the minimal fixed-timestep integrator.
type Builtin struct {
	gravity mgl32.Vec2
	workers int
	clock   clock

	bodies []*Body
	index  map[*Body]int
}

func NewBuiltin(opts Options) *Builtin {
	if opts.TimeStep <= 0 {
		opts.TimeStep = DefaultTimeStep
	}
	return &Builtin{
		gravity: opts.Gravity,
		workers: opts.Workers,
		clock:   clock{step: opts.TimeStep},
		index:   make(map[*Body]int),
	}
}

func (p *Builtin) Name() string { return BuiltinName }

func (p *Builtin) Len() int { return len(p.bodies) }

func (p *Builtin) Attach(b *Body) {
	if _, ok := p.index[b]; ok {
		return
	}
	p.index[b] = len(p.bodies)
	p.bodies = append(p.bodies, b)
}

func (p *Builtin) Detach(b *Body) {
	i, ok := p.index[b]
	if !ok {
		return
	}
	last := len(p.bodies) - 1
	p.bodies[i] = p.bodies[last]
	p.index[p.bodies[i]] = i
	p.bodies[last] = nil
	p.bodies = p.bodies[:last]
	delete(p.index, b)
}

func (p *Builtin) Advance(dt float64) {
	elapsed, ok := p.clock.tick(dt)
	if !ok {
		return
	}
	p.step(float32(elapsed))
}

func (p *Builtin) step(elapsed float32) {
	n := len(p.bodies)
	if n < parallelThreshold {
		for _, b := range p.bodies {
			Integrate(b, elapsed, p.gravity)
		}
		return
	}

	workers := workerCount(p.workers, n)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(bodies []*Body) {
			defer wg.Done()
			for _, b := range bodies {
				Integrate(b, elapsed, p.gravity)
			}
		}(p.bodies[start:end])
	}
	wg.Wait()
}
