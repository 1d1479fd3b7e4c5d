// Package despawn replaces removed entities with a burst of fragments cut
// from their own sprite or mesh.
//
// Callers Send events at any time. Each Update runs, in order: event
// intake, fragment spawning, kinematics, lifecycle aging and capacity
// enforcement.
package despawn

import (
	"fmt"
	"math/rand"
	"time"

	"despawn-particles/internal/assets"
	"despawn-particles/internal/config"
	"despawn-particles/internal/particle"
	"despawn-particles/internal/phys"
	"despawn-particles/internal/scene"
	"despawn-particles/internal/utils"
)

type Stats struct {
	Live    int
	Spawned int
	Expired int
	Evicted int
	Failed  int
}

type Plugin struct {
	maxParticles int

	events   *EventQueue
	provider phys.Provider
	store    *particle.Store
	queue    *particle.Queue
	factory  *Factory
	presets  map[string]*Preset

	stats Stats
}

type Option func(*pluginOptions)

type pluginOptions struct {
	rng      *rand.Rand
	provider phys.Provider
}

// WithRand fixes the random source used to sample event properties.
func WithRand(rng *rand.Rand) Option {
	return func(o *pluginOptions) { o.rng = rng }
}

// WithProvider overrides the kinematics provider named in the config.
func WithProvider(p phys.Provider) Option {
	return func(o *pluginOptions) { o.provider = p }
}

func New(cfg *config.Config, sc Scene, as *assets.Server, opts ...Option) (*Plugin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o pluginOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.provider == nil {
		provider, err := phys.NewProvider(cfg.Physics.Provider, phys.Options{
			TimeStep: cfg.Physics.TimeStep,
			Gravity:  cfg.Physics.Gravity,
			Workers:  cfg.Physics.Workers,
		})
		if err != nil {
			return nil, err
		}
		o.provider = provider
	}

	store := particle.NewStore(o.provider)
	queue := &particle.Queue{}
	p := &Plugin{
		maxParticles: cfg.MaxParticles,
		events:       NewEventQueue(),
		provider:     o.provider,
		store:        store,
		queue:        queue,
		factory:      NewFactory(sc, as, store, queue, o.rng),
		presets:      PresetsFromConfig(cfg),
	}
	utils.Debug("despawn plugin ready: provider=%s max_particles=%d presets=%d",
		o.provider.Name(), p.maxParticles, len(p.presets))
	return p, nil
}

// Send queues an event for the next Update. Safe for concurrent use.
func (p *Plugin) Send(ev Event) {
	p.events.Push(ev)
}

// SendPreset queues an event built from a configured preset.
func (p *Plugin) SendPreset(name string, e scene.Entity) error {
	preset, ok := p.presets[name]
	if !ok {
		return fmt.Errorf("unknown despawn preset %q", name)
	}
	p.Send(preset.CreateEvent(e))
	return nil
}

// Preset returns a configured preset by name.
func (p *Plugin) Preset(name string) (*Preset, bool) {
	preset, ok := p.presets[name]
	return preset, ok
}

// Update advances the plugin by dt seconds.
func (p *Plugin) Update(dt float64) {
	spawned, failed := p.factory.Process(p.events.Consume())
	p.provider.Advance(dt)
	expired := particle.Age(p.store, float32(dt))
	evicted := p.queue.Enforce(p.store, p.maxParticles)

	p.stats.Spawned += spawned
	p.stats.Failed += failed
	p.stats.Expired += expired
	p.stats.Evicted += evicted
	p.stats.Live = p.store.Len()

	if evicted > 0 {
		utils.Debug("evicted %d particles over the %d cap", evicted, p.maxParticles)
	}
}

func (p *Plugin) Stats() Stats {
	s := p.stats
	s.Live = p.store.Len()
	return s
}

// Particles exposes the live particles for rendering.
func (p *Plugin) Particles() *particle.Store {
	return p.store
}

func (p *Plugin) MaxParticles() int {
	return p.maxParticles
}

func (p *Plugin) Provider() phys.Provider {
	return p.provider
}
