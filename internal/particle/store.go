package particle

import (
	"github.com/go-gl/mathgl/mgl32"

	"despawn-particles/internal/phys"
)

// Store holds live particles. Bodies are attached to the kinematics
// provider on Spawn and detached on Despawn.
type Store struct {
	provider phys.Provider
	next     ID

	particles []*Particle
	index     map[ID]int
}

func NewStore(provider phys.Provider) *Store {
	return &Store{provider: provider, index: make(map[ID]int)}
}

// Spawn assigns p an ID and takes ownership of it.
func (s *Store) Spawn(p *Particle) ID {
	s.next++
	p.ID = s.next
	if p.BaseScale == (mgl32.Vec3{}) {
		p.BaseScale = p.Body.Transform.Scale
	}
	s.index[p.ID] = len(s.particles)
	s.particles = append(s.particles, p)
	s.provider.Attach(&p.Body)
	return p.ID
}

// Despawn removes a particle. It reports false for unknown or already
// removed IDs.
func (s *Store) Despawn(id ID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	p := s.particles[i]
	s.provider.Detach(&p.Body)

	last := len(s.particles) - 1
	s.particles[i] = s.particles[last]
	s.index[s.particles[i].ID] = i
	s.particles[last] = nil
	s.particles = s.particles[:last]
	delete(s.index, id)
	return true
}

func (s *Store) Alive(id ID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store) Get(id ID) (*Particle, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.particles[i], true
}

func (s *Store) Len() int {
	return len(s.particles)
}

// Each visits live particles in no particular order. fn must not spawn or
// despawn.
func (s *Store) Each(fn func(*Particle)) {
	for _, p := range s.particles {
		fn(p)
	}
}
