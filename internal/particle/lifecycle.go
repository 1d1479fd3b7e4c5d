package particle

// Age advances every particle's timer by dt, applies fading and shrinking,
// and removes the particles whose timer finished during this tick. It
// returns the number removed.
func Age(s *Store, dt float32) int {
	var expired []ID
	s.Each(func(p *Particle) {
		p.Timer.Tick(dt)
		if p.Timer.Finished() {
			expired = append(expired, p.ID)
			return
		}
		percent := p.Timer.PercentLeft()
		if p.Effects.Has(Fading) {
			switch {
			case p.Visual.Textured != nil:
				p.Visual.Textured.Alpha = percent
			case p.Visual.Color != nil:
				p.Visual.Color.A = p.Visual.OriginalAlpha * percent
			}
		}
		if p.Effects.Has(Shrinking) {
			p.Body.Transform.Scale = p.BaseScale.Mul(percent)
		}
	})

	for _, id := range expired {
		s.Despawn(id)
	}
	return len(expired)
}
