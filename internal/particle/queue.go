package particle

// Queue records particle IDs in spawn order. It may hold IDs of particles
// that already expired; Enforce skips those lazily.
type Queue struct {
	ids  []ID
	head int
}

func (q *Queue) Push(id ID) {
	q.ids = append(q.ids, id)
}

func (q *Queue) Len() int {
	return len(q.ids) - q.head
}

func (q *Queue) pop() ID {
	id := q.ids[q.head]
	q.head++
	// compact once the consumed prefix dominates
	if q.head > 64 && q.head*2 > len(q.ids) {
		q.ids = append(q.ids[:0], q.ids[q.head:]...)
		q.head = 0
	}
	return id
}

// Enforce pops the oldest IDs until at most ceiling remain, despawning the
// ones still alive. It returns how many live particles it evicted.
func (q *Queue) Enforce(s *Store, ceiling int) int {
	if ceiling < 0 {
		ceiling = 0
	}
	evicted := 0
	for q.Len() > ceiling {
		if s.Despawn(q.pop()) {
			evicted++
		}
	}
	return evicted
}
