package funtext

import "sort"

// Task is a handle to a one-shot callback registered with a Scheduler.
type Task struct {
	due       float64
	seq       uint64
	fn        func()
	done      bool
	cancelled bool
}

// Due returns the scheduler time at which the task fires.
func (t *Task) Due() float64 {
	return t.due
}

// Done reports whether the task has fired.
func (t *Task) Done() bool {
	return t.done
}

// Cancelled reports whether the task was cancelled before firing.
func (t *Task) Cancelled() bool {
	return t.cancelled
}

// Cancel revokes the task. Returns false if it already fired or was cancelled.
func (t *Task) Cancel() bool {
	if t.done || t.cancelled {
		return false
	}
	t.cancelled = true
	t.fn = nil
	return true
}

// Scheduler is a frame-driven clock that fires one-shot callbacks once their
// delay has elapsed. Like the rest of funtext it is single-threaded: the owner
// calls Update once per frame.
//
// There is no wall-clock timer; time only advances through Update.
type Scheduler struct {
	now   float64
	seq   uint64
	tasks []*Task
	ready []*Task // reused buffer for due tasks
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current scheduler time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run once, delay seconds from now. A negative delay
// fires on the next Update.
func (s *Scheduler) After(delay float64, fn func()) *Task {
	s.seq++
	t := &Task{due: s.now + delay, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Pending returns the number of tasks that have neither fired nor been cancelled.
func (s *Scheduler) Pending() int {
	count := 0
	for _, t := range s.tasks {
		if !t.done && !t.cancelled {
			count++
		}
	}
	return count
}

// Update advances the clock by dt seconds and fires every task now due, in
// due-time order (ties in scheduling order). Tasks scheduled by a callback
// wait for a later Update.
func (s *Scheduler) Update(dt float64) {
	s.now += dt

	s.ready = s.ready[:0]
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		switch {
		case t.cancelled:
		case t.due <= s.now:
			s.ready = append(s.ready, t)
		default:
			kept = append(kept, t)
		}
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept

	sort.SliceStable(s.ready, func(i, j int) bool {
		if s.ready[i].due != s.ready[j].due {
			return s.ready[i].due < s.ready[j].due
		}
		return s.ready[i].seq < s.ready[j].seq
	})

	for _, t := range s.ready {
		// An earlier callback in this batch may have cancelled it.
		if t.cancelled {
			continue
		}
		fn := t.fn
		t.done = true
		t.fn = nil
		if fn != nil {
			fn()
		}
	}
	clear(s.ready)
	s.ready = s.ready[:0]
}
