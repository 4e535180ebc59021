package funtext

import "testing"

func TestSchedulerFiresOnceWhenDue(t *testing.T) {
	s := NewScheduler()
	calls := 0
	task := s.After(1, func() { calls++ })

	s.Update(0.5)
	if calls != 0 || task.Done() {
		t.Fatal("task fired early")
	}
	s.Update(0.5)
	if calls != 1 || !task.Done() {
		t.Fatalf("calls = %d, done = %t after due", calls, task.Done())
	}
	s.Update(5)
	if calls != 1 {
		t.Errorf("task fired %d times", calls)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestSchedulerOrdersByDueThenSequence(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(2, func() { order = append(order, "late") })
	s.After(1, func() { order = append(order, "first") })
	s.After(1, func() { order = append(order, "second") })

	s.Update(3)
	want := []string{"first", "second", "late"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	task := s.After(1, func() { fired = true })

	if !task.Cancel() {
		t.Error("Cancel should succeed on pending task")
	}
	if task.Cancel() {
		t.Error("second Cancel should report false")
	}
	s.Update(2)
	if fired || task.Done() {
		t.Error("cancelled task fired")
	}
	if !task.Cancelled() {
		t.Error("Cancelled should be true")
	}

	done := s.After(0, func() {})
	s.Update(0)
	if done.Cancel() {
		t.Error("Cancel after firing should report false")
	}
}

func TestSchedulerCancelFromEarlierCallback(t *testing.T) {
	s := NewScheduler()
	var second *Task
	fired := false
	s.After(1, func() { second.Cancel() })
	second = s.After(1, func() { fired = true })

	s.Update(1)
	if fired {
		t.Error("task cancelled by an earlier callback in the same batch fired")
	}
}

func TestSchedulerTaskScheduledFromCallbackWaits(t *testing.T) {
	s := NewScheduler()
	var inner *Task
	s.After(1, func() {
		inner = s.After(0, func() {})
	})

	s.Update(1)
	if inner == nil || inner.Done() {
		t.Fatal("inner task should be scheduled but not yet fired")
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", s.Pending())
	}
	s.Update(0)
	if !inner.Done() {
		t.Error("inner task should fire on the next Update")
	}
}

func TestSchedulerNow(t *testing.T) {
	s := NewScheduler()
	s.Update(0.25)
	s.Update(0.25)
	if s.Now() != 0.5 {
		t.Errorf("Now = %v, want 0.5", s.Now())
	}
	task := s.After(1, func() {})
	if task.Due() != 1.5 {
		t.Errorf("Due = %v, want 1.5", task.Due())
	}
}
