package spin

import "time"

// Scheduler runs fn once after d unless the returned cancel is called first.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

type task struct {
	due       time.Time
	fn        func()
	cancelled bool
}

// Queue is a cooperative Scheduler driven by the host loop: tasks only run
// inside Advance, on the caller's goroutine.
type Queue struct {
	now   time.Time
	tasks []*task
}

// NewQueue starts the queue's clock at now.
func NewQueue(now time.Time) *Queue {
	return &Queue{now: now}
}

func (q *Queue) After(d time.Duration, fn func()) func() {
	t := &task{due: q.now.Add(d), fn: fn}
	q.tasks = append(q.tasks, t)
	return func() { t.cancelled = true }
}

// Advance moves the clock to now and runs every task that has come due.
// Tasks scheduled by those tasks wait for a later Advance. It returns the
// number of tasks run.
func (q *Queue) Advance(now time.Time) int {
	if now.After(q.now) {
		q.now = now
	}
	var due []*task
	kept := q.tasks[:0]
	for _, t := range q.tasks {
		switch {
		case t.cancelled:
		case !t.due.After(q.now):
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	clear(q.tasks[len(kept):])
	q.tasks = kept

	ran := 0
	for _, t := range due {
		if t.cancelled {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// Pending is the number of tasks that are neither run nor cancelled.
func (q *Queue) Pending() int {
	n := 0
	for _, t := range q.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Now is the time of the last Advance.
func (q *Queue) Now() time.Time {
	return q.now
}
