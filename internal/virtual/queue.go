package virtual

// Queue is a Scheduler that holds deferred tasks until the host flushes it,
// typically once per display frame.
type Queue struct {
	tasks []func()
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Defer(task func()) {
	if q == nil || task == nil {
		return
	}
	q.tasks = append(q.tasks, task)
}

func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.tasks)
}

// Flush runs the tasks queued before the call and returns how many ran.
// Tasks deferred while flushing wait for the next Flush.
func (q *Queue) Flush() int {
	if q == nil || len(q.tasks) == 0 {
		return 0
	}
	batch := q.tasks
	q.tasks = nil
	for _, task := range batch {
		task()
	}
	return len(batch)
}
