package core

import "sync"

// Status is the lifecycle state of one batch task.
type Status string

const (
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
)

// Task is the mutable state of one batch run. It is written only by the
// goroutine executing that batch; everyone else reads through Snapshot.
type Task struct {
	ID string

	mu         sync.Mutex
	status     Status
	logs       []string
	resultFile string
	failure    string
}

// View is an immutable copy of a task's state for pollers. Logs only ever
// grows between successive snapshots of the same task.
type View struct {
	ID         string
	Status     Status
	Logs       []string
	ResultFile string
	Failure    string
}

// Append records one row outcome, in input order.
func (t *Task) Append(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logs = append(t.logs, line)
}

// Complete marks the task finished and attaches its result artifact.
func (t *Task) Complete(resultFile string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resultFile = resultFile
	t.status = StatusCompleted
}

// Fail marks the task aborted by a task-level error (unreadable input,
// artifact write failure). Row outcomes gathered so far are kept.
func (t *Task) Fail(reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failure = reason
	t.status = StatusFailed
}

// Snapshot returns a copy of the current state. The log slice is copied so
// pollers never alias the batch goroutine's buffer.
func (t *Task) Snapshot() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	logs := make([]string, len(t.logs))
	copy(logs, t.logs)
	return View{
		ID:         t.ID,
		Status:     t.status,
		Logs:       logs,
		ResultFile: t.resultFile,
		Failure:    t.failure,
	}
}
