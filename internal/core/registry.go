package core

import (
	"errors"
	"strconv"
	"sync"
)

// ErrTaskNotFound is returned when a task id is unknown to the registry.
var ErrTaskNotFound = errors.New("task not found")

// Registry maps task ids to tasks for the life of the process. Ids are
// sequential and never reused; entries are never removed, which is an
// accepted unbounded-growth tradeoff for a single-operator deployment
// (state resets on restart, and ids carry no secrecy).
type Registry struct {
	mu    sync.RWMutex
	seq   int
	tasks map[string]*Task
}

// NewRegistry creates an empty task registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]*Task)}
}

// Create allocates the next task id and registers a new Processing task.
func (r *Registry) Create() *Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	task := &Task{
		ID:     strconv.Itoa(r.seq),
		status: StatusProcessing,
	}
	r.tasks[task.ID] = task
	return task
}

// Get returns the task for id, or false when the id is unknown.
func (r *Registry) Get(id string) (*Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	return task, ok
}

// Count returns the number of tasks created so far.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
