package renderer

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

var ErrSchedulerClosed = errors.New("task scheduler is shut down")

// Task is a unit of work run to completion by one worker
type Task func()

// TaskScheduler runs tasks on a fixed set of worker goroutines fed by a bounded queue
type TaskScheduler struct {
	taskQueue  chan Task
	numWorkers int
	wg         sync.WaitGroup

	submitted atomic.Int64
	finished  atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// NewTaskScheduler starts max(1, NumCPU - reservedCores) workers. queueCapacity bounds
// the number of pending tasks; values below 1 mean one slot per worker.
func NewTaskScheduler(reservedCores, queueCapacity int) *TaskScheduler {
	numWorkers := max(1, runtime.NumCPU()-reservedCores)
	if queueCapacity < 1 {
		queueCapacity = numWorkers
	}

	ts := &TaskScheduler{
		taskQueue:  make(chan Task, queueCapacity),
		numWorkers: numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		ts.wg.Add(1)
		go ts.run()
	}

	return ts
}

// Execute queues a task, blocking while the queue is full
func (ts *TaskScheduler) Execute(task Task) error {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	if ts.closed {
		return ErrSchedulerClosed
	}

	ts.submitted.Add(1)
	ts.taskQueue <- task
	return nil
}

// Wait blocks until every task submitted so far has finished
func (ts *TaskScheduler) Wait() {
	for ts.finished.Load() < ts.submitted.Load() {
		runtime.Gosched()
	}
}

// Shutdown stops accepting tasks, drains the queue and joins the workers
func (ts *TaskScheduler) Shutdown() {
	ts.mu.Lock()
	if !ts.closed {
		ts.closed = true
		close(ts.taskQueue)
	}
	ts.mu.Unlock()

	ts.wg.Wait()
}

// NumWorkers returns the number of worker goroutines
func (ts *TaskScheduler) NumWorkers() int {
	return ts.numWorkers
}

// Finished returns how many tasks have run to completion
func (ts *TaskScheduler) Finished() int64 {
	return ts.finished.Load()
}

func (ts *TaskScheduler) run() {
	defer ts.wg.Done()

	for task := range ts.taskQueue {
		task()
		ts.finished.Add(1)
	}
}
