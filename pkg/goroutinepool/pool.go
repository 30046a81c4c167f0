package goroutinepool

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Task is one unit of background work.
type Task struct {
	ID       string
	Function func() error
	Callback func(error)
	Priority int // 0=low, 1=medium, 2=high
	Timeout  time.Duration
	Retry    int
}

type Worker struct {
	ID         int
	TaskChan   chan *Task
	WorkerPool chan chan *Task
	Quit       chan bool
	ctx        context.Context
}

type Pool struct {
	WorkerPool chan chan *Task
	TaskQueue  chan *Task
	Workers    []*Worker
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	totalTasks     int64
	completedTasks int64
	failedTasks    int64
	activeTasks    int64
}

var (
	globalPool *Pool
	poolOnce   sync.Once
)

// GetPool returns the shared pool, starting it on first use.
func GetPool() *Pool {
	poolOnce.Do(func() {
		globalPool = NewPool(runtime.NumCPU()*2, 10000)
		globalPool.Start()
	})
	return globalPool
}

func NewPool(maxWorkers int, maxQueue int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &Pool{
		WorkerPool: make(chan chan *Task, maxWorkers),
		TaskQueue:  make(chan *Task, maxQueue),
		Workers:    make([]*Worker, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	for i := 0; i < maxWorkers; i++ {
		worker := &Worker{
			ID:         i + 1,
			TaskChan:   make(chan *Task),
			WorkerPool: pool.WorkerPool,
			Quit:       make(chan bool),
			ctx:        ctx,
		}
		pool.Workers[i] = worker
	}

	return pool
}

func (p *Pool) Start() {
	p.wg.Add(1)
	go p.dispatcher()

	for _, worker := range p.Workers {
		p.wg.Add(1)
		go worker.start(&p.wg)
	}

	p.wg.Add(1)
	go p.statsCollector()

	log.Printf("goroutine pool started, workers: %d", len(p.Workers))
}

// Stop shuts the pool down, waiting up to 30 seconds for running tasks.
func (p *Pool) Stop() {
	log.Printf("stopping goroutine pool...")

	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Printf("goroutine pool stopped cleanly")
	case <-time.After(30 * time.Second):
		log.Printf("goroutine pool stop timed out, forcing exit")
	}
}

// Submit enqueues a task, failing fast when the queue is full.
func (p *Pool) Submit(task *Task) error {
	if task.Timeout == 0 {
		task.Timeout = 30 * time.Second
	}
	if task.Retry == 0 {
		task.Retry = 3
	}

	atomic.AddInt64(&p.totalTasks, 1)

	select {
	case p.TaskQueue <- task:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	default:
		atomic.AddInt64(&p.failedTasks, 1)
		return ErrPoolOverloaded
	}
}

func (p *Pool) SubmitFunc(fn func() error) error {
	return p.Submit(&Task{
		Function: fn,
		Priority: 1,
	})
}

func (p *Pool) SubmitWithCallback(fn func() error, callback func(error)) error {
	return p.Submit(&Task{
		Function: fn,
		Callback: callback,
		Priority: 1,
	})
}

func (p *Pool) dispatcher() {
	defer p.wg.Done()

	for {
		select {
		case task := <-p.TaskQueue:
			select {
			case workerTaskChan := <-p.WorkerPool:
				workerTaskChan <- task
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

func (w *Worker) start(wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		// Register this worker as idle, then wait for a task.
		select {
		case w.WorkerPool <- w.TaskChan:
			select {
			case task := <-w.TaskChan:
				w.executeTask(task)
			case <-w.ctx.Done():
				return
			}
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *Worker) executeTask(task *Task) {
	atomic.AddInt64(&GetPool().activeTasks, 1)
	defer atomic.AddInt64(&GetPool().activeTasks, -1)

	ctx, cancel := context.WithTimeout(w.ctx, task.Timeout)
	defer cancel()

	var err error
	done := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- NewTaskPanicError(r)
			}
		}()
		done <- task.Function()
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil && task.Retry > 0 {
		task.Retry--
		time.Sleep(time.Second)
		w.executeTask(task)
		return
	}

	if err != nil {
		atomic.AddInt64(&GetPool().failedTasks, 1)
	} else {
		atomic.AddInt64(&GetPool().completedTasks, 1)
	}

	if task.Callback != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("task callback panicked: %v", r)
				}
			}()
			task.Callback(err)
		}()
	}
}

func (p *Pool) statsCollector() {
	defer p.wg.Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			total := atomic.LoadInt64(&p.totalTasks)
			completed := atomic.LoadInt64(&p.completedTasks)
			failed := atomic.LoadInt64(&p.failedTasks)
			active := atomic.LoadInt64(&p.activeTasks)

			log.Printf("goroutine pool stats: total=%d, completed=%d, failed=%d, active=%d",
				total, completed, failed, active)

		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) GetStats() map[string]int64 {
	return map[string]int64{
		"total_tasks":     atomic.LoadInt64(&p.totalTasks),
		"completed_tasks": atomic.LoadInt64(&p.completedTasks),
		"failed_tasks":    atomic.LoadInt64(&p.failedTasks),
		"active_tasks":    atomic.LoadInt64(&p.activeTasks),
		"worker_count":    int64(len(p.Workers)),
	}
}

var (
	ErrPoolOverloaded = NewPoolError("goroutine pool is overloaded")
)

type PoolError struct {
	Message string
}

func (e *PoolError) Error() string {
	return e.Message
}

func NewPoolError(message string) *PoolError {
	return &PoolError{Message: message}
}

type TaskPanicError struct {
	Panic interface{}
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("task panic: %v", e.Panic)
}

func NewTaskPanicError(panic interface{}) *TaskPanicError {
	return &TaskPanicError{Panic: panic}
}

func Submit(fn func() error) error {
	return GetPool().SubmitFunc(fn)
}

func SubmitWithCallback(fn func() error, callback func(error)) error {
	return GetPool().SubmitWithCallback(fn, callback)
}

func Stop() {
	GetPool().Stop()
}
