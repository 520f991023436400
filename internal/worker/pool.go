package worker

import (
	"sync"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/metrics"
)

type task func()

// Pool is a fixed-size worker pool with a bounded queue. It carries
// fire-and-forget work such as access-event recording off the request path.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
			}
		}()
	}
	return p
}

// Submit blocks when the queue is full.
func (p *Pool) Submit(f task) {
	p.jobs <- f
	metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
}

// TrySubmit drops the task when the queue is full and reports whether it
// was enqueued. Callers that must not stall the request path use this.
func (p *Pool) TrySubmit(f task) bool {
	select {
	case p.jobs <- f:
		metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
		return true
	default:
		return false
	}
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
