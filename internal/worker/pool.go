package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultCoreWorkers = 2
	defaultMaxWorkers  = 5
	defaultQueueSize   = 100
	drainTimeout       = 60 * time.Second
)

// Task is one unit of background work.
type Task func(ctx context.Context)

// Pool is a bounded background executor. A fixed set of core workers
// drains a buffered queue; when the queue is full, transient workers
// spin up to the max; when those are exhausted too, the submitting
// goroutine runs the task itself so work is never dropped.
type Pool struct {
	queue  chan Task
	core   int
	max    int
	active atomic.Int64
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	logger zerolog.Logger

	// mu orders Submit against Shutdown: submitters hold the read lock
	// from the closing check through the queue send, and Shutdown takes
	// the write lock before flipping closing, so the queue is never
	// closed with a send in flight.
	mu      sync.RWMutex
	closing bool
}

// Config sizes the pool. Zero values fall back to the defaults.
type Config struct {
	CoreWorkers int
	MaxWorkers  int
	QueueSize   int
}

func NewPool(cfg Config, logger zerolog.Logger) *Pool {
	if cfg.CoreWorkers <= 0 {
		cfg.CoreWorkers = defaultCoreWorkers
	}
	if cfg.MaxWorkers < cfg.CoreWorkers {
		cfg.MaxWorkers = defaultMaxWorkers
		if cfg.MaxWorkers < cfg.CoreWorkers {
			cfg.MaxWorkers = cfg.CoreWorkers
		}
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		queue:  make(chan Task, cfg.QueueSize),
		core:   cfg.CoreWorkers,
		max:    cfg.MaxWorkers,
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With().Str("component", "worker_pool").Logger(),
	}
	for i := 0; i < p.core; i++ {
		p.wg.Add(1)
		p.active.Add(1)
		go p.worker(i, nil)
	}
	return p
}

// Submit hands a task to the pool. Order of preference: buffered queue,
// a transient worker, the caller's own goroutine. Returns false when the
// pool is shutting down and the task was not accepted.
func (p *Pool) Submit(task Task) bool {
	p.mu.RLock()
	if p.closing {
		p.mu.RUnlock()
		return false
	}

	select {
	case p.queue <- task:
		p.mu.RUnlock()
		return true
	default:
	}

	// Queue full; try to grow up to the max before degrading to
	// caller-runs.
	for {
		current := p.active.Load()
		if current >= int64(p.max) {
			break
		}
		if p.active.CompareAndSwap(current, current+1) {
			p.wg.Add(1)
			go p.worker(int(current), task)
			p.mu.RUnlock()
			return true
		}
	}
	p.mu.RUnlock()

	p.logger.Warn().Msg("worker pool saturated, running task on caller")
	task(p.ctx)
	return true
}

// worker drains the queue until shutdown. Transient workers run their
// seed task first, then join the queue like everyone else.
func (p *Pool) worker(id int, seed Task) {
	defer p.wg.Done()
	defer p.active.Add(-1)

	log := p.logger.With().Int("worker", id).Logger()
	if seed != nil {
		p.run(log, seed)
	}
	for {
		select {
		case task, ok := <-p.queue:
			if !ok {
				return
			}
			p.run(log, task)
		case <-p.ctx.Done():
			// Drain what is already queued before exiting.
			for {
				select {
				case task, ok := <-p.queue:
					if !ok {
						return
					}
					p.run(log, task)
				default:
					return
				}
			}
		}
	}
}

func (p *Pool) run(log zerolog.Logger, task Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("task panicked")
		}
	}()
	task(p.ctx)
}

// Shutdown stops accepting work and waits for queued tasks to finish,
// up to the drain timeout.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closing {
		p.mu.Unlock()
		return
	}
	p.closing = true
	p.mu.Unlock()
	close(p.queue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info().Msg("worker pool drained")
	case <-time.After(drainTimeout):
		p.logger.Warn().Msg("worker pool drain timed out, abandoning remaining tasks")
		p.cancel()
	}
}
