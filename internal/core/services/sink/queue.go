package sink

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"console-bridge/internal/core/ports"
	"console-bridge/internal/metrics"

	"golang.org/x/time/rate"
)

var (
	ErrQueueFull   = errors.New("console command queue is full")
	ErrQueueClosed = errors.New("console command queue is closed")
)

type Options struct {
	Workers       int
	QueueSize     int
	RatePerSecond float64
	Timeout       time.Duration
}

// Queue hands console commands to a fixed pool of workers. Submit never waits
// for the game server; results are only logged and counted.
type Queue struct {
	executor ports.CommandExecutor
	jobs     chan string
	limiter  *rate.Limiter
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewQueue(executor ports.CommandExecutor, opts Options) *Queue {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		executor: executor,
		jobs:     make(chan string, opts.QueueSize),
		timeout:  opts.Timeout,
		ctx:      ctx,
		cancel:   cancel,
	}
	if opts.RatePerSecond > 0 {
		q.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	}

	for i := 0; i < opts.Workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}

	slog.Info("Console sink started", "workers", opts.Workers, "queue_size", opts.QueueSize, "rate_per_second", opts.RatePerSecond)
	return q
}

func (q *Queue) Submit(command string) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.SinkRejected.WithLabelValues("closed").Inc()
		return ErrQueueClosed
	}

	// Counted before the send so a fast worker never takes the gauge below zero.
	metrics.SinkQueueDepth.Inc()
	select {
	case q.jobs <- command:
		return nil
	default:
		metrics.SinkQueueDepth.Dec()
		metrics.SinkRejected.WithLabelValues("full").Inc()
		return ErrQueueFull
	}
}

// Close stops accepting commands and waits for queued ones to finish. When
// ctx expires first, in-flight executions are cancelled.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		<-done
		return ctx.Err()
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for command := range q.jobs {
		metrics.SinkQueueDepth.Dec()
		q.run(command)
	}
}

func (q *Queue) run(command string) {
	if q.limiter != nil {
		if err := q.limiter.Wait(q.ctx); err != nil {
			slog.Warn("Dropped console command", "command", command, "error", err)
			metrics.SinkRejected.WithLabelValues("cancelled").Inc()
			return
		}
	}

	ctx, cancel := context.WithTimeout(q.ctx, q.timeout)
	defer cancel()

	start := time.Now()
	response, err := q.executor.Execute(ctx, command)
	metrics.SinkExecutionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		slog.Error("Failed to execute console command", "command", command, "error", err)
		metrics.SinkExecutions.WithLabelValues("failure").Inc()
		return
	}

	slog.Info("Executed console command", "command", command, "response", response)
	metrics.SinkExecutions.WithLabelValues("success").Inc()
}
