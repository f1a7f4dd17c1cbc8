// ABOUTME: Analysis worker pool running pipeline jobs in the background
// ABOUTME: Provides managed workers so batches of terms analyze concurrently

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"serp-insights-api/core/domain"
	"serp-insights-api/core/pipeline"
)

// ErrWorkerNotRunning is returned when a job is submitted to a stopped pool.
var ErrWorkerNotRunning = errors.New("analysis worker is not running")

// ErrQueueFull is returned when the job queue does not drain in time.
var ErrQueueFull = errors.New("analysis job queue is full")

// submitTimeout bounds how long SubmitJob waits for queue space.
const submitTimeout = 5 * time.Second

// AnalysisJob represents one term to analyze in the background.
type AnalysisJob struct {
	Term     domain.SearchTerm
	Context  context.Context
	ResultCh chan<- domain.AnalysisResult
	ErrorCh  chan<- error
}

// AnalysisWorker manages a pool of goroutines running pipeline jobs.
type AnalysisWorker struct {
	pipeline   *pipeline.Pipeline
	jobQueue   chan *AnalysisJob
	maxWorkers int
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	running    bool
}

// WorkerConfig holds configuration for the analysis worker pool.
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int
}

// DefaultWorkerConfig returns the default pool configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 4,
		QueueSize:  64,
	}
}

// NewAnalysisWorker creates a worker pool around the given pipeline.
func NewAnalysisWorker(p *pipeline.Pipeline, config WorkerConfig) *AnalysisWorker {
	ctx, cancel := context.WithCancel(context.Background())

	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultWorkerConfig().MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultWorkerConfig().QueueSize
	}

	return &AnalysisWorker{
		pipeline:   p,
		jobQueue:   make(chan *AnalysisJob, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the worker goroutines. Starting a running pool is a no-op.
func (aw *AnalysisWorker) Start() error {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if aw.running {
		return nil
	}

	for i := 0; i < aw.maxWorkers; i++ {
		aw.wg.Add(1)
		go aw.run()
	}

	aw.running = true
	return nil
}

// Stop drains the pool gracefully: no new jobs are accepted and Stop returns
// once every in-flight job has finished.
func (aw *AnalysisWorker) Stop() error {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if !aw.running {
		return nil
	}

	aw.cancel()
	close(aw.jobQueue)
	aw.wg.Wait()

	aw.running = false
	return nil
}

// SubmitJob queues a job for background processing.
func (aw *AnalysisWorker) SubmitJob(job *AnalysisJob) error {
	aw.mu.Lock()
	if !aw.running {
		aw.mu.Unlock()
		return ErrWorkerNotRunning
	}
	aw.mu.Unlock()

	select {
	case aw.jobQueue <- job:
		return nil
	case <-time.After(submitTimeout):
		return ErrQueueFull
	}
}

// AnalyzeBatch submits one job per term, sharing the given channels.
func (aw *AnalysisWorker) AnalyzeBatch(ctx context.Context, terms []domain.SearchTerm, resultCh chan<- domain.AnalysisResult, errorCh chan<- error) error {
	for _, term := range terms {
		job := &AnalysisJob{
			Term:     term,
			Context:  ctx,
			ResultCh: resultCh,
			ErrorCh:  errorCh,
		}
		if err := aw.SubmitJob(job); err != nil {
			return err
		}
	}
	return nil
}

func (aw *AnalysisWorker) run() {
	defer aw.wg.Done()

	for {
		select {
		case job, ok := <-aw.jobQueue:
			if !ok {
				return
			}
			aw.processJob(job)
		case <-aw.ctx.Done():
			return
		}
	}
}

func (aw *AnalysisWorker) processJob(job *AnalysisJob) {
	ctx := job.Context
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := aw.pipeline.Run(ctx, job.Term)
	if err != nil {
		if job.ErrorCh != nil {
			select {
			case job.ErrorCh <- err:
			case <-ctx.Done():
			}
		}
		return
	}

	if job.ResultCh != nil {
		select {
		case job.ResultCh <- result:
		case <-ctx.Done():
		}
	}
}
