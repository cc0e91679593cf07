// Package worker provides a parallel expression evaluation worker pool.
package worker

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Evaluator evaluates one colour expression.
type Evaluator interface {
	Evaluate(ctx context.Context, expr string) (string, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, expr string) (string, error)

// Evaluate calls f(ctx, expr).
func (f EvaluatorFunc) Evaluate(ctx context.Context, expr string) (string, error) {
	return f(ctx, expr)
}

// Task represents a single expression, tagged with its source line.
type Task struct {
	Expr string
	Line int
}

// Result represents the outcome of evaluating a task.
type Result struct {
	Task    Task
	Output  string
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Evaluator  Evaluator
	OnProgress ProgressFunc
}

// Pool manages parallel expression evaluation.
type Pool struct {
	workers    int
	evaluator  Evaluator
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		evaluator:  cfg.Evaluator,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns results ordered by line.
// Tasks are processed in parallel by the configured number of workers.
// The function blocks until all tasks complete or the context is cancelled.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	// Every task is queued; workers report cancelled ones with ctx.Err().
	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)

	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})

	go func() {
		var completed, failed int
		for result := range resultCh {
			results = append(results, result)

			completed++
			if result.Err != nil {
				failed++
			}
			if p.onProgress != nil {
				p.onProgress(completed, len(tasks), failed)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Task.Line < results[j].Task.Line
	})
	return results
}

// worker processes tasks from the task channel and sends results to the result channel.
func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{
				Task: task,
				Err:  ctx.Err(),
			}
			continue
		default:
		}

		start := time.Now()
		out, err := p.evaluator.Evaluate(ctx, task.Expr)
		elapsed := time.Since(start)

		results <- Result{
			Task:    task,
			Output:  out,
			Err:     err,
			Elapsed: elapsed,
		}
	}
}
