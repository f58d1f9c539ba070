package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
	"waste-service/pkg/logger"
)

// Task is a unit of periodic work.
type Task interface {
	// TTL is the pause between two runs.
	TTL() time.Duration
	Do(context.Context) error
	// Info names the task in logs.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Worker struct {
	log   handlerLogger
	tasks []Task
	group *errgroup.Group
}

// New runs every task once and fails if any warm-up run errors or panics.
// After a successful warm-up each task repeats every TTL until ctx is done;
// Wait blocks until all loops have returned.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() error {
			log.Info("Initializing", logger.NewField("task", task.Info()))
			return runSafely(initCtx, log, task)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	worker := &Worker{
		log:   log,
		tasks: tasks,
		group: &errgroup.Group{},
	}

	for _, task := range tasks {
		worker.group.Go(func() error {
			worker.loop(ctx, task)
			return nil
		})
	}

	return worker, nil
}

// Wait returns once every task loop has observed context cancellation.
func (w *Worker) Wait() {
	_ = w.group.Wait()
}

func (w *Worker) loop(ctx context.Context, task Task) {
	taskLog := w.log.With(logger.NewField("task", task.Info()))

	ttl := task.TTL()
	if ttl <= 0 {
		taskLog.Warn("invalid TTL, skipping periodic execution", logger.NewField("ttl", ttl))
		return
	}
	taskLog.Info("Starting periodic execution", logger.NewField("ttl", ttl))

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			taskLog.Info("Stopping task (context cancelled)")
			return
		case <-ticker.C:
			if err := runSafely(ctx, w.log, task); err != nil {
				taskLog.Error("Background task failed", logger.NewField("error", err))
			}
		}
	}
}

func runSafely(ctx context.Context, log handlerLogger, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			err = fmt.Errorf("task %s panic: %v", task.Info(), r)
			log.Error("Background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(stack)),
			)
		}
	}()

	return task.Do(ctx)
}
