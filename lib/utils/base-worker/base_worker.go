// Package baseworker runs periodic background jobs.
package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(workerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    workerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run calls job after firstRunDelay and then runInterval after each finished run, until ctx is done.
// A panicking job is logged and does not stop the loop.
func (i BaseImpl) Run(ctx context.Context, job func(ctx context.Context)) {
	logger := i.GetLogger()
	timer := time.NewTimer(i.firstRunDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-timer.C:
		}
		started := time.Now()
		i.runJob(ctx, job)
		logger.WithField("duration", time.Since(started).String()).Debug("job finished")
		timer.Reset(i.runInterval)
	}
}

func (i BaseImpl) runJob(ctx context.Context, job func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("job panic: %v", r)
		}
	}()
	job(ctx)
}
