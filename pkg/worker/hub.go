package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/klwxsrx/go-storefront/pkg/log"
)

func MustRunHub(ctx context.Context, logger log.Logger, process ErrorJob, processes ...ErrorJob) {
	err := RunHub(ctx, logger, process, processes...)
	if err != nil {
		panic(fmt.Errorf("process completed with error: %w", err))
	}
}

// RunHub runs long-living processes until ctx is done or one of them stops.
// Stopping one process stops the others.
func RunHub(ctx context.Context, logger log.Logger, process ErrorJob, processes ...ErrorJob) error {
	errProcessCompleted := errors.New("process completed")
	loggingWrapper := func(process ErrorJob) ErrorJob {
		return func(ctx context.Context) error {
			err := process(ctx)
			if err == nil || (ctx.Err() != nil && errors.Is(err, ctx.Err())) {
				return errProcessCompleted
			}

			logger.WithError(err).Error(ctx, "process completed with error")
			return err
		}
	}

	processGroup := NewFailFastGroup(ctx)
	processGroup.Do(loggingWrapper(process))
	for _, process := range processes {
		processGroup.Do(loggingWrapper(process))
	}

	err := processGroup.Wait()
	if errors.Is(err, errProcessCompleted) {
		return nil
	}

	return err
}
