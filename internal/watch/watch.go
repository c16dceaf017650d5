// Package watch follows rename events published by other editors.
package watch

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/zqp2013/blockly/internal/filter"
	"github.com/zqp2013/blockly/pkg/workspace"
)

// RenameSource delivers rename events. *workspace.Subscription implements it.
type RenameSource interface {
	Events() <-chan *workspace.RenameEvent
	Errors() <-chan error
}

// EventFormatter renders one event.
type EventFormatter func(w io.Writer, ev *workspace.RenameEvent) error

// StreamRenames writes every event from src that matches criteria until ctx
// is cancelled or src closes. Decode errors reported by src are logged and
// skipped. Returns the number of events written.
func StreamRenames(ctx context.Context, src RenameSource, w io.Writer, criteria *filter.Criteria, format EventFormatter, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if criteria == nil {
		criteria = &filter.Criteria{}
	}

	events := src.Events()
	errs := src.Errors()
	written := 0

	for {
		select {
		case <-ctx.Done():
			return written, nil

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("skipping malformed rename event", zap.Error(err))

		case ev, ok := <-events:
			if !ok {
				return written, nil
			}
			if !criteria.Matches(ev) {
				logger.Debug("rename event filtered out",
					zap.String("block_id", ev.BlockID),
					zap.String("new_name", ev.NewName))
				continue
			}
			if err := format(w, ev); err != nil {
				return written, fmt.Errorf("failed to write rename event: %w", err)
			}
			written++
		}
	}
}

// WaitForRename blocks until src delivers a rename of blockID, the timeout
// elapses or ctx is cancelled.
func WaitForRename(ctx context.Context, src RenameSource, blockID string, timeout time.Duration) (*workspace.RenameEvent, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	events := src.Events()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-timer.C:
			return nil, fmt.Errorf("timeout waiting for rename of %s after %v", blockID, timeout)

		case ev, ok := <-events:
			if !ok {
				return nil, fmt.Errorf("rename subscription closed before %s was renamed", blockID)
			}
			if ev.BlockID == blockID {
				return ev, nil
			}
		}
	}
}
