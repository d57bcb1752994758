package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lamnguyen/folio/adapters/event"
)

// outbound is one queued side effect of a mutation: the remote write (nil
// in pure local mode) plus the change-event metadata.
type outbound struct {
	entity string
	op     string
	key    string
	call   func(ctx context.Context) error
}

// dispatch enqueues the remote equivalent of a mutation. The caller has
// already committed the change locally; nothing here can undo it. A full
// queue drops the write rather than block the caller.
func (s *Store) dispatch(entity, op, key string, remoteCall func(ctx context.Context) error) {
	if s.remote == nil {
		remoteCall = nil
	}
	if remoteCall == nil && s.events == nil {
		return
	}
	if s.closed.Load() {
		return
	}

	ob := outbound{entity: entity, op: op, key: key, call: remoteCall}
	select {
	case s.queue <- ob:
	default:
		s.logger.Warn("Outbound queue full, dropping remote sync",
			zap.String("entity", entity), zap.String("op", op), zap.String("key", key))
		s.notify(fmt.Sprintf("Could not queue %s change for the backend. It is saved locally.", entity))
	}
}

// runSyncer drains the outbound queue. Failures are logged and surfaced as
// notifications; nothing is retried and nothing is rolled back. A stale
// response racing a newer edit simply loses: last write observed wins.
func (s *Store) runSyncer() {
	defer s.wg.Done()
	ctx := context.Background()

	for ob := range s.queue {
		if ob.call != nil {
			if err := ob.call(ctx); err != nil {
				s.logger.Warn("Remote sync failed, local data is authoritative",
					zap.String("entity", ob.entity), zap.String("op", ob.op),
					zap.String("key", ob.key), zap.Error(err))
				s.notify(fmt.Sprintf("Failed to save %s to the backend. Changes are kept locally.", ob.entity))
			}
		}

		if s.events != nil {
			payload := event.PortfolioEventPayload{
				Entity:     ob.entity,
				Op:         ob.op,
				Key:        ob.key,
				OccurredAt: time.Now().UTC(),
			}
			if err := s.events.Publish(ctx, payload); err != nil {
				s.logger.Warn("Cannot publish portfolio event", zap.Error(err))
			}
		}
	}
}

// Close stops accepting outbound work and waits for the queue to drain.
// The store must not be mutated after Close.
func (s *Store) Close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.queue)
	}
	s.wg.Wait()
}
