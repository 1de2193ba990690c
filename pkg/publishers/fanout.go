package publishers

import (
	"context"
	"errors"
	"fmt"
)

// Fanout dispatches archive events to every configured publisher.
type Fanout struct {
	publishers []Publisher
}

// NewFanout builds a dispatcher that fans out events across publishers.
func NewFanout(pubs []Publisher) *Fanout {
	cp := make([]Publisher, 0, len(pubs))
	for _, p := range pubs {
		if p == nil {
			continue
		}
		cp = append(cp, p)
	}
	return &Fanout{publishers: cp}
}

// Publish forwards the event to every registered publisher. Sink failures are
// collected, tagged with the event's source id, and joined; a cancelled
// context stops the remaining deliveries. Returns the number of publishers
// that handled the event.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	if f == nil || len(f.publishers) == 0 {
		return 0, nil
	}

	var errs []error
	successful := 0
	for _, p := range f.publishers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("event %s: fanout aborted: %w", evt.SourceID, err))
			break
		}
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("event %s: %s publisher[%s]: %w", evt.SourceID, p.Type(), p.ID(), err))
			continue
		}
		successful++
	}
	return successful, errors.Join(errs...)
}

// Size returns the number of active publishers.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.publishers)
}
