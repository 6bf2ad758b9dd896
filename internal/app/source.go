package app

import (
	"context"

	"tigerwm/internal/wm"
)

// chanSource merges the X event pump and the control socket into one
// wm.EventSource. Both producers send on events; a producer that fails
// reports on errs.
type chanSource struct {
	events <-chan wm.Event
	errs   <-chan error
}

var _ wm.EventSource = (*chanSource)(nil)

func (s *chanSource) NextEvent(ctx context.Context) (wm.Event, error) {
	select {
	case ev := <-s.events:
		return ev, nil
	case err := <-s.errs:
		if err == nil {
			err = wm.ErrConnectionClosed
		}
		return wm.Event{}, err
	case <-ctx.Done():
		return wm.Event{}, ctx.Err()
	}
}
