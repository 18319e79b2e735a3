package events

import (
	"context"

	events "filmoasis/src/modules/events/models"
)

type Publisher interface {
	Publish(ctx context.Context, e events.Event)
}

// Multi delivers each event to every publisher in order.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e events.Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(ctx, e)
		}
	}
}
