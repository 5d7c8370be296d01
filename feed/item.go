// Package feed polls timelines and hands out their items one at a time.
//
// An Emitter refills a de-duplicating Queue from its Sources whenever the queue runs dry
// and passes queued items to a callback on a fixed cadence. Fetching happens off the
// scheduler goroutine; results are posted back, so queue and callback only ever run on
// the scheduler.
package feed

import (
	"context"
	"time"
)

// Item is one status of a timeline
type Item struct {
	ID        string    `yaml:"id"`
	Text      string    `yaml:"text"`
	Author    string    `yaml:"author"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Source produces a batch of items per fetch
type Source interface {
	Fetch(ctx context.Context) ([]Item, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context) ([]Item, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]Item, error) {
	return f(ctx)
}
