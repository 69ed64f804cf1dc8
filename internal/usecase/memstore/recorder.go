package memstore

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-InstrumentReservation/internal/infra/events"
)

// Recorder запоминает опубликованные события и бизнес-метрики
type Recorder struct {
	mu         sync.Mutex
	PublishErr error

	Events    []events.Event
	Created   int
	Canceled  int
	CheckIns  int
	CheckOuts int
	Penalties []string
}

func (r *Recorder) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.PublishErr != nil {
		return r.PublishErr
	}
	r.Events = append(r.Events, event)
	return nil
}

func (r *Recorder) BookingCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Created++
}

func (r *Recorder) BookingCanceled(penaltyIssued bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Canceled++
}

func (r *Recorder) CheckedIn(late bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CheckIns++
}

func (r *Recorder) CheckedOut(late bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CheckOuts++
}

func (r *Recorder) PenaltyIssued(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Penalties = append(r.Penalties, reason)
}
