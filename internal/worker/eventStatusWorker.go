package worker

import (
	"context"
	"time"

	"github.com/dskendzo/eventplanner/internal/service"

	"github.com/sirupsen/logrus"
)

// EventStatusWorker periodically moves published events whose end date has
// passed into completed status.
type EventStatusWorker struct {
	eventService service.EventService
	interval     time.Duration
}

func NewEventStatusWorker(eventService service.EventService, interval time.Duration) *EventStatusWorker {
	return &EventStatusWorker{
		eventService: eventService,
		interval:     interval,
	}
}

func (w *EventStatusWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Event status worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Event status worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *EventStatusWorker) sweep(ctx context.Context) {
	completed, err := w.eventService.CompleteElapsedEvents(ctx)
	if err != nil {
		logrus.Errorf("Failed to complete elapsed events: %v", err)
		return
	}

	if completed > 0 {
		logrus.Infof("Marked %d events as completed", completed)
	}
}
