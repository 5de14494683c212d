package quotes

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/krayzpipes/cronticker/cronticker"
	"github.com/sirupsen/logrus"
)

// RotationStatus describes the outcome of the latest rotation.
type RotationStatus struct {
	QuoteID   string    //  selected quote, empty when the library was empty
	Success   bool      //  if the rotation persisted its selection
	Status    string    //  an arbitrary status message
	RotatedAt time.Time //  completion timestamp
}

// RotationParams configures a rotation handler.
type RotationParams struct {
	// Schedule is a cron expression; defaults to "@daily".
	Schedule string
	// RunOnce rotates a single time and stops.
	RunOnce bool
	// Selector picks the quote; defaults to DateSelector.
	Selector Selector
}

// RotationHandler manages a running rotation. Safe for concurrent usage.
type RotationHandler interface {
	// LastStatus returns info about the latest rotation, or nil before the
	// first one completes.
	LastStatus() *RotationStatus
	// Stop will stop the rotation.
	Stop()
	// Wait will block until the rotation is completed/stopped.
	Wait()
}

type rotationHandler struct {
	stopCh  chan struct{}
	doneCh  chan struct{}
	stopped atomic.Bool
	status  atomic.Pointer[RotationStatus]
}

// StartRotation begins featuring a quote on the given schedule. Returns a
// handler which can be used to manage the rotation state.
func StartRotation(library *Library, params RotationParams) (RotationHandler, error) {
	if library == nil {
		return nil, fmt.Errorf("library is nil")
	}
	if params.Selector == nil {
		params.Selector = DateSelector()
	}
	if params.Schedule == "" {
		params.Schedule = "@daily"
	}

	var tickC <-chan time.Time
	var stopTicker func()
	if !params.RunOnce {
		ticker, err := cronticker.NewTicker(params.Schedule)
		if err != nil {
			return nil, fmt.Errorf("invalid rotation schedule '%s': %w", params.Schedule, err)
		}
		tickC = ticker.C
		stopTicker = ticker.Stop
	}

	handler := &rotationHandler{
		stopCh: make(chan struct{}, 1),
		doneCh: make(chan struct{}, 1),
	}
	go handler.handle(library, params, tickC, stopTicker)

	return handler, nil
}

func (h *rotationHandler) Wait() {
	<-h.doneCh
}

func (h *rotationHandler) Stop() {
	if h.stopped.CompareAndSwap(false, true) {
		close(h.stopCh)
	}
}

func (h *rotationHandler) LastStatus() *RotationStatus {
	return h.status.Load()
}

// handle runs the rotation loop. This should only be called once.
func (h *rotationHandler) handle(library *Library, params RotationParams, tickC <-chan time.Time, stopTicker func()) {
	defer close(h.doneCh)

	logrus.WithField("schedule", params.Schedule).Infof("Handling quote rotation")

	// Rotate immediately so a fresh install features a quote before the
	// first tick.
	h.status.Store(rotate(context.Background(), library, params.Selector))

	if params.RunOnce {
		return
	}

	defer stopTicker()
	for {
		select {
		case <-tickC:
			h.status.Store(rotate(context.Background(), library, params.Selector))

		case <-h.stopCh:
			return
		}
	}
}

// rotate selects and persists the day's quote.
func rotate(ctx context.Context, library *Library, selector Selector) *RotationStatus {
	now := time.Now()

	quotes, err := library.List(ctx)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to list quotes for rotation")
		return &RotationStatus{Status: fmt.Sprintf("list failed: %v", err), RotatedAt: now}
	}

	quote, err := selector.Select(ctx, quotes, now)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to select quote for rotation")
		return &RotationStatus{Status: fmt.Sprintf("selection failed: %v", err), RotatedAt: now}
	}
	if quote == nil {
		return &RotationStatus{Status: "library is empty", RotatedAt: now}
	}

	if err := library.SetCurrent(ctx, quote.ID); err != nil {
		logrus.WithError(err).Errorf("Failed to set current quote '%s'", quote.ID)
		return &RotationStatus{QuoteID: quote.ID, Status: fmt.Sprintf("set current failed: %v", err), RotatedAt: now}
	}

	logrus.WithField("quote", quote.ID).Infof("Rotated current quote")
	return &RotationStatus{
		QuoteID:   quote.ID,
		Success:   true,
		Status:    fmt.Sprintf("featuring quote %s", quote.ID),
		RotatedAt: now,
	}
}
