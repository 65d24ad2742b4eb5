package watcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/infrastructure/kafka"
	"github.com/agrimarket/escrow-client/internal/infrastructure/metrics"
	"github.com/agrimarket/escrow-client/internal/infrastructure/snapshot"
)

// Watcher polls tracked escrows and reflects externally-driven transitions:
// admin dispute resolutions (5 -> 4/6/7) and cancellations. The client never
// chooses those destination states, it only observes them.
type Watcher struct {
	gateway   domain.EscrowGateway
	disputes  domain.DisputeGateway
	recorder  snapshot.TransitionRecorder
	publisher kafka.EventPublisher
	metrics   *metrics.EscrowMetrics
	interval  time.Duration

	mu      sync.Mutex
	tracked map[string]domain.EscrowStatus
}

func New(
	gateway domain.EscrowGateway,
	disputes domain.DisputeGateway,
	recorder snapshot.TransitionRecorder,
	publisher kafka.EventPublisher,
	escrowMetrics *metrics.EscrowMetrics,
	interval time.Duration) *Watcher {

	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{
		gateway:   gateway,
		disputes:  disputes,
		recorder:  recorder,
		publisher: publisher,
		metrics:   escrowMetrics,
		interval:  interval,
		tracked:   make(map[string]domain.EscrowStatus),
	}
}

// Track starts watching an escrow. The first sweep records its baseline
// status; later sweeps report changes.
func (w *Watcher) Track(escrowID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.tracked[escrowID]; !ok {
		w.tracked[escrowID] = domain.EscrowStatus(-1)
	}
}

func (w *Watcher) Untrack(escrowID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.tracked, escrowID)
}

func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep refreshes every tracked escrow once.
func (w *Watcher) Sweep(ctx context.Context) {
	w.mu.Lock()
	ids := make(map[string]domain.EscrowStatus, len(w.tracked))
	for id, status := range w.tracked {
		ids[id] = status
	}
	w.mu.Unlock()

	counts := make(map[string]int)
	for id, last := range ids {
		contract, err := w.gateway.GetEscrow(ctx, id)
		if err != nil {
			slog.Error("watcher refresh failed", "escrow_id", id, "error", err.Error())
			continue
		}

		if last >= 0 && contract.Status != last {
			w.observeTransition(ctx, id, last, contract.Status)
		}

		w.mu.Lock()
		w.tracked[id] = contract.Status
		w.mu.Unlock()

		if contract.Status == domain.StatusDisputed {
			w.checkResolution(ctx, id)
		}
		if contract.Status.IsTerminal() {
			slog.Info("escrow reached terminal status, untracking", "escrow_id", id, "status", contract.Status.String())
			w.Untrack(id)
			continue
		}
		counts[contract.Status.String()]++
	}

	// Every status gets set, including zeros, so a population that drains
	// does not leave a stale gauge behind.
	for status := domain.StatusPendingPayment; status <= domain.StatusCanceled; status++ {
		w.metrics.SetTrackedEscrows(status.String(), float64(counts[status.String()]))
	}
}

func (w *Watcher) observeTransition(ctx context.Context, escrowID string, from, to domain.EscrowStatus) {
	slog.Info("escrow transition observed", "escrow_id", escrowID, "from", from.String(), "to", to.String())
	w.metrics.RecordWatcherTransition(from.String(), to.String())

	if w.recorder != nil {
		event := snapshot.TransitionEvent{
			EscrowID:  escrowID,
			Action:    "EXTERNAL",
			OldStatus: from.String(),
			NewStatus: to.String(),
			Source:    "watcher",
			Timestamp: time.Now(),
		}
		if err := w.recorder.LogTransition(ctx, event); err != nil {
			slog.Error("failed to record observed transition", "escrow_id", escrowID, "error", err.Error())
		}
	}

	if w.publisher != nil {
		go func(event kafka.EscrowEvent) {
			if err := w.publisher.PublishEscrow(event); err != nil {
				slog.Error("failed to publish observed transition", "escrow_id", event.EscrowID, "error", err.Error())
			}
		}(kafka.EscrowEvent{
			EscrowID:  escrowID,
			Action:    "EXTERNAL",
			OldStatus: from.String(),
			NewStatus: to.String(),
		})
	}
}

func (w *Watcher) checkResolution(ctx context.Context, escrowID string) {
	resolution, err := w.disputes.GetResolution(ctx, escrowID)
	if err != nil {
		slog.Error("watcher resolution check failed", "escrow_id", escrowID, "error", err.Error())
		return
	}
	if resolution == nil {
		// still undecided, keep polling
		return
	}
	if resolution.FinalDecision {
		slog.Info("dispute decided",
			"escrow_id", escrowID,
			"dispute_id", resolution.DisputeID,
			"refund_amount", resolution.RefundAmount.String(),
		)
	}
}
