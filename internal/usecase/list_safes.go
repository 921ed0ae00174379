package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// ListSafesParams contains parameters for listing factory-created safes
type ListSafesParams struct {
	Kind models.SafeKind
}

// SafeListResult contains the created safes ordered by creation block
type SafeListResult struct {
	Kind    models.SafeKind
	Safes   []models.Safe
	Dropped int
}

// ListSafes lists SafeGuards or FailSafes created by the factory
type ListSafes struct {
	config   *config.RuntimeConfig
	factory  FactoryGateway
	timelock TimelockGateway
	sink     ProgressSink
	log      *slog.Logger
}

// NewListSafes creates a new ListSafes use case
func NewListSafes(cfg *config.RuntimeConfig, factory FactoryGateway, timelock TimelockGateway, sink ProgressSink, log *slog.Logger) *ListSafes {
	return &ListSafes{
		config:   cfg,
		factory:  factory,
		timelock: timelock,
		sink:     sink,
		log:      log.With("component", "safes"),
	}
}

// Run executes the list safes use case
func (uc *ListSafes) Run(ctx context.Context, params ListSafesParams) (*SafeListResult, error) {
	network, err := requireNetwork(uc.config)
	if err != nil {
		return nil, err
	}
	if err := requireContract(network.Factory, "factory"); err != nil {
		return nil, err
	}
	kind := params.Kind
	if kind == "" {
		kind = models.SafeKindSafeGuard
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageLoading, Message: "Loading created safes", Spinner: true})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	batch, err := uc.factory.Safes(ctx, network.Factory, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s creations: %w", kind, err)
	}
	if batch.Dropped > 0 {
		uc.log.Warn("dropped malformed creation logs", "count", batch.Dropped)
	}

	safes := make([]models.Safe, len(batch.Items))
	for i, safe := range batch.Items {
		safes[i] = uc.withDelay(ctx, safe)
	}
	sortSafes(safes)

	return &SafeListResult{Kind: kind, Safes: safes, Dropped: batch.Dropped}, nil
}

// withDelay enriches a safe with its timelock delay; failures leave it unset
func (uc *ListSafes) withDelay(ctx context.Context, safe models.Safe) models.Safe {
	delay, err := uc.timelock.Delay(ctx, safe.Timelock)
	if err != nil {
		uc.log.Debug("cannot read timelock delay", "timelock", safe.Timelock.Hex(), "error", err)
		return safe
	}
	safe.Delay = delay
	return safe
}

func sortSafes(safes []models.Safe) {
	sort.SliceStable(safes, func(i, j int) bool {
		return safes[i].BlockNumber < safes[j].BlockNumber
	})
}

// SafeWatch is a live list of created safes
type SafeWatch struct {
	*watchHandle[*SafeListResult]
}

// Watch appends every newly created safe to the list
func (uc *ListSafes) Watch(ctx context.Context, params ListSafesParams) (*SafeWatch, error) {
	network, err := requireNetwork(uc.config)
	if err != nil {
		return nil, err
	}
	if err := requireContract(network.Factory, "factory"); err != nil {
		return nil, err
	}
	kind := params.Kind
	if kind == "" {
		kind = models.SafeKindSafeGuard
	}

	created := make(chan models.Safe, 16)
	sub, err := uc.factory.SubscribeSafes(ctx, network.Factory, kind, created)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s creations: %w", kind, err)
	}

	initial, err := uc.Run(ctx, ListSafesParams{Kind: kind})
	if err != nil {
		unsubscribeAll(sub)
		return nil, err
	}

	w := &SafeWatch{watchHandle: newWatchHandle[*SafeListResult](sub)}
	w.updates <- initial

	w.run(func() {
		current := initial.Safes
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.done:
				return
			case err := <-sub.Err():
				if err != nil {
					w.fail(fmt.Errorf("%s subscription: %w", kind, err))
				}
				return
			case safe := <-created:
				if containsSafe(current, safe) {
					continue
				}
				next := append(append([]models.Safe(nil), current...), uc.withDelay(ctx, safe))
				sortSafes(next)
				current = next
				if !w.emit(ctx, &SafeListResult{Kind: kind, Safes: current}) {
					return
				}
			}
		}
	})

	return w, nil
}

func containsSafe(safes []models.Safe, safe models.Safe) bool {
	for _, s := range safes {
		if s.Address == safe.Address {
			return true
		}
	}
	return false
}
