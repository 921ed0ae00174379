package progress

import (
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return usecase.NopProgress{}
}

// NewProgressSink picks the spinner for interactive table output and a no-op sink otherwise
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Output != config.OutputTable || cfg.JQ != "" {
		return NewNopSink()
	}
	return NewSpinnerProgressReporter()
}
