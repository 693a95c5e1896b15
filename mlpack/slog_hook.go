package mlpack

import (
	"log/slog"
)

// SlogHook is a Hook that logs dispatch events via Go's structured logging (log/slog).
// It logs at Info level on success and Error level on failure.
//
// Example:
//
//	dt, _ := mlpack.Bind(lib, mlpack.DecisionTreeBinding,
//	    mlpack.WithHooks(mlpack.NewSlogHook(slog.Default())))
type SlogHook struct {
	logger *slog.Logger
}

// NewSlogHook creates a Hook that logs dispatch events to the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogHook(logger *slog.Logger) *SlogHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogHook{logger: logger}
}

func (h *SlogHook) BeforeDispatch(_ *DispatchInfo) {}

func (h *SlogHook) AfterDispatch(info *DispatchInfo) {
	if info.Error != nil {
		h.logger.Error("dispatch failed",
			slog.String("binding", info.Binding),
			slog.Duration("duration", info.Duration),
			slog.Any("inputs", info.Inputs),
			slog.String("error", info.Error.Error()),
		)
	} else {
		h.logger.Info("dispatch completed",
			slog.String("binding", info.Binding),
			slog.Duration("duration", info.Duration),
			slog.Any("inputs", info.Inputs),
			slog.Any("outputs", info.Outputs),
		)
	}
}
