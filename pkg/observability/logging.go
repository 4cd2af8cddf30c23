package observability

import (
	"log/slog"

	"github.com/aretw0/storyline/pkg/domain"
)

// LoggingHooks logs every lifecycle event at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnChoice: func(e *domain.ChoiceEvent) {
			logger.Debug("choice",
				"from", e.FromNodeID,
				"choice_id", e.ChoiceID,
				"target", e.Target,
				"hint", e.Hint,
			)
		},
		OnNodeEnter: func(e *domain.NodeEvent) {
			logger.Debug("node_enter", "node_id", e.NodeID)
		},
		OnEnding: func(e *domain.EndingEvent) {
			logger.Debug("ending", "node_id", e.NodeID, "kind", e.Kind)
		},
		OnRestart: func(e *domain.RestartEvent) {
			logger.Debug("restart", "from", e.FromNodeID)
		},
	}
}
