package recorder

import (
	"time"

	"SignalSentinel/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunRecord) error     { return nil }
func (n *NoopRecorder) RecordAlert(_ *AlertEvent) error { return nil }
func (n *NoopRecorder) AlertSent(_ string, _ model.Side, _ time.Time) (bool, error) {
	return false, nil
}
func (n *NoopRecorder) Close() error { return nil }
