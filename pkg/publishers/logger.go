package publishers

import "context"

// Logger defines the logging surface publishers rely on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}

// logPublisher writes events to the structured log. It is the default sink
// for runs with no publishers file.
type logPublisher struct {
	id  string
	log Logger
}

func newLogPublisher(cfg PublisherConfig, log Logger) (Publisher, error) {
	return &logPublisher{id: cfg.ID, log: ensureLogger(log)}, nil
}

// NewLogPublisher exposes the log sink for callers wiring defaults by hand.
func NewLogPublisher(id string, log Logger) Publisher {
	if id == "" {
		id = "log"
	}
	return &logPublisher{id: id, log: ensureLogger(log)}
}

func (l *logPublisher) ID() string   { return l.id }
func (l *logPublisher) Type() string { return TypeLog }

func (l *logPublisher) Publish(_ context.Context, evt Event) error {
	l.log.InfoObj("archive event", "event", evt)
	return nil
}
