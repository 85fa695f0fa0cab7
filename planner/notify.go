package planner

import (
	"sync"

	"go.uber.org/zap"
)

// Kind classifies a user-facing notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notifier delivers short confirmations and failures to the user.
type Notifier interface {
	Notify(message string, kind Kind)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string, kind Kind)

func (f NotifierFunc) Notify(message string, kind Kind) { f(message, kind) }

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(message string, kind Kind) {
	l := n.Logger
	if l == nil {
		l = zap.L()
	}
	if kind == KindError {
		l.Warn("notify", zap.String("kind", string(kind)), zap.String("message", message))
		return
	}
	l.Info("notify", zap.String("kind", string(kind)), zap.String("message", message))
}

// Notification is one recorded message.
type Notification struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Recorder keeps notifications in memory. The HTTP layer uses one per
// request to echo messages back to the client.
type Recorder struct {
	mu   sync.Mutex
	msgs []Notification
}

func (r *Recorder) Notify(message string, kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, Notification{Message: message, Kind: kind})
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// multiNotifier fans out to several notifiers.
type multiNotifier []Notifier

func (m multiNotifier) Notify(message string, kind Kind) {
	for _, n := range m {
		if n != nil {
			n.Notify(message, kind)
		}
	}
}

// Tee returns a Notifier that forwards to every non-nil notifier given.
func Tee(ns ...Notifier) Notifier {
	return multiNotifier(ns)
}
