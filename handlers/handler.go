package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/padraicbc/umaplan/catalog"
	"github.com/padraicbc/umaplan/planner"
)

// Users looks up stored password hashes for sign-in.
type Users interface {
	PasswordHash(ctx context.Context, username string) (string, error)
}

// Options configures a Handler.
type Options struct {
	JWTKey    []byte
	PublicURL string
	Timeline  planner.TimelineOptions
	Logger    *zap.Logger
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	users     Users
	races     *catalog.File
	plans     planner.Store
	locks     *planner.KeyLocks
	logger    *zap.Logger
	publicURL string
	timeline  planner.TimelineOptions
	JWTKey    []byte
}

// New creates a Handler.
func New(users Users, races *catalog.File, plans planner.Store, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		users:     users,
		races:     races,
		plans:     plans,
		locks:     planner.NewKeyLocks(),
		logger:    logger,
		publicURL: opts.PublicURL,
		timeline:  opts.Timeline,
		JWTKey:    opts.JWTKey,
	}
}

// service returns a plan service whose notifications go to the log and to
// rec. Every service shares the handler's key locks.
func (h *Handler) service(rec *planner.Recorder) *planner.Service {
	var n planner.Notifier = planner.LogNotifier{Logger: h.logger}
	if rec != nil {
		n = planner.Tee(n, rec)
	}
	return planner.NewService(h.plans, n, h.logger).WithLocks(h.locks)
}
