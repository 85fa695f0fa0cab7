package planner

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/padraicbc/umaplan/models"
	"github.com/padraicbc/umaplan/store"
)

// Store is the subset of store.Provider the service needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Service runs plan actions against stored state: every mutation loads the
// current state, reduces it and writes it back before returning.
type Service struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
	locks    *KeyLocks
}

// NewService builds a Service. A nil notifier or logger is replaced with a no-op.
func NewService(s Store, n Notifier, logger *zap.Logger) *Service {
	if n == nil {
		n = NotifierFunc(func(string, Kind) {})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, notifier: n, logger: logger, locks: NewKeyLocks()}
}

// WithLocks makes s share l with other services over the same store, so
// read-modify-write cycles on one key never interleave.
func (s *Service) WithLocks(l *KeyLocks) *Service {
	if l != nil {
		s.locks = l
	}
	return s
}

// State returns the stored state for key. Missing, unreadable or corrupt
// state degrades to DefaultPlanState.
func (s *Service) State(ctx context.Context, key string) models.PlanState {
	state, err := s.read(ctx, key)
	if err != nil {
		s.logger.Error("read plan state", zap.String("key", key), zap.Error(err))
		return DefaultPlanState()
	}
	return state
}

// Startup resolves the state a session opens with. A decodable share token
// wins and is persisted; otherwise the stored state is used.
func (s *Service) Startup(ctx context.Context, key, shareToken string) models.PlanState {
	if shareToken == "" {
		return s.State(ctx, key)
	}

	shared, err := DecodeShare(shareToken)
	if err != nil {
		s.logger.Warn("ignoring bad share token", zap.String("key", key), zap.Error(err))
		s.notifier.Notify("Could not load shared plan.", KindError)
		return s.State(ctx, key)
	}

	next, err := s.Dispatch(ctx, key, ReplaceState{State: shared})
	if err != nil {
		s.logger.Error("store shared plan", zap.String("key", key), zap.Error(err))
		return shared
	}
	s.notifier.Notify("Shared race plan loaded!", KindSuccess)
	return next
}

// Dispatch applies action to the stored state for key and persists the
// result. A failed store read aborts so stored data is never clobbered.
func (s *Service) Dispatch(ctx context.Context, key string, action Action) (models.PlanState, error) {
	defer s.locks.Lock(key)()

	current, err := s.read(ctx, key)
	var derr *DeserializationError
	switch {
	case errors.As(err, &derr):
		s.logger.Warn("stored plan is corrupt, starting fresh", zap.String("key", key), zap.Error(err))
	case err != nil:
		return current, err
	}

	next, err := Reduce(current, action)
	if err != nil {
		return current, err
	}
	if err := s.write(ctx, key, next); err != nil {
		return current, err
	}
	s.logger.Debug("plan updated",
		zap.String("key", key),
		zap.String("action", fmt.Sprintf("%T", action)),
		zap.Int("races", len(next.SelectedRaces)),
	)
	return next, nil
}

// Save writes the current state again and confirms to the user.
func (s *Service) Save(ctx context.Context, key string) (models.PlanState, error) {
	defer s.locks.Lock(key)()

	state, err := s.read(ctx, key)
	if err != nil {
		var derr *DeserializationError
		if !errors.As(err, &derr) {
			s.notifier.Notify("Failed to save race plan.", KindError)
			return state, err
		}
	}
	if err := s.write(ctx, key, state); err != nil {
		s.notifier.Notify("Failed to save race plan.", KindError)
		return state, err
	}
	s.notifier.Notify("Race plan saved!", KindSuccess)
	return state, nil
}

// ShareLink is a generated share token and the full URL carrying it.
type ShareLink struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// Share returns a link embedding the current state under baseURL.
func (s *Service) Share(ctx context.Context, key, baseURL string) (ShareLink, error) {
	state := s.State(ctx, key)
	token, err := EncodeShare(state)
	if err != nil {
		s.notifier.Notify("Failed to create share link.", KindError)
		return ShareLink{}, err
	}
	u, err := ShareURL(baseURL, token)
	if err != nil {
		s.notifier.Notify("Failed to create share link.", KindError)
		return ShareLink{}, err
	}
	return ShareLink{URL: u, Token: token}, nil
}

// Clear deletes the stored state for key.
func (s *Service) Clear(ctx context.Context, key string) (models.PlanState, error) {
	unlock := s.locks.Lock(key)
	err := s.store.Delete(ctx, key)
	unlock()
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.notifier.Notify("Failed to clear race plan.", KindError)
		return s.State(ctx, key), fmt.Errorf("clear plan: %w", err)
	}
	s.notifier.Notify("Race plan cleared.", KindSuccess)
	return DefaultPlanState(), nil
}

// read loads state for key. A missing key yields the default state with a
// nil error; corrupt content yields the default with a *DeserializationError.
// Stored selections are renumbered 1..N.
func (s *Service) read(ctx context.Context, key string) (models.PlanState, error) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return DefaultPlanState(), nil
		}
		return DefaultPlanState(), fmt.Errorf("read plan: %w", err)
	}
	state, err := Load(raw)
	if err != nil {
		return state, err
	}
	p, err := FromSequence(state.SelectedRaces)
	if err != nil {
		return DefaultPlanState(), &DeserializationError{Source: "stored plan", Err: err}
	}
	state.SelectedRaces = p
	return state, nil
}

func (s *Service) write(ctx context.Context, key string, state models.PlanState) error {
	raw, err := Save(state)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// Notify forwards a message from a caller-side action, such as a clipboard
// copy, to the service's notifier.
func (s *Service) Notify(message string, kind Kind) {
	s.notifier.Notify(message, kind)
}
