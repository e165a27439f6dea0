package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/klwxsrx/go-storefront/pkg/log"
	"github.com/klwxsrx/go-storefront/pkg/metric"
)

const DefaultRefreshTimeout = 10 * time.Second

type (
	// Snapshot is the session state a request was sent with.
	// Generation changes on every login, refresh and session end.
	Snapshot struct {
		Token      Token
		Generation uint64
	}

	Manager interface {
		Current(ctx context.Context) (Snapshot, error)
		// Recover returns a session to retry a request that failed authorization with the seen snapshot.
		// At most one refresh runs at a time and every caller that saw the same generation shares its outcome.
		Recover(ctx context.Context, seen Snapshot) (Snapshot, error)
		// Expire ends the session if it is still at the seen generation and no refresh is running.
		Expire(ctx context.Context, seen Snapshot, reason error) error
		Start(ctx context.Context, token Token, identity *Identity) error
		End(ctx context.Context, reason error) error
		Identity(ctx context.Context) (*Identity, error)
	}

	EndListener func(ctx context.Context, reason error)

	Option func(*manager)
)

type refreshCall struct {
	done     chan struct{}
	snapshot Snapshot
	err      error
}

type manager struct {
	store          Store
	refresher      Refresher
	policy         CleanupPolicy
	refreshTimeout time.Duration
	listeners      []EndListener
	logger         log.Logger
	metrics        metric.Metrics

	mu          sync.Mutex
	generation  uint64
	inflight    *refreshCall
	lastFailure error

	writeMu sync.Mutex
}

func NewManager(store Store, refresher Refresher, opts ...Option) Manager {
	m := &manager{
		store:          store,
		refresher:      refresher,
		policy:         CleanupToken,
		refreshTimeout: DefaultRefreshTimeout,
		logger:         log.NewStub(),
		metrics:        metric.NewMetricsStub(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

func WithCleanupPolicy(policy CleanupPolicy) Option {
	return func(m *manager) {
		m.policy = policy
	}
}

func WithRefreshTimeout(timeout time.Duration) Option {
	return func(m *manager) {
		if timeout > 0 {
			m.refreshTimeout = timeout
		}
	}
}

func WithEndListener(listener EndListener) Option {
	return func(m *manager) {
		m.listeners = append(m.listeners, listener)
	}
}

func WithLogger(logger log.Logger) Option {
	return func(m *manager) {
		m.logger = logger
	}
}

func WithMetrics(metrics metric.Metrics) Option {
	return func(m *manager) {
		m.metrics = metrics
	}
}

func (m *manager) Current(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	generation := m.generation
	m.mu.Unlock()

	token, err := m.store.Token(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("get session token: %w", err)
	}

	return Snapshot{Token: token, Generation: generation}, nil
}

func (m *manager) Recover(ctx context.Context, seen Snapshot) (Snapshot, error) {
	m.mu.Lock()
	if m.generation != seen.Generation {
		generation, lastFailure := m.generation, m.lastFailure
		m.mu.Unlock()
		return m.changedSince(ctx, generation, lastFailure)
	}

	call := m.inflight
	if call == nil {
		call = &refreshCall{done: make(chan struct{})}
		m.inflight = call
		go m.refresh(context.WithoutCancel(ctx), call)
	}
	m.mu.Unlock()

	select {
	case <-call.done:
		return call.snapshot, call.err
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

func (m *manager) Expire(ctx context.Context, seen Snapshot, reason error) error {
	m.mu.Lock()
	if m.generation != seen.Generation || m.inflight != nil {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	return m.End(ctx, reason)
}

func (m *manager) Start(ctx context.Context, token Token, identity *Identity) error {
	if token == "" {
		return errors.New("start session: empty token")
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	err := m.store.SetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	if identity != nil {
		err = m.store.SetIdentity(ctx, *identity)
	} else {
		err = m.store.DeleteIdentity(ctx)
	}
	if err != nil {
		return fmt.Errorf("store session identity: %w", err)
	}

	m.advance(nil)
	m.logger.Info(ctx, "session started")
	return nil
}

func (m *manager) End(ctx context.Context, reason error) error {
	if reason == nil {
		reason = ErrSessionEnded
	}
	if !errors.Is(reason, ErrSessionEnded) {
		reason = fmt.Errorf("%w: %w", ErrSessionEnded, reason)
	}

	m.writeMu.Lock()
	err := m.cleanup(ctx, reason)
	m.advance(reason)
	m.writeMu.Unlock()

	m.notify(ctx, reason)
	return err
}

func (m *manager) Identity(ctx context.Context) (*Identity, error) {
	identity, err := m.store.Identity(ctx)
	if err != nil {
		return nil, fmt.Errorf("get session identity: %w", err)
	}
	return identity, nil
}

func (m *manager) changedSince(ctx context.Context, generation uint64, lastFailure error) (Snapshot, error) {
	if lastFailure != nil {
		return Snapshot{}, lastFailure
	}

	token, err := m.store.Token(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("get session token: %w", err)
	}
	if token == "" {
		return Snapshot{}, ErrNoSession
	}

	return Snapshot{Token: token, Generation: generation}, nil
}

func (m *manager) refresh(ctx context.Context, call *refreshCall) {
	ctx, cancel := context.WithTimeout(ctx, m.refreshTimeout)
	defer cancel()

	m.logger.Debug(ctx, "session refresh started")
	started := time.Now()

	m.writeMu.Lock()
	token, err := m.refreshToken(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrRefreshFailed, err)
		if cleanupErr := m.cleanup(ctx, err); cleanupErr != nil {
			m.logger.WithError(cleanupErr).Error(ctx, "failed to clean up session after refresh failure")
		}
	}

	m.mu.Lock()
	m.generation++
	m.lastFailure = err
	m.inflight = nil
	call.snapshot = Snapshot{Token: token, Generation: m.generation}
	call.err = err
	m.mu.Unlock()
	m.writeMu.Unlock()
	close(call.done)

	m.metrics.WithLabel("result", resultLabel(err)).Duration("session_refresh_duration_seconds", time.Since(started))
	m.metrics.WithLabel("result", resultLabel(err)).Increment("session_refresh_total")

	if err != nil {
		m.logger.WithError(err).Warn(ctx, "session refresh failed")
		m.notify(ctx, err)
		return
	}
	m.logger.Info(ctx, "session refreshed")
}

func (m *manager) refreshToken(ctx context.Context) (Token, error) {
	token, err := m.refresher.Refresh(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", errors.New("refresh returned empty token")
	}

	err = m.store.SetToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("store refreshed token: %w", err)
	}

	return token, nil
}

// advance moves the session to the next generation, remembering why the previous one ended.
func (m *manager) advance(failure error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	m.lastFailure = failure
}

func (m *manager) cleanup(ctx context.Context, reason error) error {
	policy := m.policy
	if errors.Is(reason, ErrLoggedOut) {
		policy = CleanupSession
	}

	var errs []error
	if policy.clearsToken() {
		if err := m.store.DeleteToken(ctx); err != nil {
			errs = append(errs, fmt.Errorf("delete session token: %w", err))
		}
	}
	if policy.clearsIdentity() {
		if err := m.store.DeleteIdentity(ctx); err != nil {
			errs = append(errs, fmt.Errorf("delete session identity: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (m *manager) notify(ctx context.Context, reason error) {
	m.metrics.Increment("session_ended_total")
	for _, listener := range m.listeners {
		listener(ctx, reason)
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
