package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/klwxsrx/go-storefront/pkg/session"
	pkgsessionmock "github.com/klwxsrx/go-storefront/pkg/session/mock"
)

var testIdentity = session.Identity{ID: "u-1", Username: "alice", Roles: []string{"customer"}}

type countingRefresher struct {
	calls   atomic.Int32
	token   session.Token
	err     error
	release chan struct{}
}

func (r *countingRefresher) Refresh(ctx context.Context) (session.Token, error) {
	r.calls.Add(1)
	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return r.token, r.err
}

func startedManager(t *testing.T, store session.Store, refresher session.Refresher, opts ...session.Option) session.Manager {
	t.Helper()
	manager := session.NewManager(store, refresher, opts...)
	require.NoError(t, manager.Start(context.Background(), "stale", &testIdentity))
	return manager
}

func TestManager_Recover_ConcurrentCallersShareOneRefresh(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	refresher := &countingRefresher{token: "fresh"}
	manager := startedManager(t, store, refresher)

	seen, err := manager.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, session.Token("stale"), seen.Token)

	const callers = 16
	results := make([]session.Snapshot, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = manager.Recover(ctx, seen)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), refresher.calls.Load())
	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, session.Token("fresh"), results[i].Token)
	}

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Token("fresh"), token)
}

func TestManager_Recover_FailureIsSharedAndCleansUp(t *testing.T) {
	tests := []struct {
		name           string
		policy         session.CleanupPolicy
		expectToken    session.Token
		expectIdentity bool
	}{
		{name: "token_policy_keeps_identity", policy: session.CleanupToken, expectToken: "", expectIdentity: true},
		{name: "session_policy_clears_identity", policy: session.CleanupSession, expectToken: "", expectIdentity: false},
		{name: "none_policy_keeps_everything", policy: session.CleanupNone, expectToken: "stale", expectIdentity: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store := session.NewMemoryStore()
			refresher := &countingRefresher{err: errors.New("refresh cookie rejected")}

			var ended atomic.Int32
			manager := startedManager(t, store, refresher,
				session.WithCleanupPolicy(tc.policy),
				session.WithEndListener(func(_ context.Context, reason error) {
					assert.ErrorIs(t, reason, session.ErrRefreshFailed)
					ended.Add(1)
				}),
			)
			seen, err := manager.Current(ctx)
			require.NoError(t, err)

			_, err = manager.Recover(ctx, seen)
			assert.ErrorIs(t, err, session.ErrRefreshFailed)

			// a request sent before the refresh settled observes the same failure
			_, err = manager.Recover(ctx, seen)
			assert.ErrorIs(t, err, session.ErrRefreshFailed)
			assert.Equal(t, int32(1), refresher.calls.Load())
			assert.Equal(t, int32(1), ended.Load())

			token, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.expectToken, token)

			identity, err := store.Identity(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.expectIdentity, identity != nil)
		})
	}
}

func TestManager_Recover_StaleSnapshotReusesCurrentToken(t *testing.T) {
	ctx := context.Background()
	refresher := &countingRefresher{token: "fresh"}
	manager := startedManager(t, session.NewMemoryStore(), refresher)

	seen, err := manager.Current(ctx)
	require.NoError(t, err)

	first, err := manager.Recover(ctx, seen)
	require.NoError(t, err)

	late, err := manager.Recover(ctx, seen)
	require.NoError(t, err)

	assert.Equal(t, first, late)
	assert.Equal(t, int32(1), refresher.calls.Load())
}

func TestManager_Start_ResetsPreviousFailure(t *testing.T) {
	ctx := context.Background()
	refresher := &countingRefresher{err: errors.New("expired")}
	manager := startedManager(t, session.NewMemoryStore(), refresher)

	seen, err := manager.Current(ctx)
	require.NoError(t, err)
	_, err = manager.Recover(ctx, seen)
	require.ErrorIs(t, err, session.ErrRefreshFailed)

	require.NoError(t, manager.Start(ctx, "logged-in-again", nil))
	refresher.err = nil
	refresher.token = "fresh"

	seen, err = manager.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Token("logged-in-again"), seen.Token)

	recovered, err := manager.Recover(ctx, seen)
	require.NoError(t, err)
	assert.Equal(t, session.Token("fresh"), recovered.Token)
	assert.Equal(t, int32(2), refresher.calls.Load())
}

func TestManager_Recover_WaiterCancellationDoesNotCancelRefresh(t *testing.T) {
	store := session.NewMemoryStore()
	refresher := &countingRefresher{token: "fresh", release: make(chan struct{})}
	manager := startedManager(t, store, refresher)

	seen, err := manager.Current(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := manager.Recover(ctx, seen)
		done <- err
	}()

	require.Eventually(t, func() bool { return refresher.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(refresher.release)
	recovered, err := manager.Recover(context.Background(), seen)
	require.NoError(t, err)
	assert.Equal(t, session.Token("fresh"), recovered.Token)
	assert.Equal(t, int32(1), refresher.calls.Load())
}

func TestManager_Recover_RefreshTimeout(t *testing.T) {
	refresher := &countingRefresher{token: "fresh", release: make(chan struct{})}
	manager := startedManager(t, session.NewMemoryStore(), refresher, session.WithRefreshTimeout(10*time.Millisecond))

	seen, err := manager.Current(context.Background())
	require.NoError(t, err)

	_, err = manager.Recover(context.Background(), seen)
	assert.ErrorIs(t, err, session.ErrRefreshFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestManager_Recover_EmptyTokenIsFailure(t *testing.T) {
	manager := startedManager(t, session.NewMemoryStore(), &countingRefresher{token: ""})

	seen, err := manager.Current(context.Background())
	require.NoError(t, err)

	_, err = manager.Recover(context.Background(), seen)
	assert.ErrorIs(t, err, session.ErrRefreshFailed)
}

func TestManager_Expire_EndsGenerationOnce(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	var ended atomic.Int32
	manager := startedManager(t, store, &countingRefresher{token: "fresh"},
		session.WithEndListener(func(_ context.Context, reason error) {
			assert.ErrorIs(t, reason, session.ErrSessionEnded)
			ended.Add(1)
		}),
	)

	seen, err := manager.Current(ctx)
	require.NoError(t, err)

	require.NoError(t, manager.Expire(ctx, seen, errors.New("unauthorized after retry")))
	require.NoError(t, manager.Expire(ctx, seen, errors.New("unauthorized after retry")))
	assert.Equal(t, int32(1), ended.Load())

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = manager.Recover(ctx, seen)
	assert.ErrorIs(t, err, session.ErrSessionEnded)
}

func TestManager_End_LogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	manager := startedManager(t, store, &countingRefresher{}, session.WithCleanupPolicy(session.CleanupNone))

	require.NoError(t, manager.End(ctx, session.ErrLoggedOut))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	identity, err := manager.Identity(ctx)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestManager_Start_RejectsEmptyToken(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), &countingRefresher{})
	assert.Error(t, manager.Start(context.Background(), "", nil))
}

func TestManager_StoreFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("refreshed_token_not_persisted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := pkgsessionmock.NewStore(ctrl)
		refresher := pkgsessionmock.NewRefresher(ctrl)

		store.EXPECT().Token(gomock.Any()).Return(session.Token("stale"), nil)
		refresher.EXPECT().Refresh(gomock.Any()).Return(session.Token("fresh"), nil)
		store.EXPECT().SetToken(gomock.Any(), session.Token("fresh")).Return(errors.New("disk full"))
		store.EXPECT().DeleteToken(gomock.Any()).Return(nil)

		manager := session.NewManager(store, refresher)
		seen, err := manager.Current(ctx)
		require.NoError(t, err)

		_, err = manager.Recover(ctx, seen)
		assert.ErrorIs(t, err, session.ErrRefreshFailed)
	})

	t.Run("token_read_fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := pkgsessionmock.NewStore(ctrl)
		store.EXPECT().Token(gomock.Any()).Return(session.Token(""), errors.New("connection refused"))

		manager := session.NewManager(store, pkgsessionmock.NewRefresher(ctrl))
		_, err := manager.Current(ctx)
		assert.Error(t, err)
	})

	t.Run("cleanup_errors_are_joined", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := pkgsessionmock.NewStore(ctrl)
		store.EXPECT().DeleteToken(gomock.Any()).Return(errors.New("token"))
		store.EXPECT().DeleteIdentity(gomock.Any()).Return(errors.New("identity"))

		manager := session.NewManager(store, pkgsessionmock.NewRefresher(ctrl))
		err := manager.End(ctx, session.ErrLoggedOut)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delete session token")
		assert.Contains(t, err.Error(), "delete session identity")
	})
}
