// Package scheduler drives the periodic refresh of one account-context.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alarmbridge/alarmbridge/internal/divera"
	"github.com/alarmbridge/alarmbridge/internal/domain"
	"github.com/alarmbridge/alarmbridge/internal/logger"
)

// SnapshotStore persists the latest raw snapshot per account-context.
// Writes are best effort; the in-memory accessor is the primary source.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, ucrID string, raw []byte) error
}

// Coordinator owns the published accessor for one account-context and
// decides when and how it is re-fetched. Refreshes are serialized by the
// single goroutine driving them; the interval tick and the manual trigger
// coalesce instead of racing two pulls against the same published state.
type Coordinator struct {
	client        *divera.Client
	store         SnapshotStore // nil disables persistence
	logger        logger.Logger
	loc           *time.Location
	interval      time.Duration
	name          string
	manualTrigger chan struct{}
	stopCh        chan struct{}

	mu          sync.RWMutex
	accessor    *domain.Accessor
	stale       bool
	needsReauth bool
	lastSuccess time.Time
	lastErr     error
}

// NewCoordinator creates a coordinator for one account-context. name labels
// the context in logs and readiness output.
func NewCoordinator(
	client *divera.Client,
	store SnapshotStore,
	log logger.Logger,
	loc *time.Location,
	interval time.Duration,
	name string,
) *Coordinator {
	return &Coordinator{
		client:        client,
		store:         store,
		logger:        log,
		loc:           loc,
		interval:      interval,
		name:          name,
		manualTrigger: make(chan struct{}, 1),
		stopCh:        make(chan struct{}),
	}
}

// UCRID returns the account-context this coordinator polls.
func (c *Coordinator) UCRID() string {
	return c.client.UCRID()
}

// Name returns the configured label of the account-context.
func (c *Coordinator) Name() string {
	return c.name
}

// Start performs the first refresh synchronously and then begins periodic
// polling. The first refresh has no stale data to fall back to, so its
// failure fails Start and must fail setup.
func (c *Coordinator) Start(ctx context.Context) error {
	if err := c.refresh(ctx); err != nil {
		return fmt.Errorf("initial refresh failed for %q: %w", c.name, err)
	}

	ticker := time.NewTicker(c.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := c.refresh(ctx); err != nil {
					c.logger.Error("scheduled refresh failed",
						logger.String("account", c.name),
						logger.Error(err))
				}
			case <-c.manualTrigger:
				c.logger.Info("manual refresh triggered",
					logger.String("account", c.name))
				if err := c.refresh(ctx); err != nil {
					c.logger.Error("manual refresh failed",
						logger.String("account", c.name),
						logger.Error(err))
				}
			case <-c.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop tears the coordinator down. In-flight requests are abandoned to
// their context, never awaited.
func (c *Coordinator) Stop() {
	close(c.stopCh)
}

// TriggerRefresh requests an out-of-band refresh, typically right after a
// status write. Returns false when a trigger is already pending.
func (c *Coordinator) TriggerRefresh() bool {
	select {
	case c.manualTrigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// refresh pulls a new snapshot and publishes a fresh accessor. On failure
// after the first success the previously published accessor stays in place
// and readers never see the fault.
func (c *Coordinator) refresh(ctx context.Context) error {
	snap, raw, err := c.client.Pull(ctx)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		if c.accessor != nil {
			c.stale = true
		}
		if errors.Is(err, divera.ErrAuth) {
			c.needsReauth = true
		}
		c.mu.Unlock()
		return err
	}

	accessor := domain.NewAccessor(snap, c.client, c.loc, c.logger)

	c.mu.Lock()
	c.accessor = accessor
	c.stale = false
	c.needsReauth = false
	c.lastErr = nil
	c.lastSuccess = time.Now()
	c.mu.Unlock()

	c.logger.Debug("snapshot refreshed",
		logger.String("account", c.name))

	if c.store != nil {
		if err := c.store.SaveSnapshot(ctx, c.UCRID(), raw); err != nil {
			c.logger.Warn("failed to persist snapshot",
				logger.String("account", c.name),
				logger.Error(err))
		}
	}
	return nil
}

// Accessor returns the last good accessor, or nil before the first
// successful refresh.
func (c *Coordinator) Accessor() *domain.Accessor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessor
}

// Ready reports whether a snapshot has ever been published.
func (c *Coordinator) Ready() bool {
	return c.Accessor() != nil
}

// Stale reports whether the published snapshot outlived a failed refresh.
func (c *Coordinator) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}

// NeedsReauth reports whether the last refresh failed on authentication.
func (c *Coordinator) NeedsReauth() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.needsReauth
}

// LastSuccess returns when the published snapshot was fetched.
func (c *Coordinator) LastSuccess() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSuccess
}

// LastError returns the most recent refresh failure, nil after a success.
func (c *Coordinator) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}
