package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"stashline/internal/amqp"
	"stashline/internal/cache"
	"stashline/internal/core"
	"stashline/internal/projection"
)

// ItemSource supplies the persisted goals a projection runs over.
type ItemSource interface {
	ListItems(ctx context.Context) ([]core.StashItem, error)
}

// AlertPublisher fans milestone transitions out to the worker queue.
type AlertPublisher interface {
	PublishMilestoneAlert(ctx context.Context, msg *amqp.MilestoneAlertMessage) error
}

// ComputeRequest is the session-scoped half of a projection: the window and
// the hypotheticals layered over the stored items.
type ComputeRequest struct {
	Overrides projection.Overrides `json:"overrides"`
	Events    []core.NamedEvent    `json:"events"`
	Start     time.Time            `json:"start"`
	End       time.Time            `json:"end"`
	Cursor    *time.Time           `json:"cursor,omitempty"`
}

// ProjectionService memoizes projection results and publishes milestone
// alerts when a cursor evaluation crosses into funded or critical.
type ProjectionService struct {
	items  ItemSource
	alerts AlertPublisher
	cache  *cache.Store[projection.Result]
	group  singleflight.Group

	// now overrides the engine clock in tests; zero means wall clock.
	now time.Time

	mu           sync.Mutex
	lastStatuses map[string]projection.Status
}

func NewProjectionService(items ItemSource, alerts AlertPublisher, cacheSize int, cacheTTL time.Duration) *ProjectionService {
	return &ProjectionService{
		items:        items,
		alerts:       alerts,
		cache:        cache.New[projection.Result](cacheSize, cacheTTL),
		lastStatuses: make(map[string]projection.Status),
	}
}

// Compute runs a projection over the current stored items. Identical inputs
// hit the cache; concurrent identical requests collapse into one engine run.
func (s *ProjectionService) Compute(ctx context.Context, req ComputeRequest) (projection.Result, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return projection.Result{}, fmt.Errorf("list items: %w", err)
	}

	key, err := cacheKey(items, req)
	if err != nil {
		return projection.Result{}, fmt.Errorf("build cache key: %w", err)
	}

	if result, ok := s.cache.Get(key); ok {
		slog.DebugContext(ctx, "Projection cache hit", "key", key)
		return result, nil
	}

	value, err, _ := s.group.Do(key, func() (any, error) {
		if result, ok := s.cache.Get(key); ok {
			return result, nil
		}

		result, err := projection.Project(projection.Request{
			Items:     items,
			Overrides: req.Overrides,
			Events:    req.Events,
			Start:     req.Start,
			End:       req.End,
			Cursor:    req.Cursor,
			Now:       s.now,
		})
		if err != nil {
			return nil, err
		}

		s.cache.Set(key, result)
		slog.InfoContext(ctx, "Projection computed",
			"key", key,
			"items", len(result.ItemConfigs),
			"points", len(result.DataPoints),
			"warnings", len(result.Warnings))
		return result, nil
	})
	if err != nil {
		return projection.Result{}, err
	}

	result := value.(projection.Result)
	if req.Cursor != nil {
		s.publishMilestones(ctx, result, *req.Cursor)
	}
	return result, nil
}

// InvalidateCache drops every memoized projection. Called whenever the goal
// store changes.
func (s *ProjectionService) InvalidateCache() {
	s.cache.Purge()
}

// publishMilestones emits an alert for each item whose cursor status just
// crossed into funded or critical. Publish failures are logged, never
// surfaced: the projection itself succeeded.
func (s *ProjectionService) publishMilestones(ctx context.Context, result projection.Result, cursor time.Time) {
	if s.alerts == nil {
		return
	}

	names := make(map[string]string, len(result.ItemConfigs))
	for _, cfg := range result.ItemConfigs {
		names[cfg.ItemID] = cfg.Name
	}

	for itemID, card := range result.CursorProjections {
		if card.ProjectedStatus != projection.StatusFunded && card.ProjectedStatus != projection.StatusCritical {
			s.recordStatus(itemID, card.ProjectedStatus)
			continue
		}
		if !s.recordStatus(itemID, card.ProjectedStatus) {
			continue
		}

		msg := amqp.NewMilestoneAlertMessage(
			itemID,
			names[itemID],
			string(card.ProjectedStatus),
			card.ProjectedBalance.String(),
			string(core.MonthKeyOf(cursor)),
		)
		if err := s.alerts.PublishMilestoneAlert(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish milestone alert",
				"item_id", itemID,
				"status", card.ProjectedStatus,
				"error", err)
		}
	}
}

// recordStatus stores the latest status and reports whether it changed.
func (s *ProjectionService) recordStatus(itemID string, status projection.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastStatuses[itemID] == status {
		return false
	}
	s.lastStatuses[itemID] = status
	return true
}

// cacheKey digests every projection input so any change in stored items or
// session state lands on a different key.
func cacheKey(items []core.StashItem, req ComputeRequest) (string, error) {
	payload, err := json.Marshal(struct {
		Items   []core.StashItem `json:"items"`
		Request ComputeRequest   `json:"request"`
	}{items, req})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
