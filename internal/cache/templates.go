// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

// The Valkey-backed local template cache, keyed by event id. It is the
// fallback leg of the best-effort dual write: saves that cannot reach
// PostgreSQL land here, and loads fall back here when the remote store is
// unavailable, so check-in can keep printing badges through an outage.

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"badgepress/internal/models"
)

const (
	// templateKeyPrefix is the Valkey key prefix for cached event templates.
	templateKeyPrefix = "badge-templates:"

	// DefaultTemplateTTL is how long cached templates survive without a
	// refresh. Long on purpose: the cache must outlive a remote outage.
	DefaultTemplateTTL = 72 * time.Hour
)

// TemplateCache stores each event's template set as one JSON blob.
type TemplateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTemplateCache creates a template cache backed by the given client.
func NewTemplateCache(client *redis.Client, ttl time.Duration) *TemplateCache {
	if ttl == 0 {
		ttl = DefaultTemplateTTL
	}
	return &TemplateCache{client: client, ttl: ttl}
}

// GetEvent returns the cached templates for an event. The second result
// is false on a miss or any cache error; callers treat both the same.
func (tc *TemplateCache) GetEvent(ctx context.Context, eventID string) ([]models.Template, bool) {
	val, err := tc.client.Get(ctx, templateKeyPrefix+eventID).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("template cache get error", "event_id", eventID, "error", err)
		return nil, false
	}

	var templates []models.Template
	if err := json.Unmarshal(val, &templates); err != nil {
		slog.Warn("template cache decode error", "event_id", eventID, "error", err)
		return nil, false
	}
	slog.Debug("template cache hit", "event_id", eventID, "count", len(templates))
	return templates, true
}

// SetEvent stores the full template set for an event. Errors are logged,
// never returned: a failed cache write must not fail the edit.
func (tc *TemplateCache) SetEvent(ctx context.Context, eventID string, templates []models.Template) {
	data, err := json.Marshal(templates)
	if err != nil {
		slog.Warn("template cache encode error", "event_id", eventID, "error", err)
		return
	}
	if err := tc.client.Set(ctx, templateKeyPrefix+eventID, data, tc.ttl).Err(); err != nil {
		slog.Warn("template cache set error", "event_id", eventID, "error", err)
	}
}

// SetTemplate upserts one template inside its event's cached set,
// creating the set when absent.
func (tc *TemplateCache) SetTemplate(ctx context.Context, tmpl models.Template) {
	templates, _ := tc.GetEvent(ctx, tmpl.EventID)
	replaced := false
	for i := range templates {
		if templates[i].ID == tmpl.ID {
			templates[i] = tmpl
			replaced = true
			break
		}
	}
	if !replaced {
		templates = append(templates, tmpl)
	}
	tc.SetEvent(ctx, tmpl.EventID, templates)
}

// InvalidateEvent removes an event's cached template set.
func (tc *TemplateCache) InvalidateEvent(ctx context.Context, eventID string) {
	if err := tc.client.Del(ctx, templateKeyPrefix+eventID).Err(); err != nil {
		slog.Warn("template cache invalidate error", "event_id", eventID, "error", err)
	}
	slog.Debug("template cache invalidated", "event_id", eventID)
}

// EventKey returns the cache key used for an event, exposed for tests.
func EventKey(eventID string) string {
	return fmt.Sprintf("%s%s", templateKeyPrefix, eventID)
}
