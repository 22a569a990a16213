// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package lifecycle orchestrates template persistence across the remote
// store and the local cache: best-effort dual writes, fallback loading,
// publishing, and soft deletion. A remote outage degrades edits to the
// cache instead of surfacing errors: losing a save would mean a check-in
// desk without badges.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"badgepress/internal/models"
	"badgepress/internal/store"
)

// ErrLastTemplate mirrors the store sentinel so handlers can branch
// without importing the store package.
var ErrLastTemplate = store.ErrLastTemplate

// Remote is the primary template store (PostgreSQL in production).
type Remote interface {
	ListByEvent(eventID string) ([]models.Template, error)
	Save(t *models.Template) (*models.Template, error)
	Publish(id string) error
	SoftDelete(id string) error
}

// LocalCache is the fallback store (Valkey in production). Its methods
// never fail loudly; a miss and an error look the same to callers.
type LocalCache interface {
	GetEvent(ctx context.Context, eventID string) ([]models.Template, bool)
	SetEvent(ctx context.Context, eventID string, templates []models.Template)
	SetTemplate(ctx context.Context, tmpl models.Template)
}

// Manager coordinates template persistence. At most one save per
// template id takes effect at a time: each save gets a sequence number
// and a completion that is no longer the latest for its id is discarded,
// so a slow response can never clobber a newer edit (last writer wins).
type Manager struct {
	remote Remote
	cache  LocalCache

	mu  sync.Mutex
	seq map[string]uint64
}

// New creates a lifecycle manager over the given backends.
func New(remote Remote, cache LocalCache) *Manager {
	return &Manager{
		remote: remote,
		cache:  cache,
		seq:    make(map[string]uint64),
	}
}

// Load fetches the template set for an event. Failure chain: remote
// store, then local cache, then a synthesized default template. The
// editor is never handed an empty set.
func (m *Manager) Load(ctx context.Context, eventID string) []models.Template {
	templates, err := m.remote.ListByEvent(eventID)
	if err == nil && len(templates) > 0 {
		// Warm the fallback so the next outage has data to serve.
		m.cache.SetEvent(ctx, eventID, templates)
		return templates
	}
	if err != nil {
		slog.Warn("remote template load failed, trying cache", "event_id", eventID, "error", err)
	}

	if cached, ok := m.cache.GetEvent(ctx, eventID); ok && len(cached) > 0 {
		return cached
	}

	slog.Info("no stored templates, synthesizing default", "event_id", eventID)
	return []models.Template{DefaultTemplate(eventID)}
}

// Save persists a template. Validation violations abort the save and are
// returned to the caller; persistence failures never are. A failed
// remote write degrades to a cache write and the edit continues.
//
// Saves are correlated by template id: if a newer save for the same id
// was issued while this one ran, this one's result is discarded.
func (m *Manager) Save(ctx context.Context, t models.Template) []models.Violation {
	if violations := models.Validate(t); len(violations) > 0 {
		return violations
	}

	seq := m.nextSeq(t.ID)

	saved, err := m.remote.Save(&t)

	if !m.isLatest(t.ID, seq) {
		slog.Debug("stale save discarded", "template_id", t.ID, "seq", seq)
		return nil
	}
	if err != nil {
		slog.Warn("remote save failed, caching locally", "template_id", t.ID, "error", err)
		m.cache.SetTemplate(ctx, t)
		return nil
	}

	m.cache.SetTemplate(ctx, *saved)
	return nil
}

// Publish freezes a template as the official one for its event and
// snapshots a version. Unlike Save, publishing requires the remote store:
// an official template that exists only in a cache would be meaningless.
func (m *Manager) Publish(ctx context.Context, t models.Template) ([]models.Violation, error) {
	if violations := models.Validate(t); len(violations) > 0 {
		return violations, nil
	}
	if err := m.remote.Publish(t.ID); err != nil {
		return nil, err
	}
	m.refreshEvent(ctx, t.EventID)
	return nil, nil
}

// Delete soft-deletes a template. The last live template of an event is
// protected (ErrLastTemplate).
func (m *Manager) Delete(ctx context.Context, t models.Template) error {
	if err := m.remote.SoftDelete(t.ID); err != nil {
		return err
	}
	m.refreshEvent(ctx, t.EventID)
	return nil
}

// refreshEvent re-reads an event's templates from the remote store into
// the cache after a lifecycle change. Best effort.
func (m *Manager) refreshEvent(ctx context.Context, eventID string) {
	templates, err := m.remote.ListByEvent(eventID)
	if err != nil {
		slog.Warn("cache refresh failed", "event_id", eventID, "error", err)
		return
	}
	m.cache.SetEvent(ctx, eventID, templates)
}

// nextSeq issues the next save sequence number for a template id.
func (m *Manager) nextSeq(id string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq[id]++
	return m.seq[id]
}

// isLatest reports whether seq is still the newest save issued for id.
func (m *Manager) isLatest(id string, seq uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seq[id] == seq
}

// IsLastTemplateErr reports whether err is the last-template guard.
func IsLastTemplateErr(err error) bool {
	return errors.Is(err, ErrLastTemplate)
}
