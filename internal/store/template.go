// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides PostgreSQL persistence for badge templates and
// their published version snapshots.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"badgepress/internal/models"
)

// ErrLastTemplate is returned when deleting the only remaining template
// of an event: the editor must never be left with nothing to load.
var ErrLastTemplate = errors.New("cannot delete the last template of an event")

// templateColumns lists all columns for badge_templates SELECTs.
const templateColumns = `id, event_id, name, template_json, status,
	version, created_by, updated_by, created_at, updated_at, deleted_at`

// TemplateStore handles all badge template database operations.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// scanTemplate scans one badge_templates row, decoding the document blob
// into the unified template model.
func scanTemplate(scanner interface{ Scan(...any) error }) (*models.Template, error) {
	var t models.Template
	var doc []byte
	err := scanner.Scan(
		&t.ID, &t.EventID, &t.Name, &doc, &t.Status,
		&t.Version, &t.CreatedBy, &t.UpdatedBy,
		&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := models.DecodeDocument(doc, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByEvent returns all live (not soft-deleted) templates for an event,
// official first, then newest drafts.
func (s *TemplateStore) ListByEvent(eventID string) ([]models.Template, error) {
	rows, err := s.db.Query(`
		SELECT `+templateColumns+`
		FROM badge_templates
		WHERE event_id = $1 AND deleted_at IS NULL
		ORDER BY status = 'official' DESC, updated_at DESC
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// FindByID retrieves a template by id, including soft-deleted rows so
// they can be recovered. Returns nil if not found.
func (s *TemplateStore) FindByID(id string) (*models.Template, error) {
	row := s.db.QueryRow(`
		SELECT `+templateColumns+`
		FROM badge_templates WHERE id = $1
	`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}

// Save upserts a template. Ids are generated by the editor, so a save is
// an insert the first time and an update afterwards; the version counter
// bumps on every update.
func (s *TemplateStore) Save(t *models.Template) (*models.Template, error) {
	doc, err := models.EncodeDocument(*t)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`
		INSERT INTO badge_templates (id, event_id, name, template_json, status, version, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, 1, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			template_json = EXCLUDED.template_json,
			updated_by = EXCLUDED.updated_by,
			version = badge_templates.version + 1,
			updated_at = NOW()
		RETURNING `+templateColumns,
		t.ID, t.EventID, t.Name, doc, t.Status, t.CreatedBy, t.UpdatedBy,
	)
	saved, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("save template: %w", err)
	}
	return saved, nil
}

// Publish marks a template as the official one for its event, demoting
// any previous official template back to draft, and snapshots the
// published document into the version history. One transaction.
func (s *TemplateStore) Publish(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var eventID string
	var doc []byte
	var name, updatedBy string
	err = tx.QueryRow(`
		SELECT event_id, template_json, name, updated_by
		FROM badge_templates WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&eventID, &doc, &name, &updatedBy)
	if err != nil {
		return fmt.Errorf("load template for publish: %w", err)
	}

	// Exactly one official template per event.
	_, err = tx.Exec(`
		UPDATE badge_templates SET status = 'draft'
		WHERE event_id = $1 AND status = 'official'
	`, eventID)
	if err != nil {
		return fmt.Errorf("demote official template: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE badge_templates SET status = 'official', updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("promote template: %w", err)
	}

	// Immutable snapshot of the document that went official.
	_, err = tx.Exec(`
		INSERT INTO badge_template_versions (template_id, event_id, name, document, created_by)
		VALUES ($1, $2, $3, $4, $5)
	`, id, eventID, name, doc, updatedBy)
	if err != nil {
		return fmt.Errorf("snapshot template version: %w", err)
	}

	return tx.Commit()
}

// SoftDelete marks a template deleted (recoverable). Deleting the last
// live template of an event is rejected with ErrLastTemplate.
func (s *TemplateStore) SoftDelete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var eventID string
	if err := tx.QueryRow(`
		SELECT event_id FROM badge_templates WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&eventID); err != nil {
		return fmt.Errorf("load template for delete: %w", err)
	}

	var live int
	if err := tx.QueryRow(`
		SELECT COUNT(*) FROM badge_templates
		WHERE event_id = $1 AND deleted_at IS NULL
	`, eventID).Scan(&live); err != nil {
		return fmt.Errorf("count live templates: %w", err)
	}
	if live <= 1 {
		return ErrLastTemplate
	}

	if _, err := tx.Exec(`
		UPDATE badge_templates SET deleted_at = NOW() WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("soft delete template: %w", err)
	}

	return tx.Commit()
}

// Restore clears a template's soft-delete marker.
func (s *TemplateStore) Restore(id string) error {
	_, err := s.db.Exec(`
		UPDATE badge_templates SET deleted_at = NULL WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("restore template: %w", err)
	}
	return nil
}

// CountByEvent returns the number of live templates for an event.
func (s *TemplateStore) CountByEvent(eventID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM badge_templates
		WHERE event_id = $1 AND deleted_at IS NULL
	`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return count, nil
}
