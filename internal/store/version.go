// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"badgepress/internal/models"
)

// versionColumns lists all columns for badge_template_versions SELECTs.
const versionColumns = `id, template_id, event_id, name, document, created_by, created_at`

// VersionStore provides access to the immutable snapshots taken each
// time a template is published.
type VersionStore struct {
	db *sql.DB
}

// NewVersionStore creates a new VersionStore backed by the given database.
func NewVersionStore(db *sql.DB) *VersionStore {
	return &VersionStore{db: db}
}

func scanVersion(scanner interface{ Scan(...any) error }) (*models.TemplateVersion, error) {
	var v models.TemplateVersion
	err := scanner.Scan(
		&v.ID, &v.TemplateID, &v.EventID, &v.Name, &v.Document,
		&v.CreatedBy, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListByTemplateID returns all version snapshots for a template, newest first.
func (s *VersionStore) ListByTemplateID(templateID string) ([]*models.TemplateVersion, error) {
	rows, err := s.db.Query(`
		SELECT `+versionColumns+`
		FROM badge_template_versions
		WHERE template_id = $1
		ORDER BY created_at DESC
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template versions: %w", err)
	}
	defer rows.Close()

	var versions []*models.TemplateVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// FindByID returns a single version snapshot, or nil when absent.
func (s *VersionStore) FindByID(id string) (*models.TemplateVersion, error) {
	row := s.db.QueryRow(`
		SELECT `+versionColumns+`
		FROM badge_template_versions
		WHERE id = $1
	`, id)
	v, err := scanVersion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template version: %w", err)
	}
	return v, nil
}
