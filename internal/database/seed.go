package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"badgepress/internal/lifecycle"
	"badgepress/internal/models"
)

// demoEventID is the event seeded in development so the editor opens
// with something to design against.
const demoEventID = "demo-event"

// Seed populates the database with initial development data: one default
// badge template for the demo event. No-op if templates already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM badge_templates").Scan(&count); err != nil {
		return fmt.Errorf("seed check templates: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tmpl := lifecycle.DefaultTemplate(demoEventID)
	doc, err := models.EncodeDocument(tmpl)
	if err != nil {
		return fmt.Errorf("seed encode template: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO badge_templates (id, event_id, name, template_json, status, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, tmpl.ID, tmpl.EventID, tmpl.Name, doc, tmpl.Status, "seed")
	if err != nil {
		return fmt.Errorf("seed insert template: %w", err)
	}

	slog.Info("database seeded with default badge template",
		"event_id", demoEventID,
		"template_id", tmpl.ID,
	)
	return nil
}
