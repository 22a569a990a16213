// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"badgepress/internal/models"
	"badgepress/internal/store"
)

func testEvent() string {
	return "ev-test-" + uuid.NewString()[:8]
}

func TestTemplateStoreSaveAndFind(t *testing.T) {
	db := testDB(t)
	s := store.NewTemplateStore(db)

	eventID := testEvent()
	t.Cleanup(func() { cleanEvent(t, db, eventID) })

	tmpl := models.NewTemplate(eventID, "Check-in Badge")
	tmpl.Elements = []models.Element{
		models.NewGuestFieldElement(models.FieldName),
		models.NewGuestFieldElement(models.FieldQRCode),
	}

	saved, err := s.Save(&tmpl)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID != tmpl.ID {
		t.Errorf("id: got %q, want %q", saved.ID, tmpl.ID)
	}
	if saved.Version != 1 {
		t.Errorf("version: got %d, want 1", saved.Version)
	}
	if saved.Status != models.StatusDraft {
		t.Errorf("status: got %q, want draft", saved.Status)
	}

	found, err := s.FindByID(tmpl.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected template, got nil")
	}
	if len(found.Elements) != 2 {
		t.Errorf("elements: got %d, want 2", len(found.Elements))
	}
	if found.Elements[1].GuestField != models.FieldQRCode {
		t.Error("element document not round-tripped")
	}

	// Not found.
	if found, _ := s.FindByID(uuid.NewString()); found != nil {
		t.Error("expected nil for random id")
	}
}

// TestTemplateStoreSaveUpserts: a second save of the same id updates in
// place and bumps the version counter.
func TestTemplateStoreSaveUpserts(t *testing.T) {
	db := testDB(t)
	s := store.NewTemplateStore(db)

	eventID := testEvent()
	t.Cleanup(func() { cleanEvent(t, db, eventID) })

	tmpl := models.NewTemplate(eventID, "Draft")
	if _, err := s.Save(&tmpl); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	tmpl.Name = "Renamed"
	tmpl.Elements = []models.Element{models.NewShapeElement()}
	saved, err := s.Save(&tmpl)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if saved.Version != 2 {
		t.Errorf("version after update: got %d, want 2", saved.Version)
	}
	if saved.Name != "Renamed" || len(saved.Elements) != 1 {
		t.Errorf("update not applied: %+v", saved)
	}

	count, err := s.CountByEvent(eventID)
	if err != nil {
		t.Fatalf("CountByEvent: %v", err)
	}
	if count != 1 {
		t.Errorf("count: got %d, want 1 (upsert must not duplicate)", count)
	}
}

// TestTemplateStorePublish: publishing makes exactly one template
// official per event and snapshots a version.
func TestTemplateStorePublish(t *testing.T) {
	db := testDB(t)
	s := store.NewTemplateStore(db)
	vs := store.NewVersionStore(db)

	eventID := testEvent()
	t.Cleanup(func() { cleanEvent(t, db, eventID) })

	a := models.NewTemplate(eventID, "First")
	b := models.NewTemplate(eventID, "Second")
	if _, err := s.Save(&a); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if _, err := s.Save(&b); err != nil {
		t.Fatalf("save b: %v", err)
	}

	if err := s.Publish(a.ID); err != nil {
		t.Fatalf("publish a: %v", err)
	}
	if err := s.Publish(b.ID); err != nil {
		t.Fatalf("publish b: %v", err)
	}

	templates, err := s.ListByEvent(eventID)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	official := 0
	for _, tmpl := range templates {
		if tmpl.IsOfficial() {
			official++
			if tmpl.ID != b.ID {
				t.Errorf("official template: got %q, want %q", tmpl.ID, b.ID)
			}
		}
	}
	if official != 1 {
		t.Errorf("official count: got %d, want 1", official)
	}

	versions, err := vs.ListByTemplateID(a.ID)
	if err != nil {
		t.Fatalf("ListByTemplateID: %v", err)
	}
	if len(versions) != 1 {
		t.Errorf("versions for a: got %d, want 1", len(versions))
	}
	if len(versions) == 1 {
		var decoded models.Template
		if err := models.DecodeDocument(versions[0].Document, &decoded); err != nil {
			t.Errorf("version document does not decode: %v", err)
		}

		found, err := vs.FindByID(versions[0].ID)
		if err != nil || found == nil {
			t.Fatalf("FindByID: %v, %v", found, err)
		}
		if found.TemplateID != a.ID {
			t.Errorf("snapshot template id: got %q, want %q", found.TemplateID, a.ID)
		}
	}
	if found, _ := vs.FindByID(uuid.NewString()); found != nil {
		t.Error("expected nil for random version id")
	}
}

// TestTemplateStoreSoftDelete: deletion is recoverable and the last live
// template of an event is protected.
func TestTemplateStoreSoftDelete(t *testing.T) {
	db := testDB(t)
	s := store.NewTemplateStore(db)

	eventID := testEvent()
	t.Cleanup(func() { cleanEvent(t, db, eventID) })

	a := models.NewTemplate(eventID, "Keep")
	b := models.NewTemplate(eventID, "Drop")
	if _, err := s.Save(&a); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if _, err := s.Save(&b); err != nil {
		t.Fatalf("save b: %v", err)
	}

	if err := s.SoftDelete(b.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	templates, _ := s.ListByEvent(eventID)
	if len(templates) != 1 {
		t.Fatalf("live templates: got %d, want 1", len(templates))
	}

	// The soft-deleted row is still reachable by id for recovery.
	dropped, err := s.FindByID(b.ID)
	if err != nil || dropped == nil {
		t.Fatalf("FindByID deleted: %v, %v", dropped, err)
	}
	if dropped.DeletedAt == nil {
		t.Error("expected deleted_at to be set")
	}

	// Last remaining template cannot be deleted.
	if err := s.SoftDelete(a.ID); !errors.Is(err, store.ErrLastTemplate) {
		t.Errorf("deleting last template: got %v, want store.ErrLastTemplate", err)
	}

	// Restore brings the row back.
	if err := s.Restore(b.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if templates, _ := s.ListByEvent(eventID); len(templates) != 2 {
		t.Errorf("after restore: got %d live templates, want 2", len(templates))
	}
}
