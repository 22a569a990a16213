// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API surface: badge template
// lifecycle (load, save, publish, delete, versions) and badge rendering.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"badgepress/internal/lifecycle"
	"badgepress/internal/models"
)

// VersionLister reads the publish snapshots of a template.
type VersionLister interface {
	ListByTemplateID(templateID string) ([]*models.TemplateVersion, error)
	FindByID(id string) (*models.TemplateVersion, error)
}

// Templates groups the template lifecycle handlers.
type Templates struct {
	manager  *lifecycle.Manager
	versions VersionLister
}

// NewTemplates creates the template handler group.
func NewTemplates(manager *lifecycle.Manager, versions VersionLister) *Templates {
	return &Templates{manager: manager, versions: versions}
}

// List returns the template set for an event. Never empty and never an
// error: load degrades through the cache down to a synthesized default.
func (h *Templates) List(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	templates := h.manager.Load(r.Context(), eventID)
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

// Save upserts a template. Validation violations come back as 422; a
// remote-store outage is absorbed by the cache and still reports success.
func (h *Templates) Save(w http.ResponseWriter, r *http.Request) {
	var tmpl models.Template
	if err := json.NewDecoder(r.Body).Decode(&tmpl); err != nil {
		writeError(w, http.StatusBadRequest, "malformed template payload")
		return
	}
	if tmpl.ID == "" || tmpl.EventID == "" {
		writeError(w, http.StatusBadRequest, "template id and event_id are required")
		return
	}

	if violations := h.manager.Save(r.Context(), tmpl); len(violations) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"violations": violations})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Publish freezes the template as the official one for its event.
func (h *Templates) Publish(w http.ResponseWriter, r *http.Request) {
	var tmpl models.Template
	if err := json.NewDecoder(r.Body).Decode(&tmpl); err != nil {
		writeError(w, http.StatusBadRequest, "malformed template payload")
		return
	}
	tmpl.ID = chi.URLParam(r, "id")

	violations, err := h.manager.Publish(r.Context(), tmpl)
	if len(violations) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"violations": violations})
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "publish failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "published"})
}

// Delete soft-deletes a template. The event's last template is protected.
func (h *Templates) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		writeError(w, http.StatusBadRequest, "event_id query parameter is required")
		return
	}

	err := h.manager.Delete(r.Context(), models.Template{ID: id, EventID: eventID})
	if lifecycle.IsLastTemplateErr(err) {
		writeError(w, http.StatusConflict, "an event must keep at least one template")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "delete failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Versions lists the immutable publish snapshots of a template.
func (h *Templates) Versions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	versions, err := h.versions.ListByTemplateID(id)
	if err != nil {
		writeError(w, http.StatusBadGateway, "version history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"versions": versions})
}

// Version returns one publish snapshot, including its full document blob.
// A snapshot id belonging to another template is treated as not found.
func (h *Templates) Version(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "id")
	versionID := chi.URLParam(r, "versionID")

	version, err := h.versions.FindByID(versionID)
	if err != nil {
		writeError(w, http.StatusBadGateway, "version history unavailable")
		return
	}
	if version == nil || version.TemplateID != templateID {
		writeError(w, http.StatusNotFound, "version not found")
		return
	}
	writeJSON(w, http.StatusOK, version)
}
