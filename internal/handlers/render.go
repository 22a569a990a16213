// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"badgepress/internal/models"
	"badgepress/internal/scene"
)

// Render groups the badge rendering handlers. Rendering is pure: the
// same template and attendee always produce the same scene graph, on the
// preview path and the bulk path alike.
type Render struct{}

// NewRender creates the render handler group.
func NewRender() *Render {
	return &Render{}
}

// attendee is the envelope upstream registration systems send: identity
// at the top level, profile fields nested under guest. A missing guest
// object is the one input that renders the invalid-data placeholder.
type attendee struct {
	ID    int64         `json:"id"`
	UUID  string        `json:"uuid,omitempty"`
	Guest *guestProfile `json:"guest"`
}

type guestProfile struct {
	Name           string           `json:"name"`
	Company        string           `json:"company,omitempty"`
	JobTitle       string           `json:"jobtitle,omitempty"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	GuestType      models.GuestType `json:"guest_type,omitempty"`
	ProfilePicture string           `json:"profile_picture,omitempty"`
}

// record flattens the envelope into the internal guest record. Returns
// nil when the guest object is absent.
func (a attendee) record() *models.GuestRecord {
	if a.Guest == nil {
		return nil
	}
	return &models.GuestRecord{
		ID:             a.ID,
		UUID:           a.UUID,
		Name:           a.Guest.Name,
		Company:        a.Guest.Company,
		JobTitle:       a.Guest.JobTitle,
		Email:          a.Guest.Email,
		Phone:          a.Guest.Phone,
		GuestType:      a.Guest.GuestType,
		ProfilePicture: a.Guest.ProfilePicture,
	}
}

type renderRequest struct {
	Template models.Template `json:"template"`
	Attendee attendee        `json:"attendee"`
}

// Badge renders one badge: (template, attendee) -> scene graph.
func (h *Render) Badge(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed render payload")
		return
	}

	graph := scene.Render(req.Template, req.Attendee.record())
	writeJSON(w, http.StatusOK, graph)
}

type batchRenderRequest struct {
	Template  models.Template `json:"template"`
	Attendees []attendee      `json:"attendees"`
}

// batchResult pairs one attendee with their rendered badge.
type batchResult struct {
	AttendeeID int64        `json:"attendee_id"`
	Graph      *scene.Graph `json:"graph"`
}

// Batch renders one template against many attendees, e.g. pre-printing
// all badges for an event. Attendees with missing guest data get the
// placeholder graph rather than failing the whole batch.
func (h *Render) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed batch payload")
		return
	}

	results := make([]batchResult, 0, len(req.Attendees))
	for _, a := range req.Attendees {
		results = append(results, batchResult{
			AttendeeID: a.ID,
			Graph:      scene.Render(req.Template, a.record()),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   len(results),
		"results": results,
	})
}
