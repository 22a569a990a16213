// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// TemplateStatus represents the lifecycle state of a badge template.
// Drafts are editable; the official template is the frozen one used for
// real badge issuance. The transition is one-way (publish).
type TemplateStatus string

const (
	StatusDraft    TemplateStatus = "draft"
	StatusOfficial TemplateStatus = "official"
)

// PageSize identifies one of the fixed physical badge formats, in mm.
type PageSize string

const (
	PageSquare100 PageSize = "100x100" // standard square badge
	PageA6        PageSize = "105x148"
	PageCR80      PageSize = "86x54" // credit-card badge
)

// Dimensions returns the physical width and height in millimetres.
// Unknown sizes fall back to the square badge.
func (p PageSize) Dimensions() (w, h float64) {
	switch p {
	case PageA6:
		return 105, 148
	case PageCR80:
		return 86, 54
	default:
		return 100, 100
	}
}

// Template is the badge document: page settings plus an ordered sequence
// of elements. It is treated as an immutable value handed between owners
// (editor, renderer, persistence); every edit works on a Clone and swaps
// the whole value in, which keeps undo history a plain value stack.
type Template struct {
	ID              string         `json:"id"`
	EventID         string         `json:"event_id"`
	Name            string         `json:"name"`
	PageSize        PageSize       `json:"page_size"`
	BackgroundColor string         `json:"background_color"`
	BackgroundImage string         `json:"background_image,omitempty"`
	Elements        []Element      `json:"elements"`
	Status          TemplateStatus `json:"status"`

	// Customized distinguishes canvas-designed templates (explicit font
	// sizes honoured verbatim) from the legacy auto-sizing layout.
	Customized bool `json:"customized"`

	Version   int        `json:"version"`
	CreatedBy string     `json:"created_by,omitempty"`
	UpdatedBy string     `json:"updated_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewTemplate returns an empty draft template for the given event.
func NewTemplate(eventID, name string) Template {
	return Template{
		ID:              uuid.NewString(),
		EventID:         eventID,
		Name:            name,
		PageSize:        PageSquare100,
		BackgroundColor: "#ffffff",
		Status:          StatusDraft,
		Version:         1,
	}
}

// Clone returns a deep copy of the template. Elements are value types,
// so copying the slice is sufficient.
func (t Template) Clone() Template {
	c := t
	c.Elements = make([]Element, len(t.Elements))
	copy(c.Elements, t.Elements)
	if t.DeletedAt != nil {
		at := *t.DeletedAt
		c.DeletedAt = &at
	}
	return c
}

// ElementIndex returns the position of the element with the given id,
// or -1 when absent.
func (t Template) ElementIndex(id string) int {
	for i, el := range t.Elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}

// ElementByID returns a pointer into the template's element slice, or nil.
// Callers that mutate through it must own the template value.
func (t *Template) ElementByID(id string) *Element {
	if i := t.ElementIndex(id); i >= 0 {
		return &t.Elements[i]
	}
	return nil
}

// PaintOrder returns indices into Elements sorted for painting: ascending
// zIndex, ties broken by original sequence position (stable sort), so two
// elements with equal zIndex always paint in insertion order.
func (t Template) PaintOrder() []int {
	order := make([]int, len(t.Elements))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.Elements[order[a]].ZIndex < t.Elements[order[b]].ZIndex
	})
	return order
}

// IsOfficial reports whether this is the published template for its event.
func (t Template) IsOfficial() bool {
	return t.Status == StatusOfficial
}

// TemplateVersion is an immutable snapshot of a template taken when it is
// published, keeping the exact document that badges were issued against.
type TemplateVersion struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"template_id"`
	EventID    string    `json:"event_id"`
	Name       string    `json:"name"`
	Document   []byte    `json:"document"` // serialized template JSON
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewVersion snapshots a template into an immutable version record.
func NewVersion(t Template, doc []byte) TemplateVersion {
	return TemplateVersion{
		ID:         uuid.NewString(),
		TemplateID: t.ID,
		EventID:    t.EventID,
		Name:       t.Name,
		Document:   doc,
		CreatedBy:  t.UpdatedBy,
	}
}
