// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor implements the interactive badge design engine: a state
// machine over one template plus a selection, pointer-driven transforms,
// element lifecycle operations, and a bounded undo/redo history of whole
// template snapshots.
package editor

import (
	"math"

	"badgepress/internal/models"
	"badgepress/internal/scene"
)

// State is the interaction state of the editor.
type State string

const (
	StateIdle         State = "idle"         // nothing selected
	StateSelected     State = "selected"     // one element selected
	StateTransforming State = "transforming" // drag in progress on a scratch copy
)

// Handle identifies which part of the selected element a drag grabs.
type Handle string

const (
	HandleMove   Handle = "move"
	HandleResize Handle = "resize"
	HandleRotate Handle = "rotate"
)

// maxHistory bounds the undo stack. Older snapshots are discarded.
const maxHistory = 20

// duplicateOffset shifts a duplicated element so the copy is visibly
// distinct from its source.
const duplicateOffset = 20

// SampleGuest is the fixed record the canvas preview renders against
// while a template is being designed.
var SampleGuest = models.GuestRecord{
	ID:        1,
	Name:      "Jordan Sample",
	Company:   "Acme Corp",
	JobTitle:  "Field Engineer",
	Email:     "jordan@acme.example",
	Phone:     "+1 555 0100",
	GuestType: models.GuestType{Name: "Attendee"},
}

// snapshot is one undoable point in time: the whole template value plus
// the element selected when it was taken.
type snapshot struct {
	tmpl       models.Template
	selectedID string
}

// Editor owns the template being designed. All mutations go through it;
// the template is exposed only as value copies, so history entries and
// outside readers can never be corrupted by later edits.
//
// Editor is not safe for concurrent use. It models a single-operator,
// event-driven UI session.
type Editor struct {
	tmpl       models.Template
	selectedID string
	state      State

	// scratch holds live geometry during a drag. Intermediate frames are
	// applied here and discarded freely; only the final frame on release
	// is committed to the template and history.
	scratch *models.Template
	handle  Handle

	history []snapshot
	cursor  int

	// onCommit fires after every committed mutation (never on undo/redo
	// and never mid-drag). The caller uses it to schedule persistence.
	onCommit func(models.Template)
}

// New creates an editor over the given template. The initial state is
// recorded as the oldest history entry so a full undo returns to it.
func New(tmpl models.Template, onCommit func(models.Template)) *Editor {
	e := &Editor{
		tmpl:     tmpl.Clone(),
		state:    StateIdle,
		onCommit: onCommit,
	}
	e.history = []snapshot{{tmpl: e.tmpl.Clone()}}
	e.cursor = 0
	return e
}

// Template returns a value copy of the current template.
func (e *Editor) Template() models.Template {
	if e.scratch != nil {
		return e.scratch.Clone()
	}
	return e.tmpl.Clone()
}

// State returns the current interaction state.
func (e *Editor) State() State { return e.state }

// SelectedID returns the id of the selected element, or "".
func (e *Editor) SelectedID() string { return e.selectedID }

// Preview renders the current template (including in-progress drag
// geometry) against the fixed sample guest for the design canvas.
func (e *Editor) Preview() *scene.Graph {
	tmpl := e.Template()
	guest := SampleGuest
	return scene.Render(tmpl, &guest)
}

// PointerDown handles a press on the canvas. A hit on an element selects
// it (topmost in paint order wins); a press on empty canvas deselects.
// An in-progress transform is cancelled first.
func (e *Editor) PointerDown(x, y float64) {
	if e.state == StateTransforming {
		e.CancelTransform()
	}
	if id, ok := e.hitTest(x, y); ok {
		e.selectedID = id
		e.state = StateSelected
		return
	}
	e.selectedID = ""
	e.state = StateIdle
}

// hitTest returns the topmost visible element containing the point.
func (e *Editor) hitTest(x, y float64) (string, bool) {
	order := e.tmpl.PaintOrder()
	for i := len(order) - 1; i >= 0; i-- {
		el := e.tmpl.Elements[order[i]]
		if !el.Visible {
			continue
		}
		if x >= el.X && x <= el.X+el.Width && y >= el.Y && y <= el.Y+el.Height {
			return el.ID, true
		}
	}
	return "", false
}

// StartTransform begins a drag on the selected element's body or one of
// its handles. Geometry changes are applied to a scratch copy until
// EndTransform commits them.
func (e *Editor) StartTransform(h Handle) {
	if e.state != StateSelected || e.selectedID == "" {
		return
	}
	scratch := e.tmpl.Clone()
	e.scratch = &scratch
	e.handle = h
	e.state = StateTransforming
}

// Drag applies a pointer delta to the in-progress transform. Move shifts
// position, resize grows the size (clamped at zero), rotate adds dx
// degrees normalized into [0, 360). No history is written.
func (e *Editor) Drag(dx, dy float64) {
	if e.state != StateTransforming || e.scratch == nil {
		return
	}
	el := e.scratch.ElementByID(e.selectedID)
	if el == nil {
		return
	}
	switch e.handle {
	case HandleMove:
		el.X += dx
		el.Y += dy
	case HandleResize:
		el.Width = math.Max(0, el.Width+dx)
		el.Height = math.Max(0, el.Height+dy)
	case HandleRotate:
		el.Rotation = normalizeAngle(el.Rotation + dx)
	}
}

// EndTransform commits the drag result as exactly one history entry and
// returns to the selected state.
func (e *Editor) EndTransform() {
	if e.state != StateTransforming || e.scratch == nil {
		return
	}
	e.tmpl = *e.scratch
	e.scratch = nil
	e.state = StateSelected
	e.commit()
}

// CancelTransform discards the in-progress drag, leaving the template
// and history untouched.
func (e *Editor) CancelTransform() {
	if e.state != StateTransforming {
		return
	}
	e.scratch = nil
	e.state = StateSelected
}

// AddElement appends a fresh default element of the given type, placing
// it on top of the z-order, selects it, and commits.
func (e *Editor) AddElement(t models.ElementType) models.Element {
	el := models.NewElement(t)
	el.ZIndex = len(e.tmpl.Elements)

	next := e.tmpl.Clone()
	next.Elements = append(next.Elements, el)
	e.tmpl = next
	e.selectedID = el.ID
	e.state = StateSelected
	e.commit()
	return el
}

// DuplicateElement clones the element with a new id and a small offset so
// the copy is visibly distinct, selects the copy, and commits. Unknown
// ids are a no-op.
func (e *Editor) DuplicateElement(id string) {
	i := e.tmpl.ElementIndex(id)
	if i < 0 {
		return
	}
	copyEl := e.tmpl.Elements[i]
	copyEl.ID = models.NewElement(copyEl.Type).ID
	copyEl.X += duplicateOffset
	copyEl.Y += duplicateOffset

	next := e.tmpl.Clone()
	next.Elements = append(next.Elements, copyEl)
	e.tmpl = next
	e.selectedID = copyEl.ID
	e.state = StateSelected
	e.commit()
}

// Patch carries a partial element update from the property panel. Only
// non-nil fields are applied.
type Patch struct {
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64
	ZIndex   *int
	Visible  *bool

	Content    *string
	FontFamily *string
	FontSize   *float64
	FontWeight *string
	Color      *string
	TextAlign  *string

	Src             *string
	Payload         *string
	ShapeType       *models.ShapeType
	BackgroundColor *string
	BorderColor     *string
	BorderWidth     *float64
	GuestField      *models.GuestFieldKey
}

// UpdateElement merges the patch into the element with the given id and
// commits. An unknown id is a silent no-op so a stale reference after a
// concurrent delete cannot fault the editor.
func (e *Editor) UpdateElement(id string, p Patch) {
	if e.tmpl.ElementIndex(id) < 0 {
		return
	}
	next := e.tmpl.Clone()
	el := next.ElementByID(id)
	applyPatch(el, p)
	e.tmpl = next
	e.commit()
}

func applyPatch(el *models.Element, p Patch) {
	if p.X != nil {
		el.X = *p.X
	}
	if p.Y != nil {
		el.Y = *p.Y
	}
	if p.Width != nil {
		el.Width = *p.Width
	}
	if p.Height != nil {
		el.Height = *p.Height
	}
	if p.Rotation != nil {
		el.Rotation = normalizeAngle(*p.Rotation)
	}
	if p.ZIndex != nil {
		el.ZIndex = *p.ZIndex
	}
	if p.Visible != nil {
		el.Visible = *p.Visible
	}
	if p.Content != nil {
		el.Content = *p.Content
	}
	if p.FontFamily != nil {
		el.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		el.FontSize = *p.FontSize
	}
	if p.FontWeight != nil {
		el.FontWeight = *p.FontWeight
	}
	if p.Color != nil {
		el.Color = *p.Color
	}
	if p.TextAlign != nil {
		el.TextAlign = *p.TextAlign
	}
	if p.Src != nil {
		el.Src = *p.Src
	}
	if p.Payload != nil {
		el.Payload = *p.Payload
	}
	if p.ShapeType != nil {
		el.ShapeType = *p.ShapeType
	}
	if p.BackgroundColor != nil {
		el.BackgroundColor = *p.BackgroundColor
	}
	if p.BorderColor != nil {
		el.BorderColor = *p.BorderColor
	}
	if p.BorderWidth != nil {
		el.BorderWidth = *p.BorderWidth
	}
	if p.GuestField != nil {
		el.GuestField = *p.GuestField
	}
}

// RemoveElement deletes the element and commits. Deleting the selection
// drops back to the idle state. Unknown ids are a no-op.
func (e *Editor) RemoveElement(id string) {
	i := e.tmpl.ElementIndex(id)
	if i < 0 {
		return
	}
	next := e.tmpl.Clone()
	next.Elements = append(next.Elements[:i], next.Elements[i+1:]...)
	e.tmpl = next
	if e.selectedID == id {
		e.selectedID = ""
		e.state = StateIdle
	}
	e.commit()
}

// Direction names a one-step z-order move.
type Direction string

const (
	DirUp   Direction = "up"
	DirDown Direction = "down"
)

// Reorder swaps the element with its immediate neighbour in effective
// paint order and renumbers zIndex to match. At the top or bottom of the
// stack it is a no-op (no history entry).
func (e *Editor) Reorder(id string, dir Direction) {
	order := e.tmpl.PaintOrder()
	pos := -1
	for p, idx := range order {
		if e.tmpl.Elements[idx].ID == id {
			pos = p
			break
		}
	}
	if pos < 0 {
		return
	}

	swap := pos + 1
	if dir == DirDown {
		swap = pos - 1
	}
	if swap < 0 || swap >= len(order) {
		return
	}
	order[pos], order[swap] = order[swap], order[pos]

	next := e.tmpl.Clone()
	for p, idx := range order {
		next.Elements[idx].ZIndex = p
	}
	e.tmpl = next
	e.commit()
}

// Undo steps back one history entry, restoring template and selection.
// At the oldest entry it is a no-op. Undo never fires persistence.
func (e *Editor) Undo() {
	if e.cursor == 0 {
		return
	}
	e.cursor--
	e.restore(e.history[e.cursor])
}

// Redo steps forward one history entry. At the newest entry it is a no-op.
func (e *Editor) Redo() {
	if e.cursor >= len(e.history)-1 {
		return
	}
	e.cursor++
	e.restore(e.history[e.cursor])
}

// CanUndo reports whether an older history entry exists.
func (e *Editor) CanUndo() bool { return e.cursor > 0 }

// CanRedo reports whether a newer history entry exists.
func (e *Editor) CanRedo() bool { return e.cursor < len(e.history)-1 }

func (e *Editor) restore(s snapshot) {
	e.tmpl = s.tmpl.Clone()
	e.selectedID = s.selectedID
	e.scratch = nil
	if e.selectedID != "" && e.tmpl.ElementIndex(e.selectedID) >= 0 {
		e.state = StateSelected
	} else {
		e.selectedID = ""
		e.state = StateIdle
	}
}

// commit records the current template as a new history entry, discarding
// any redo branch and the oldest entries beyond the history bound, then
// notifies the commit hook.
func (e *Editor) commit() {
	e.history = append(e.history[:e.cursor+1], snapshot{
		tmpl:       e.tmpl.Clone(),
		selectedID: e.selectedID,
	})
	if len(e.history) > maxHistory {
		e.history = e.history[len(e.history)-maxHistory:]
	}
	e.cursor = len(e.history) - 1

	if e.onCommit != nil {
		e.onCommit(e.tmpl.Clone())
	}
}

// normalizeAngle maps any angle into [0, 360).
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
