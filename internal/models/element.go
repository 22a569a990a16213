// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the badge document model: templates, their
// elements, guest records, and validation. Everything here is a plain
// value with no behaviour beyond construction and copying, so documents
// can be cloned, snapshotted, and serialized freely.
package models

import "github.com/google/uuid"

// ElementType discriminates the element variants. The set is closed:
// the renderer drops anything it does not recognise and validation
// reports it before persistence.
type ElementType string

const (
	ElementText       ElementType = "text"
	ElementImage      ElementType = "image"
	ElementQR         ElementType = "qr"
	ElementShape      ElementType = "shape"
	ElementGuestField ElementType = "guestField"
)

// ShapeType names the primitive a shape element draws.
type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeCircle    ShapeType = "circle"
	ShapeLine      ShapeType = "line"
)

// GuestFieldKey names a guest attribute a guestField element binds to.
// The keys are part of the persisted document format.
type GuestFieldKey string

const (
	FieldName      GuestFieldKey = "name"
	FieldCompany   GuestFieldKey = "company"
	FieldJobTitle  GuestFieldKey = "jobTitle"
	FieldEmail     GuestFieldKey = "email"
	FieldPhone     GuestFieldKey = "phone"
	FieldGuestType GuestFieldKey = "guestType"
	FieldQRCode    GuestFieldKey = "qrCode"
)

// Element is one item on the badge canvas. It is a flat tagged union:
// Type selects the variant and the variant-specific fields are zero for
// the others. Flat beats an interface hierarchy here because elements
// round-trip through JSON documents, value-copy into undo snapshots, and
// diff cheaply in tests.
type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation float64     `json:"rotation"` // degrees, [0, 360)
	ZIndex   int         `json:"zIndex"`
	Visible  bool        `json:"visible"`

	// text and guestField
	Content    string  `json:"content,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty"`
	Color      string  `json:"color,omitempty"`
	TextAlign  string  `json:"textAlign,omitempty"`

	// image
	Src string `json:"src,omitempty"`

	// qr: explicit payload overrides the derived confirmation code
	Payload string `json:"payload,omitempty"`

	// shape
	ShapeType       ShapeType `json:"shapeType,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BorderWidth     float64   `json:"borderWidth,omitempty"`

	// guestField
	GuestField GuestFieldKey `json:"guestField,omitempty"`
}

// baseElement seeds the fields every variant shares. New elements land
// at a fixed offset from the canvas origin so they are immediately
// visible and grabbable.
func baseElement(t ElementType) Element {
	return Element{
		ID:      uuid.NewString(),
		Type:    t,
		X:       40,
		Y:       40,
		Width:   100,
		Height:  100,
		Visible: true,
	}
}

// NewTextElement returns a static text element with readable defaults.
func NewTextElement() Element {
	el := baseElement(ElementText)
	el.Width, el.Height = 200, 32
	el.Content = "New text"
	el.FontFamily = "Helvetica"
	el.FontSize = 16
	el.FontWeight = "normal"
	el.Color = "#000000"
	el.TextAlign = "left"
	return el
}

// NewImageElement returns an image element with no source yet.
func NewImageElement() Element {
	return baseElement(ElementImage)
}

// NewQRElement returns a QR element. With no explicit payload the
// renderer derives the guest's confirmation code.
func NewQRElement() Element {
	el := baseElement(ElementQR)
	el.Width, el.Height = 120, 120
	return el
}

// NewShapeElement returns a rectangle shape element.
func NewShapeElement() Element {
	el := baseElement(ElementShape)
	el.Width, el.Height = 150, 80
	el.ShapeType = ShapeRectangle
	el.BackgroundColor = "#e0e0e0"
	el.BorderColor = "#000000"
	el.BorderWidth = 1
	return el
}

// NewGuestFieldElement returns an element bound to the given guest
// attribute, styled like a text element.
func NewGuestFieldElement(key GuestFieldKey) Element {
	el := baseElement(ElementGuestField)
	el.Width, el.Height = 200, 40
	el.GuestField = key
	el.FontFamily = "Helvetica"
	el.FontSize = 16
	el.FontWeight = "normal"
	el.Color = "#000000"
	el.TextAlign = "left"
	return el
}

// NewElement dispatches to the variant constructor for the given type.
func NewElement(t ElementType) Element {
	switch t {
	case ElementText:
		return NewTextElement()
	case ElementImage:
		return NewImageElement()
	case ElementQR:
		return NewQRElement()
	case ElementShape:
		return NewShapeElement()
	case ElementGuestField:
		return NewGuestFieldElement(FieldName)
	default:
		return baseElement(t)
	}
}

// IsTextual reports whether the element renders as text. A guestField
// bound to qrCode renders as a barcode, not text.
func (e Element) IsTextual() bool {
	switch e.Type {
	case ElementText:
		return true
	case ElementGuestField:
		return e.GuestField != FieldQRCode
	default:
		return false
	}
}
