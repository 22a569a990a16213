// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package scene

import (
	"unicode/utf8"

	qrcode "github.com/skip2/go-qrcode"

	"badgepress/internal/binding"
	"badgepress/internal/models"
)

// Canvas geometry: the badge canvas is a fixed 400-unit square
// representing the 100 mm square badge at 4 units per mm. Output size is
// a property of the page format, never of the content.
const UnitsPerMM = 4.0

// Legacy auto-sizing minimums. Non-customized templates compute text
// sizes from content length; these are the floors the step functions
// clamp to.
const (
	MinNameFontSize     = 16
	MinCompanyFontSize  = 13
	MinJobTitleFontSize = 11
)

// Render maps (template, guest) to a paintable graph. It is pure and
// re-entrant: no hidden state, so the interactive preview, the bulk print
// path, and the PDF export call it freely and get identical output for
// identical input.
//
// A nil guest renders the invalid-data placeholder graph instead of a
// badge; issuing a badge with no identity would be meaningless.
func Render(t models.Template, guest *models.GuestRecord) *Graph {
	w, h := t.PageSize.Dimensions()
	g := &Graph{
		Width:           w * UnitsPerMM,
		Height:          h * UnitsPerMM,
		BackgroundColor: t.BackgroundColor,
		BackgroundImage: t.BackgroundImage,
	}

	if guest == nil {
		return invalidGraph(g)
	}

	for _, i := range t.PaintOrder() {
		el := t.Elements[i]
		if !el.Visible {
			continue
		}
		if node, ok := renderElement(t, el, *guest); ok {
			g.Nodes = append(g.Nodes, node)
		}
	}
	return g
}

// invalidGraph replaces the badge content with a single visible marker so
// a broken record at a check-in desk is obvious rather than a blank card.
func invalidGraph(g *Graph) *Graph {
	g.Nodes = []Node{{
		Kind:   NodeText,
		X:      0,
		Y:      g.Height/2 - 20,
		Width:  g.Width,
		Height: 40,
		Text: &TextAttrs{
			Content:    "Invalid attendee data",
			FontFamily: "Helvetica",
			FontSize:   20,
			FontWeight: "bold",
			Color:      "#b00020",
			TextAlign:  "center",
		},
	}}
	return g
}

func renderElement(t models.Template, el models.Element, guest models.GuestRecord) (Node, bool) {
	node := Node{
		SourceID: el.ID,
		X:        el.X,
		Y:        el.Y,
		Width:    el.Width,
		Height:   el.Height,
		Rotation: el.Rotation,
	}

	switch el.Type {
	case models.ElementText:
		node.Kind = NodeText
		node.Text = textAttrs(el, binding.Resolve(el.Content, guest))
		return node, true

	case models.ElementImage:
		node.Kind = NodeImage
		node.Image = &ImageAttrs{Src: binding.Resolve(el.Src, guest)}
		return node, true

	case models.ElementQR:
		payload := el.Payload
		if payload == "" {
			payload = binding.ConfirmationCode(guest.ID)
		}
		node.Kind = NodeBarcode
		node.Barcode = barcodeAttrs(payload)
		return node, true

	case models.ElementShape:
		node.Kind = NodeShape
		node.Shape = &ShapeAttrs{
			ShapeType:       string(el.ShapeType),
			BackgroundColor: el.BackgroundColor,
			BorderColor:     el.BorderColor,
			BorderWidth:     el.BorderWidth,
		}
		return node, true

	case models.ElementGuestField:
		if el.GuestField == models.FieldQRCode {
			node.Kind = NodeBarcode
			node.Barcode = barcodeAttrs(binding.ConfirmationCode(guest.ID))
			return node, true
		}
		content := binding.ResolveField(el.GuestField, guest)
		node.Kind = NodeText
		attrs := textAttrs(el, content)
		if !t.Customized {
			attrs.FontSize = autoFontSize(el.GuestField, content)
		}
		node.Text = attrs
		return node, true

	default:
		// Unknown variants are dropped from the paint plan; validation
		// reports them before persistence.
		return Node{}, false
	}
}

func textAttrs(el models.Element, content string) *TextAttrs {
	return &TextAttrs{
		Content:    content,
		FontFamily: el.FontFamily,
		FontSize:   el.FontSize,
		FontWeight: el.FontWeight,
		Color:      el.Color,
		TextAlign:  el.TextAlign,
	}
}

// barcodeAttrs encodes the payload into its QR module matrix. A payload
// that cannot be encoded still emits a node carrying the payload so the
// sink can fail loudly instead of printing a badge with a silent gap.
func barcodeAttrs(payload string) *BarcodeAttrs {
	attrs := &BarcodeAttrs{Payload: payload}
	if payload == "" {
		return attrs
	}
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return attrs
	}
	attrs.Modules = code.Bitmap()
	return attrs
}

// autoFontSize implements the legacy layout's dynamic text fitting:
// monotonic step functions from content length to font size, clamped to
// a per-field minimum, so long names never overflow the fixed canvas.
func autoFontSize(key models.GuestFieldKey, content string) float64 {
	n := utf8.RuneCountInString(content)
	switch key {
	case models.FieldName:
		switch {
		case n <= 12:
			return 34
		case n <= 18:
			return 28
		case n <= 26:
			return 22
		case n <= 34:
			return 18
		default:
			return MinNameFontSize
		}
	case models.FieldCompany:
		switch {
		case n <= 16:
			return 20
		case n <= 28:
			return 16
		default:
			return MinCompanyFontSize
		}
	case models.FieldJobTitle:
		switch {
		case n <= 20:
			return 16
		case n <= 32:
			return 13
		default:
			return MinJobTitleFontSize
		}
	default:
		// Other fields keep a fixed size in the legacy layout.
		return 14
	}
}
