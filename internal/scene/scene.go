// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scene builds the paintable output of a badge render: a flat,
// fully-resolved node list an external paint/print/PDF sink can draw
// without knowing anything about templates or guests.
package scene

// NodeKind discriminates the paintable node variants.
type NodeKind string

const (
	NodeText    NodeKind = "text"
	NodeImage   NodeKind = "image"
	NodeBarcode NodeKind = "barcode"
	NodeShape   NodeKind = "shape"
)

// Graph is the complete paint plan for one badge. Nodes are listed in
// paint order: the sink draws them front to back exactly as given.
type Graph struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	BackgroundColor string  `json:"background_color"`
	BackgroundImage string  `json:"background_image,omitempty"`
	Nodes           []Node  `json:"nodes"`
}

// Node is one positioned paint instruction. Kind selects which attribute
// block is set; geometry is absolute in canvas units.
type Node struct {
	Kind     NodeKind `json:"kind"`
	SourceID string   `json:"source_id"` // id of the element this node came from
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Rotation float64  `json:"rotation"`

	Text    *TextAttrs    `json:"text,omitempty"`
	Image   *ImageAttrs   `json:"image,omitempty"`
	Barcode *BarcodeAttrs `json:"barcode,omitempty"`
	Shape   *ShapeAttrs   `json:"shape,omitempty"`
}

// TextAttrs carries resolved text content and its final style. FontSize
// is the size the sink must use; any dynamic fitting has already been
// applied by the renderer.
type TextAttrs struct {
	Content    string  `json:"content"`
	FontFamily string  `json:"font_family"`
	FontSize   float64 `json:"font_size"`
	FontWeight string  `json:"font_weight"`
	Color      string  `json:"color"`
	TextAlign  string  `json:"text_align"`
}

// ImageAttrs carries the resolved image source.
type ImageAttrs struct {
	Src string `json:"src"`
}

// BarcodeAttrs carries the resolved QR payload and its pre-encoded module
// matrix (true = dark module, quiet zone included), so the sink needs no
// barcode library of its own.
type BarcodeAttrs struct {
	Payload string   `json:"payload"`
	Modules [][]bool `json:"modules,omitempty"`
}

// ShapeAttrs carries shape geometry style.
type ShapeAttrs struct {
	ShapeType       string  `json:"shape_type"`
	BackgroundColor string  `json:"background_color,omitempty"`
	BorderColor     string  `json:"border_color,omitempty"`
	BorderWidth     float64 `json:"border_width,omitempty"`
}
