// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// This file handles (de)serialization of the template document blob.
// Historically two shapes were persisted: a bare element array (the legacy
// flat format) and a full document object with page settings. The decoder
// accepts both and normalizes them into the unified Template model.

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// document is the canonical persisted shape of a template's content.
type document struct {
	PageSize        PageSize  `json:"page_size,omitempty"`
	BackgroundColor string    `json:"background_color,omitempty"`
	BackgroundImage string    `json:"background_image,omitempty"`
	Customized      bool      `json:"customized,omitempty"`
	Elements        []Element `json:"elements"`
}

// EncodeDocument serializes the document part of a template (page settings
// and elements) for storage. Lifecycle metadata lives in its own columns.
func EncodeDocument(t Template) ([]byte, error) {
	doc := document{
		PageSize:        t.PageSize,
		BackgroundColor: t.BackgroundColor,
		BackgroundImage: t.BackgroundImage,
		Customized:      t.Customized,
		Elements:        t.Elements,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode template document: %w", err)
	}
	return data, nil
}

// DecodeDocument parses a stored template blob into the given template.
// It accepts either the document object shape or, for legacy rows, a raw
// JSON array of elements (in which case page settings keep their defaults).
func DecodeDocument(data []byte, t *Template) error {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		t.Elements = nil
		return nil
	}

	// Legacy flat format: the blob is the element array itself.
	if data[0] == '[' {
		var elements []Element
		if err := json.Unmarshal(data, &elements); err != nil {
			return fmt.Errorf("decode legacy element array: %w", err)
		}
		t.Elements = elements
		if t.PageSize == "" {
			t.PageSize = PageSquare100
		}
		if t.BackgroundColor == "" {
			t.BackgroundColor = "#ffffff"
		}
		t.Customized = false
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode template document: %w", err)
	}
	t.Elements = doc.Elements
	t.Customized = doc.Customized
	t.PageSize = doc.PageSize
	if t.PageSize == "" {
		t.PageSize = PageSquare100
	}
	t.BackgroundColor = doc.BackgroundColor
	if t.BackgroundColor == "" {
		t.BackgroundColor = "#ffffff"
	}
	t.BackgroundImage = doc.BackgroundImage
	return nil
}
