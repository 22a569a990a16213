package models

import (
	"fmt"
	"strings"
)

// Violation describes one validation failure found in a template.
// Violations are plain values, never panics: the editor tolerates invalid
// intermediate states (a width dragged through zero, say) and templates
// are only checked at save and publish time.
type Violation struct {
	ElementID string `json:"element_id,omitempty"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}

func (v Violation) String() string {
	if v.ElementID != "" {
		return fmt.Sprintf("element %s: %s: %s", v.ElementID, v.Field, v.Message)
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// validElementTypes is the closed variant set accepted by the renderer.
var validElementTypes = map[ElementType]bool{
	ElementText:       true,
	ElementImage:      true,
	ElementQR:         true,
	ElementShape:      true,
	ElementGuestField: true,
}

var validGuestFields = map[GuestFieldKey]bool{
	FieldName: true, FieldCompany: true, FieldJobTitle: true,
	FieldEmail: true, FieldPhone: true, FieldGuestType: true,
	FieldQRCode: true,
}

// Validate checks a template for persistence, returning every violation
// found. An empty slice means the template is safe to save and publish.
func Validate(t Template) []Violation {
	var violations []Violation

	if strings.TrimSpace(t.Name) == "" {
		violations = append(violations, Violation{Field: "name", Message: "template name is required"})
	}
	if t.EventID == "" {
		violations = append(violations, Violation{Field: "event_id", Message: "event id is required"})
	}

	seen := make(map[string]bool, len(t.Elements))
	for _, el := range t.Elements {
		if el.ID == "" {
			violations = append(violations, Violation{Field: "id", Message: "element id is required"})
		} else if seen[el.ID] {
			violations = append(violations, Violation{ElementID: el.ID, Field: "id", Message: "duplicate element id"})
		}
		seen[el.ID] = true

		if !validElementTypes[el.Type] {
			violations = append(violations, Violation{ElementID: el.ID, Field: "type",
				Message: fmt.Sprintf("unknown element type %q", el.Type)})
			continue
		}
		if el.Width < 0 || el.Height < 0 {
			violations = append(violations, Violation{ElementID: el.ID, Field: "size",
				Message: "width and height must not be negative"})
		}
		if el.Rotation < 0 || el.Rotation >= 360 {
			violations = append(violations, Violation{ElementID: el.ID, Field: "rotation",
				Message: "rotation must be in [0, 360)"})
		}

		switch el.Type {
		case ElementGuestField:
			if !validGuestFields[el.GuestField] {
				violations = append(violations, Violation{ElementID: el.ID, Field: "guestField",
					Message: fmt.Sprintf("unknown guest field %q", el.GuestField)})
			}
		case ElementShape:
			switch el.ShapeType {
			case ShapeRectangle, ShapeCircle, ShapeLine:
			default:
				violations = append(violations, Violation{ElementID: el.ID, Field: "shapeType",
					Message: fmt.Sprintf("unknown shape type %q", el.ShapeType)})
			}
		}
	}

	return violations
}
