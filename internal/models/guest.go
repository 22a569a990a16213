// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GuestRecord is the external attendee data a template is rendered
// against. The badge core consumes it read-only and tolerates missing
// optional fields (they render as empty strings).
type GuestRecord struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid,omitempty"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	JobTitle  string    `json:"jobtitle,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	GuestType GuestType `json:"guest_type,omitempty"`

	// ProfilePicture is an optional URL used by image elements carrying
	// the {profilePicture} placeholder.
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// FirstName returns the part of Name before the first space.
func (g GuestRecord) FirstName() string {
	first, _ := splitName(g.Name)
	return first
}

// LastName returns the part of Name after the first space, or "" when the
// name has no space.
func (g GuestRecord) LastName() string {
	_, last := splitName(g.Name)
	return last
}

func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if i := strings.IndexByte(full, ' '); i >= 0 {
		return full[:i], strings.TrimSpace(full[i+1:])
	}
	return full, ""
}

// GuestType normalizes the three shapes upstream systems send for an
// attendee's category: a plain string, an object with a name, or an
// object carrying only a numeric id. Display prefers name over id.
type GuestType struct {
	ID   int64
	Name string
}

// Display returns the human-readable guest type, preferring Name and
// falling back to the numeric id. Empty when neither is set.
func (gt GuestType) Display() string {
	if gt.Name != "" {
		return gt.Name
	}
	if gt.ID != 0 {
		return fmt.Sprintf("%d", gt.ID)
	}
	return ""
}

// UnmarshalJSON accepts "vip", {"name":"VIP"}, or {"id":3}.
func (gt *GuestType) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*gt = GuestType{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode guest type string: %w", err)
		}
		*gt = GuestType{Name: s}
		return nil
	}
	var obj struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode guest type object: %w", err)
	}
	*gt = GuestType{ID: obj.ID, Name: obj.Name}
	return nil
}

// MarshalJSON writes the normalized object shape.
func (gt GuestType) MarshalJSON() ([]byte, error) {
	if gt.ID == 0 && gt.Name == "" {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		ID   int64  `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	}{ID: gt.ID, Name: gt.Name})
}
