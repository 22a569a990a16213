// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package binding resolves placeholder tokens and guest-field references
// against a concrete guest record. Resolution is pure and deterministic:
// no I/O, no randomness, so the editor preview and the bulk export path
// produce identical output for the same guest.
package binding

import (
	"fmt"
	"strings"

	"badgepress/internal/models"
)

// ConfirmationPrefix is the fixed prefix of the QR payload. Together with
// the zero-padded guest id it forms the wire contract with the check-in
// scanner and must not change independently of that consumer.
const ConfirmationPrefix = "REG-"

// ConfirmationCode derives the confirmation code scanned at check-in from
// the guest's numeric id: the fixed prefix plus the id zero-padded to
// eight digits. The same guest always yields the same code.
func ConfirmationCode(guestID int64) string {
	return fmt.Sprintf("%s%08d", ConfirmationPrefix, guestID)
}

// Resolve replaces every placeholder token in content with the matching
// guest attribute. Unknown tokens are left untouched; missing attributes
// resolve to the empty string.
func Resolve(content string, guest models.GuestRecord) string {
	if !strings.ContainsRune(content, '{') {
		return content
	}
	replacer := strings.NewReplacer(
		"{fullName}", guest.Name,
		"{firstName}", guest.FirstName(),
		"{lastName}", guest.LastName(),
		"{company}", guest.Company,
		"{jobTitle}", guest.JobTitle,
		"{email}", guest.Email,
		"{phone}", guest.Phone,
		"{guestType}", guest.GuestType.Display(),
		"{uuid}", guest.UUID,
		"{profilePicture}", guest.ProfilePicture,
	)
	return replacer.Replace(content)
}

// ResolveField looks up a guest attribute by field key. Unlike Resolve
// this is structural: the key names the attribute directly instead of
// appearing as a token inside text. The qrCode key synthesizes the
// guest's confirmation code.
func ResolveField(key models.GuestFieldKey, guest models.GuestRecord) string {
	switch key {
	case models.FieldName:
		return guest.Name
	case models.FieldCompany:
		return guest.Company
	case models.FieldJobTitle:
		return guest.JobTitle
	case models.FieldEmail:
		return guest.Email
	case models.FieldPhone:
		return guest.Phone
	case models.FieldGuestType:
		return guest.GuestType.Display()
	case models.FieldQRCode:
		return ConfirmationCode(guest.ID)
	default:
		return ""
	}
}
