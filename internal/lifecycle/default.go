package lifecycle

import "badgepress/internal/models"

// DefaultTemplate synthesizes the minimal badge layout handed to the
// editor when neither the remote store nor the cache has anything for an
// event: name, company, job title, and check-in QR code, vertically
// stacked on the square badge.
func DefaultTemplate(eventID string) models.Template {
	tmpl := models.NewTemplate(eventID, "Default Badge")

	name := models.NewGuestFieldElement(models.FieldName)
	name.X, name.Y, name.Width, name.Height = 20, 60, 360, 48
	name.FontWeight = "bold"

	company := models.NewGuestFieldElement(models.FieldCompany)
	company.X, company.Y, company.Width, company.Height = 20, 120, 360, 30

	jobTitle := models.NewGuestFieldElement(models.FieldJobTitle)
	jobTitle.X, jobTitle.Y, jobTitle.Width, jobTitle.Height = 20, 156, 360, 26

	qr := models.NewGuestFieldElement(models.FieldQRCode)
	qr.X, qr.Y, qr.Width, qr.Height = 140, 240, 120, 120

	elements := []models.Element{name, company, jobTitle, qr}
	for i := range elements {
		elements[i].ZIndex = i
	}
	tmpl.Elements = elements
	return tmpl
}
