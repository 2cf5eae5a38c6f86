package notifier

import (
	"fmt"

	"github.com/zeon-projects/beach-cleanup-api/internal/models"
	"github.com/zeon-projects/beach-cleanup-api/pkg/config"
)

// Email is a composed confirmation message ready for dispatch.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Compose renders the confirmation email for a persisted registration.
// Optional academic fields render as "N/A" when absent.
func Compose(reg models.Registration, event config.EventConfig) Email {
	subject := fmt.Sprintf("Registration Confirmation - %s", event.Name)

	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #059669;">Thank you for registering!</h2>
  <p>Dear %s,</p>
  <p>Your registration for %s has been successfully received.</p>
  <h3 style="color: #059669; margin-top: 20px;">Event Details</h3>
  <ul>
    <li><strong>Date:</strong> %s</li>
    <li><strong>Location:</strong> %s</li>
    <li><strong>Time:</strong> %s</li>
  </ul>
  <h3 style="color: #059669; margin-top: 20px;">Your Registration Details</h3>
  <ul>
    <li><strong>Name:</strong> %s</li>
    <li><strong>Roll No:</strong> %s</li>
    <li><strong>Year:</strong> %s</li>
    <li><strong>Branch:</strong> %s</li>
  </ul>
  <p style="margin-top: 20px;">
    Join our <a href="%s" target="_blank" style="color: #059669;">WhatsApp community</a> for updates.
  </p>
  <p>Please bring your college ID card on the event day.</p>
  <p>If you have any questions, just reply to this email.</p>
  <p style="margin-top: 30px;">Best regards,<br>%s Organizing Team</p>
</div>`,
		reg.Name,
		event.Name,
		event.Date,
		event.Location,
		event.TimeWindow,
		reg.Name,
		orNA(reg.RollNo),
		orNA(reg.Year),
		orNA(reg.Branch),
		event.WhatsAppLink,
		event.Name,
	)

	return Email{To: reg.Email, Subject: subject, Body: body}
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
