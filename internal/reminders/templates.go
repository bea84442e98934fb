package reminders

import (
	"fmt"

	"carecircle/internal/models"
)

const timeFormat = "Mon Jan 2, 3:04 PM"

// appointmentMessage renders the day-before appointment reminder.
func appointmentMessage(appt models.Appointment) Message {
	subject := fmt.Sprintf("Reminder: %s is tomorrow", appt.Title)

	location := appt.Location
	if location == "" {
		location = "the usual location"
	}

	html := fmt.Sprintf(
		"<p>Hello,</p><p><strong>%s</strong> for %s is tomorrow, %s at %s.</p><p>Please make any travel arrangements in advance.</p>",
		appt.Title, appt.Subject.FullName(), appt.StartTime.Format(timeFormat), location)

	sms := fmt.Sprintf("CareCircle: %s for %s tomorrow at %s.",
		appt.Title, appt.Subject.FirstName, appt.StartTime.Format("3:04 PM"))

	return Message{
		Class:   ClassAppointment,
		Subject: subject,
		HTML:    html,
		SMSBody: sms,
	}
}

// refillMessage renders the low-refill medication reminder.
func refillMessage(med models.Medication) Message {
	subject := fmt.Sprintf("Refill needed: %s", med.Name)

	refills := "no refills"
	if med.RefillsRemaining == 1 {
		refills = "1 refill"
	}

	html := fmt.Sprintf(
		"<p>Hello,</p><p><strong>%s</strong> (%s) for %s has %s remaining.</p><p>Contact the pharmacy to arrange the next refill.</p>",
		med.Name, med.Dosage, med.Subject.FullName(), refills)

	sms := fmt.Sprintf("CareCircle: %s for %s has %s remaining. Time to call the pharmacy.",
		med.Name, med.Subject.FirstName, refills)

	return Message{
		Class:   ClassRefill,
		Subject: subject,
		HTML:    html,
		SMSBody: sms,
	}
}

// trialMessage renders one of the three trial milestone emails.
func trialMessage(candidate TrialCandidate) Message {
	name := candidate.Profile.FullName

	switch candidate.Label {
	case models.TrialReminderExpired:
		return Message{
			Class:   ClassTrialExpired,
			Subject: "Your CareCircle trial has ended",
			HTML: fmt.Sprintf(
				"<p>Hello %s,</p><p>Your free trial has ended. Upgrade now to keep your care team, reminders and documents.</p>",
				name),
			SMSBody: "CareCircle: your free trial has ended. Upgrade to keep your reminders running.",
		}
	case models.TrialReminder1Day:
		return Message{
			Class:   ClassTrial1Day,
			Subject: "Your CareCircle trial ends tomorrow",
			HTML: fmt.Sprintf(
				"<p>Hello %s,</p><p>Your free trial ends tomorrow. Upgrade today so your care reminders keep going out.</p>",
				name),
			SMSBody: "CareCircle: your free trial ends tomorrow.",
		}
	default:
		return Message{
			Class:   ClassTrial3Day,
			Subject: "Your CareCircle trial ends in 3 days",
			HTML: fmt.Sprintf(
				"<p>Hello %s,</p><p>Your free trial ends in %d days. Upgrade any time to keep everything in place.</p>",
				name, candidate.DaysLeft),
			SMSBody: "CareCircle: your free trial ends in a few days.",
		}
	}
}
