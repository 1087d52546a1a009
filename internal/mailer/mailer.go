package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/sirupsen/logrus"
)

type MailerConfig struct {
	Domain      string
	APIKey      string
	SenderName  string
	SenderEmail string
	TeamName    string
	TeamEmail   string
	BaseURL     string
}

type Mailer struct {
	mg          *mailgun.MailgunImpl
	senderName  string
	senderEmail string
	teamName    string
	teamEmail   string
	baseURL     string
}

func NewMailer(mailerConfig MailerConfig) *Mailer {
	mg := mailgun.NewMailgun(mailerConfig.Domain, mailerConfig.APIKey)

	return &Mailer{
		mg:          mg,
		senderName:  mailerConfig.SenderName,
		senderEmail: mailerConfig.SenderEmail,
		teamName:    mailerConfig.TeamName,
		teamEmail:   mailerConfig.TeamEmail,
		baseURL:     mailerConfig.BaseURL,
	}
}

// BookingEmail carries the fields shared by the guardian confirmation and the
// operator notification for one paid booking.
type BookingEmail struct {
	StudentName     string
	StudentAge      int32
	ParentEmail     string
	CampName        string
	TotalAmount     string
	PaymentIntentID string
}

func (m *Mailer) buildSender() string {
	return fmt.Sprintf("%s <%s>", m.senderName, m.senderEmail)
}

func (m *Mailer) send(message *mailgun.Message, recipient string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	response, id, sendError := m.mg.Send(ctx, message)

	if sendError != nil {
		logrus.WithFields(logrus.Fields{
			"recipient": recipient,
			"id":        id,
			"response":  response,
		}).Errorf("mailgun send failed: %s", sendError)

		return fmt.Errorf("sending email to %s: %w", recipient, sendError)
	}

	return nil
}

func (m *Mailer) SendBookingConfirmation(booking BookingEmail) error {
	text := fmt.Sprintf(`Hi,

Thank you for booking a SKILLWRAP camp. Your payment has been received and %s's spot in %s is confirmed.

Student: %s
Camp: %s
Amount paid: $%s

You can review your bookings any time at %s/dashboard.

- The SKILLWRAP Team
Waco, Texas`, booking.StudentName, booking.CampName, booking.StudentName, booking.CampName, booking.TotalAmount, m.baseURL)

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #667eea;">SKILLWRAP</h1>
  <h2>Booking Confirmed</h2>
  <p>Thank you for booking a SKILLWRAP camp. Your payment has been received and <strong>%s</strong>'s spot in <strong>%s</strong> is confirmed.</p>
  <ul>
    <li><strong>Student:</strong> %s</li>
    <li><strong>Camp:</strong> %s</li>
    <li><strong>Amount paid:</strong> $%s</li>
  </ul>
  <p><a href="%s/dashboard">View your bookings</a></p>
  <p style="color: #666;">SKILLWRAP - Empowering the next generation of tech innovators<br>Waco, Texas</p>
</div>`, booking.StudentName, booking.CampName, booking.StudentName, booking.CampName, booking.TotalAmount, m.baseURL)

	message := mailgun.NewMessage(
		m.buildSender(),
		fmt.Sprintf("SKILLWRAP - Booking confirmed for %s", booking.StudentName),
		text,
		booking.ParentEmail,
	)
	message.SetHtml(html)

	return m.send(message, booking.ParentEmail)
}

func (m *Mailer) SendBookingNotification(booking BookingEmail) error {
	text := fmt.Sprintf(`New camp booking received.

Student: %s (age %d)
Camp: %s
Guardian email: %s
Amount: $%s
Payment intent: %s`, booking.StudentName, booking.StudentAge, booking.CampName, booking.ParentEmail, booking.TotalAmount, booking.PaymentIntentID)

	message := mailgun.NewMessage(
		m.buildSender(),
		fmt.Sprintf("New booking: %s - %s", booking.CampName, booking.StudentName),
		text,
		fmt.Sprintf("%s <%s>", m.teamName, m.teamEmail),
	)

	return m.send(message, m.teamEmail)
}

func (m *Mailer) SendWaiverConfirmation(formLabel string, parentName string, parentEmail string, studentName string) error {
	text := fmt.Sprintf(`Dear %s,

Thank you for submitting the %s for %s. We have successfully received and processed your form, and it is now on file for your child's participation in SKILLWRAP programs.

If you have any questions or need to make changes, reply to this email.

- The SKILLWRAP Team
Waco, Texas`, parentName, formLabel, studentName)

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #667eea;">SKILLWRAP</h1>
  <h2>%s Confirmation</h2>
  <p>Dear %s,</p>
  <p>Thank you for submitting the %s for <strong>%s</strong>. We have successfully received and processed your form, and it is now on file for your child's participation in SKILLWRAP programs.</p>
  <p><a href="%s/camps">View Summer Camps</a></p>
  <p style="color: #666;">SKILLWRAP - Empowering the next generation of tech innovators<br>Waco, Texas</p>
</div>`, formLabel, parentName, formLabel, studentName, m.baseURL)

	message := mailgun.NewMessage(
		m.buildSender(),
		fmt.Sprintf("SKILLWRAP - %s Confirmation for %s", formLabel, studentName),
		text,
		parentEmail,
	)
	message.SetHtml(html)

	return m.send(message, parentEmail)
}

func (m *Mailer) SendCancellationConfirmation(parentEmail string, studentName string, campName string, refundMessage string) error {
	text := fmt.Sprintf(`Hi,

Your booking for %s in %s has been cancelled. %s

- The SKILLWRAP Team
Waco, Texas`, studentName, campName, refundMessage)

	message := mailgun.NewMessage(
		m.buildSender(),
		fmt.Sprintf("SKILLWRAP - Booking cancelled for %s", studentName),
		text,
		parentEmail,
	)

	return m.send(message, parentEmail)
}

func (m *Mailer) SendContactMessage(name string, email string, organization string, body string) error {
	organizationLine := ""

	if organization != "" {
		organizationLine = fmt.Sprintf("Organization: %s\n", organization)
	}

	text := fmt.Sprintf(`New contact form message.

From: %s <%s>
%s
%s`, name, email, organizationLine, body)

	message := mailgun.NewMessage(
		m.buildSender(),
		fmt.Sprintf("Contact form: %s", name),
		text,
		fmt.Sprintf("%s <%s>", m.teamName, m.teamEmail),
	)

	return m.send(message, m.teamEmail)
}
