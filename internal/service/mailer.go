package service

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	gomail "gopkg.in/gomail.v2"

	"github.com/albedo-hq/support-portal/internal/config"
)

// Mailer renders and sends portal notification email. Implementations
// must be safe for concurrent use.
type Mailer interface {
	SendAcknowledgment(to string, data AcknowledgmentData) error
	SendReply(to string, data ReplyData) error
}

// AcknowledgmentData fills the "support request received" templates.
type AcknowledgmentData struct {
	Name     string
	Subject  string
	Category string
	TrackURL string
}

// ReplyData fills the "support reply" templates.
type ReplyData struct {
	Name     string
	Subject  string
	Reply    string
	TrackURL string
}

const acknowledgmentHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Support Request Received</title>
</head>
<body style="font-family: sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Support Request Received</h1>
    <p>Hi {{.Name}},</p>
    <p>We've received your support request and our team will get back to you as soon as possible.</p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <p><strong>Category:</strong> {{.Category}}</p>
    <p>You can track the status of your request using the link below:</p>
    <p><a href="{{.TrackURL}}">Track Your Request</a></p>
    <p>Best regards,<br>The Albedo Support Team</p>
    <p style="color: #6b7280; font-size: 14px;">This is an automated message. Please do not reply directly to this email.</p>
  </div>
</body>
</html>
`

const acknowledgmentText = `Hi {{.Name}},

We've received your support request and our team will get back to you as soon as possible.

Subject: {{.Subject}}
Category: {{.Category}}

Track your request: {{.TrackURL}}

Best regards,
The Albedo Support Team
`

const replyHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Support Reply</title>
</head>
<body style="font-family: sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Support Reply</h1>
    <p>Hi {{.Name}},</p>
    <p>We've responded to your support request: <strong>{{.Subject}}</strong></p>
    <div style="background: #f8fafc; padding: 20px; border-left: 4px solid #3b82f6;">
      <p>{{.Reply}}</p>
    </div>
    <p>If you need further assistance, track your request using the link below:</p>
    <p><a href="{{.TrackURL}}">Track Your Request</a></p>
    <p>Best regards,<br>The Albedo Support Team</p>
    <p style="color: #6b7280; font-size: 14px;">This is an automated message. Please do not reply directly to this email.</p>
  </div>
</body>
</html>
`

const replyText = `Hi {{.Name}},

We've responded to your support request: {{.Subject}}

Reply:
{{.Reply}}

If you need further assistance, track your request: {{.TrackURL}}

Best regards,
The Albedo Support Team
`

// SMTPMailer sends email through an SMTP relay via gomail.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer

	ackHTML   *htmltemplate.Template
	ackText   *texttemplate.Template
	replyHTML *htmltemplate.Template
	replyText *texttemplate.Template
}

// NewSMTPMailer builds the mailer and parses its templates.
func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	m := &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}

	var err error
	if m.ackHTML, err = htmltemplate.New("ack").Parse(acknowledgmentHTML); err != nil {
		return nil, fmt.Errorf("parse acknowledgment html template: %w", err)
	}
	if m.ackText, err = texttemplate.New("ack").Parse(acknowledgmentText); err != nil {
		return nil, fmt.Errorf("parse acknowledgment text template: %w", err)
	}
	if m.replyHTML, err = htmltemplate.New("reply").Parse(replyHTML); err != nil {
		return nil, fmt.Errorf("parse reply html template: %w", err)
	}
	if m.replyText, err = texttemplate.New("reply").Parse(replyText); err != nil {
		return nil, fmt.Errorf("parse reply text template: %w", err)
	}
	return m, nil
}

// SendAcknowledgment confirms receipt of a new support request.
func (m *SMTPMailer) SendAcknowledgment(to string, data AcknowledgmentData) error {
	var html, text bytes.Buffer
	if err := m.ackHTML.Execute(&html, data); err != nil {
		return fmt.Errorf("render acknowledgment html: %w", err)
	}
	if err := m.ackText.Execute(&text, data); err != nil {
		return fmt.Errorf("render acknowledgment text: %w", err)
	}
	return m.send(to, "Support Request Received - Albedo", html.String(), text.String())
}

// SendReply notifies the submitter about a new public reply.
func (m *SMTPMailer) SendReply(to string, data ReplyData) error {
	var html, text bytes.Buffer
	if err := m.replyHTML.Execute(&html, data); err != nil {
		return fmt.Errorf("render reply html: %w", err)
	}
	if err := m.replyText.Execute(&text, data); err != nil {
		return fmt.Errorf("render reply text: %w", err)
	}
	subject := fmt.Sprintf("Re: %s - Albedo Support", data.Subject)
	return m.send(to, subject, html.String(), text.String())
}

func (m *SMTPMailer) send(to, subject, htmlBody, textBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
