package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"dar_almal_go/config"

	"github.com/microcosm-cc/bluemonday"
	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
}

// sanitizer strips any markup from visitor-supplied text before it is
// interpolated into a mail body
var sanitizer = bluemonday.StrictPolicy()

// ContactMessage is a submission from the public contact form
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// AgentApplication is a submission from the agency application form
type AgentApplication struct {
	Company string `json:"company"`
	Manager string `json:"manager"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

var contactTemplate = template.Must(template.New("contact").Parse(`
<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #c4a94e; border-bottom: 2px solid #c4a94e; padding-bottom: 10px;">رسالة جديدة من موقع دار المال</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr>
      <td style="padding: 10px; font-weight: bold; color: #555; width: 30%;">الاسم:</td>
      <td style="padding: 10px; color: #333;">{{.Name}}</td>
    </tr>
    <tr style="background: #f9f9f9;">
      <td style="padding: 10px; font-weight: bold; color: #555;">البريد الإلكتروني:</td>
      <td style="padding: 10px; color: #333;">{{.Email}}</td>
    </tr>
    <tr>
      <td style="padding: 10px; font-weight: bold; color: #555; vertical-align: top;">الرسالة:</td>
      <td style="padding: 10px; color: #333; white-space: pre-wrap;">{{.Message}}</td>
    </tr>
  </table>
</div>`))

var agentTemplate = template.Must(template.New("agent").Parse(`
<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #c4a94e; border-bottom: 2px solid #c4a94e; padding-bottom: 10px;">طلب وكالة جديدة - دار المال</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr>
      <td style="padding: 10px; font-weight: bold; color: #555; width: 35%;">اسم الشركة / المؤسسة:</td>
      <td style="padding: 10px; color: #333;">{{.Company}}</td>
    </tr>
    <tr style="background: #f9f9f9;">
      <td style="padding: 10px; font-weight: bold; color: #555;">اسم المسؤول:</td>
      <td style="padding: 10px; color: #333;">{{.Manager}}</td>
    </tr>
    <tr>
      <td style="padding: 10px; font-weight: bold; color: #555;">البريد الإلكتروني:</td>
      <td style="padding: 10px; color: #333;">{{.Email}}</td>
    </tr>
    <tr style="background: #f9f9f9;">
      <td style="padding: 10px; font-weight: bold; color: #555;">رقم الهاتف:</td>
      <td style="padding: 10px; color: #333;">{{.Phone}}</td>
    </tr>
    <tr>
      <td style="padding: 10px; font-weight: bold; color: #555;">العنوان:</td>
      <td style="padding: 10px; color: #333;">{{.Address}}</td>
    </tr>
    <tr style="background: #f9f9f9;">
      <td style="padding: 10px; font-weight: bold; color: #555; vertical-align: top;">ملاحظات:</td>
      <td style="padding: 10px; color: #333; white-space: pre-wrap;">{{.Notes}}</td>
    </tr>
  </table>
</div>`))

// BuildContactEmail validates a contact-form submission and renders the
// notification message
func BuildContactEmail(cfg *config.Config, msg ContactMessage) (*Email, error) {
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return nil, NewValidationError("form", "name, email and message are required")
	}

	data := ContactMessage{
		Name:    sanitizer.Sanitize(msg.Name),
		Email:   sanitizer.Sanitize(msg.Email),
		Message: sanitizer.Sanitize(msg.Message),
	}

	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render contact email: %w", err)
	}

	return &Email{
		To:       []string{cfg.ContactEmail},
		ReplyTo:  data.Email,
		Subject:  "رسالة جديدة من الموقع - " + data.Name,
		HTMLBody: buf.String(),
	}, nil
}

// BuildAgentApplicationEmail validates an agency application and renders the
// notification message
func BuildAgentApplicationEmail(cfg *config.Config, app AgentApplication) (*Email, error) {
	if app.Company == "" || app.Manager == "" || app.Phone == "" {
		return nil, NewValidationError("form", "company, manager and phone are required")
	}

	data := AgentApplication{
		Company: sanitizer.Sanitize(app.Company),
		Manager: sanitizer.Sanitize(app.Manager),
		Email:   sanitizer.Sanitize(app.Email),
		Phone:   sanitizer.Sanitize(app.Phone),
		Address: sanitizer.Sanitize(app.Address),
		Notes:   sanitizer.Sanitize(app.Notes),
	}
	if data.Email == "" {
		data.Email = "لم يُذكر"
	}

	var buf bytes.Buffer
	if err := agentTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render agent application email: %w", err)
	}

	email := &Email{
		To:       []string{cfg.ContactEmail},
		Subject:  "طلب وكالة جديدة - " + data.Company,
		HTMLBody: buf.String(),
	}
	if app.Email != "" {
		email.ReplyTo = data.Email
	}
	return email, nil
}

// SendEmail sends an email via Resend
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		log.Printf("[EMAIL TEST MODE] To: %v | Subject: %s", email.To, email.Subject)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
	}
	if email.ReplyTo != "" {
		params.ReplyTo = email.ReplyTo
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email sent successfully (id: %s)", sent.Id)
	return nil
}

// SendEmailAsync sends an email in a goroutine so form submissions never
// block on the mail provider
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		ReplyTo:  email.ReplyTo,
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
	}

	go func() {
		if err := SendEmail(cfg, emailCopy); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}()
}
