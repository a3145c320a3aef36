package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
	"github.com/careerpath/careerpath-backend/internal/platform/sendgrid"
)

const (
	ContactMessageMin = 10
	ContactMessageMax = 500
)

type ContactInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CountryCode string `json:"countryCode"`
	Message     string `json:"message"`
}

type ContactService interface {
	Send(ctx context.Context, in ContactInput) error
}

type contactService struct {
	log       *logger.Logger
	mailer    sendgrid.Client
	recipient string
}

func NewContactService(log *logger.Logger, mailer sendgrid.Client, recipient string) ContactService {
	return &contactService{
		log:       log.With("service", "ContactService"),
		mailer:    mailer,
		recipient: strings.TrimSpace(recipient),
	}
}

func (s *contactService) Send(ctx context.Context, in ContactInput) error {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	msg := strings.TrimSpace(in.Message)
	if name == "" || email == "" || msg == "" {
		return apierr.Validationf("Missing required fields")
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if n := utf8.RuneCountInString(msg); n < ContactMessageMin || n > ContactMessageMax {
		return apierr.Validationf("message must be between %d and %d characters", ContactMessageMin, ContactMessageMax)
	}
	if s.mailer == nil || s.recipient == "" {
		return apierr.Internal(fmt.Errorf("contact email is not configured"))
	}

	phone := strings.TrimSpace(strings.TrimSpace(in.CountryCode) + " " + strings.TrimSpace(in.Phone))
	_, err := s.mailer.Send(ctx, sendgrid.SendEmailRequest{
		ReplyTo: &sendgrid.EmailAddress{Email: email, Name: name},
		To:      []sendgrid.EmailAddress{{Email: s.recipient}},
		Subject: "New Contact Request from " + name,
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s", name, email, phone, msg),
		HTML: fmt.Sprintf(
			"<h2>New Message</h2><p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Phone:</strong> %s</p><p><strong>Message:</strong></p><p>%s</p>",
			html.EscapeString(name), html.EscapeString(email), html.EscapeString(phone), html.EscapeString(msg),
		),
		Categories: []string{"contact"},
	})
	if err != nil {
		s.log.Error("contact email failed", "error", err)
		return apierr.DeliveryFailed(fmt.Errorf("send contact email: %w", err))
	}
	return nil
}
