package sendgrid

import (
	"errors"
	"strings"
)

type EmailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SendEmailRequest is one message. From falls back to the configured sender.
// At least one of Text and HTML must be set.
type SendEmailRequest struct {
	From       EmailAddress
	ReplyTo    *EmailAddress
	To         []EmailAddress
	Subject    string
	Text       string
	HTML       string
	Categories []string
}

type SendEmailResult struct {
	StatusCode int
	MessageID  string
}

// v3 /mail/send body.
type mailSendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             EmailAddress      `json:"from"`
	ReplyTo          *EmailAddress     `json:"reply_to,omitempty"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
	Categories       []string          `json:"categories,omitempty"`
	MailSettings     *mailSettings     `json:"mail_settings,omitempty"`
}

type personalization struct {
	To []EmailAddress `json:"to"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type mailSettings struct {
	SandboxMode toggle `json:"sandbox_mode"`
}

type toggle struct {
	Enable bool `json:"enable"`
}

var (
	errNoSender  = errors.New("sendgrid: sender required (set SENDGRID_FROM_EMAIL)")
	errNoTo      = errors.New("sendgrid: at least one recipient required")
	errNoSubject = errors.New("sendgrid: subject required")
	errNoBody    = errors.New("sendgrid: text or html body required")
)

// buildPayload validates req and converts it to the wire body. Plain text is
// listed before HTML as the API requires.
func buildPayload(req SendEmailRequest, defaultFrom EmailAddress, sandbox bool) (mailSendRequest, error) {
	from := req.From
	if strings.TrimSpace(from.Email) == "" {
		from = defaultFrom
	}
	from.Email = strings.TrimSpace(from.Email)
	if from.Email == "" {
		return mailSendRequest{}, errNoSender
	}

	to := make([]EmailAddress, 0, len(req.To))
	for _, a := range req.To {
		if a.Email = strings.TrimSpace(a.Email); a.Email != "" {
			to = append(to, a)
		}
	}
	if len(to) == 0 {
		return mailSendRequest{}, errNoTo
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return mailSendRequest{}, errNoSubject
	}

	var content []mailContent
	if s := strings.TrimSpace(req.Text); s != "" {
		content = append(content, mailContent{Type: "text/plain", Value: s})
	}
	if s := strings.TrimSpace(req.HTML); s != "" {
		content = append(content, mailContent{Type: "text/html", Value: s})
	}
	if len(content) == 0 {
		return mailSendRequest{}, errNoBody
	}

	out := mailSendRequest{
		Personalizations: []personalization{{To: to}},
		From:             from,
		ReplyTo:          req.ReplyTo,
		Subject:          subject,
		Content:          content,
		Categories:       req.Categories,
	}
	if sandbox {
		out.MailSettings = &mailSettings{SandboxMode: toggle{Enable: true}}
	}
	return out, nil
}
