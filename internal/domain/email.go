package domain

import "context"

// Mailer sends a single email. Implementations: SES, noop.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// EmailTemplateRenderer renders a named email template to subject, HTML, and
// text bodies.
type EmailTemplateRenderer interface {
	Render(name string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeCredentialsEmailData is the payload for the email sent to a newly
// created backoffice user with their temporary password.
type WelcomeCredentialsEmailData struct {
	Name              string
	Email             string
	TemporaryPassword string
	LoginURL          string
}

// EmailService sends application emails.
type EmailService interface {
	SendWelcomeCredentials(ctx context.Context, data WelcomeCredentialsEmailData) error
}
