package services

import (
	"context"
	"fmt"

	"topicmatcher/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

func (s *emailService) SendWelcomeCredentials(ctx context.Context, data domain.WelcomeCredentialsEmailData) error {
	subject, htmlBody, textBody, err := s.renderer.Render("welcome_credentials", data)
	if err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}
	return s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody)
}
