package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v3"

	"cagnotte-backend/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, username string) error
	SendGoalCompletedEmail(ctx context.Context, toEmail, username, goalName string) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/templates/email"
	return &service{
		client:       client,
		config:       cfg,
		templatePath: templatePath,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Cagnotte <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, username string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Bienvenue sur Cagnotte",
		Name:  username,
		Link:  fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Bienvenue sur Cagnotte !", "welcome.html", data)
}

func (s *service) SendGoalCompletedEmail(ctx context.Context, toEmail, username, goalName string) error {
	data := struct {
		Title    string
		Name     string
		GoalName string
		Link     string
	}{
		Title:    "Objectif atteint",
		Name:     username,
		GoalName: goalName,
		Link:     fmt.Sprintf("https://%s/goals", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Félicitations, objectif %q atteint !", goalName), "goal_completed.html", data)
}
