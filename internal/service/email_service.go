package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"mythworld/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailSender is the subset of the SES client used to deliver mail
type EmailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends progress reports to the parent via Amazon SES
type EmailService struct {
	client    EmailSender
	fromEmail string
	fromName  string
	toEmail   string
	enabled   bool
}

// NewEmailService creates an email service. With no sender address or no
// recipient the service is created disabled and every send is skipped.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, toEmail string) (*EmailService, error) {
	if fromEmail == "" || toEmail == "" {
		slog.Info("email service disabled: SES_FROM_EMAIL or PARENT_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	slog.Info("email service enabled", "from", fromEmail, "region", awsRegion)
	return NewEmailServiceWithClient(sesv2.NewFromConfig(cfg), fromEmail, fromName, toEmail), nil
}

// NewEmailServiceWithClient wires an already constructed sender
func NewEmailServiceWithClient(client EmailSender, fromEmail, fromName, toEmail string) *EmailService {
	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
		enabled:   true,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendProgressReport mails a summary of every child's progress to the parent
func (s *EmailService) SendProgressReport(ctx context.Context, rows []models.DashboardRow) error {
	if !s.enabled {
		slog.Info("skipping progress report (email service disabled)")
		return nil
	}

	subject := "My Mythology World - Progress Report"
	htmlBody, textBody := renderProgressReport(rows)
	return s.sendEmail(ctx, subject, htmlBody, textBody)
}

func renderProgressReport(rows []models.DashboardRow) (string, string) {
	var h, t strings.Builder

	h.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
<h1>Progress Report</h1>
<table cellpadding="6" style="border-collapse: collapse;">
<tr><th align="left">Child</th><th>Stories</th><th>Games</th><th>Minutes</th><th align="left">Strength</th><th align="left">Focus area</th></tr>
`)
	t.WriteString("Progress Report\n\n")

	for _, r := range rows {
		fmt.Fprintf(&h, "<tr><td>%s</td><td align=\"center\">%d</td><td align=\"center\">%d</td><td align=\"center\">%d</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(r.Name), r.StoriesCompleted, r.GamesPlayed, r.MinutesLearned,
			html.EscapeString(r.Strength), html.EscapeString(r.FocusArea))
		fmt.Fprintf(&t, "%s: Stories %d, Games %d, Minutes %d (Strength: %s, Focus area: %s)\n",
			r.Name, r.StoriesCompleted, r.GamesPlayed, r.MinutesLearned, r.Strength, r.FocusArea)
	}

	h.WriteString("</table>\n<p style=\"font-size: 12px; color: #666;\">This is an automated email. Please do not reply.</p>\n</body>\n</html>\n")
	t.WriteString("\n---\nThis is an automated email. Please do not reply.\n")
	return h.String(), t.String()
}

func (s *EmailService) sendEmail(ctx context.Context, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{s.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", s.toEmail, err)
	}

	messageID := ""
	if result != nil && result.MessageId != nil {
		messageID = *result.MessageId
	}
	slog.Info("email sent", "to", s.toEmail, "subject", subject, "message_id", messageID)
	return nil
}
