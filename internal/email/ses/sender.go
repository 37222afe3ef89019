// Package ses delivers payment receipts through Amazon SES.
package ses

import (
	"context"
	"fmt"
	"html"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"khata/internal/config"
	"khata/internal/port"
	"khata/internal/timeutil"
)

// Sender is the SES backed port.EmailSender.
type Sender struct {
	client *sesv2.Client
	from   string
}

// New loads the default AWS credential chain for cfg.Region.
func New(ctx context.Context, cfg *config.EmailConfig) (*Sender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &Sender{
		client: sesv2.NewFromConfig(awsCfg),
		from:   fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
	}, nil
}

func (s *Sender) SendPaymentReceipt(ctx context.Context, r port.PaymentReceipt) error {
	subject := fmt.Sprintf("Payment received for %s", r.DocumentNumber)
	text, htmlBody := renderReceipt(r)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{r.ToEmail}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(text)},
					Html: &types.Content{Data: aws.String(htmlBody)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func renderReceipt(r port.PaymentReceipt) (text, htmlBody string) {
	date := timeutil.FormatDate(r.PaymentDate)
	amount := r.Amount.StringFixed(2)
	balance := r.BalanceDue.StringFixed(2)

	text = fmt.Sprintf("Dear %s,\n\nWe have received Rs. %s on %s against %s (%s, ref %s).\nBalance due: Rs. %s\n\n%s",
		r.ToName, amount, date, r.DocumentNumber, r.Mode, r.Reference, balance, r.TenantName)

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <p>Dear %s,</p>
  <p>We have received <strong>Rs. %s</strong> on %s against invoice <strong>%s</strong>.</p>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Mode</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Reference</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Balance due</td><td>Rs. %s</td></tr>
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`,
		html.EscapeString(r.ToName), amount, date, html.EscapeString(r.DocumentNumber),
		html.EscapeString(r.Mode), html.EscapeString(r.Reference), balance, html.EscapeString(r.TenantName))
	return text, htmlBody
}
