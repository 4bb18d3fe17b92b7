// Package notify sends transactional email and SMS: application decisions,
// shop openings, payout confirmations. Delivery is best-effort; a send
// failure is logged and never propagates into the action that triggered it.
package notify

import (
	"context"
	"fmt"

	"evercraft/internal/common/config"
	"evercraft/internal/common/logger"
	"evercraft/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Interfaces over the AWS clients for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Notifier struct {
	cfg       config.NotificationConfig
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

// New builds a Notifier backed by SES and SNS. When both channels are
// disabled the AWS config is not loaded at all.
func New(cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	n := &Notifier{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "notify"}),
	}
	if !cfg.Email.Enabled && !cfg.SMS.Enabled {
		return n, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	n.sesClient = ses.NewFromConfig(awsCfg)
	n.snsClient = sns.NewFromConfig(awsCfg)
	return n, nil
}

// NewWithClients injects the AWS clients. Used by tests.
func NewWithClients(cfg config.NotificationConfig, log logger.Logger, sesClient SESService, snsClient SNSService) *Notifier {
	return &Notifier{
		cfg:       cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "notify"}),
		sesClient: sesClient,
		snsClient: snsClient,
	}
}

// ApplicationDecision emails the applicant the outcome of their seller
// application.
func (n *Notifier) ApplicationDecision(ctx context.Context, applicant *models.User, app *models.SellerApplication) {
	var subject, body string
	switch app.Status {
	case models.ApplicationStatusApproved:
		subject = "Your shop application was approved"
		body = fmt.Sprintf(
			"Hi %s,\n\nGood news: your application for %q was approved and your shop is now open. Your sustainability tier is %s.\n",
			applicant.Name, app.ShopName, app.Tier)
	case models.ApplicationStatusRejected:
		subject = "Your shop application was not approved"
		body = fmt.Sprintf("Hi %s,\n\nYour application for %q was not approved at this time.", applicant.Name, app.ShopName)
		if app.ReviewNote != nil && *app.ReviewNote != "" {
			body += fmt.Sprintf("\n\nReviewer note: %s", *app.ReviewNote)
		}
		body += "\n\nYou are welcome to apply again with an updated sustainability profile.\n"
	default:
		return
	}

	n.sendEmail(ctx, applicant.Email, subject, body)
}

// PayoutScheduled notifies the shop owner that a payout is on its way.
// High-value payouts also go out over SMS when the owner has a phone.
func (n *Notifier) PayoutScheduled(ctx context.Context, owner *models.User, payout *models.SellerPayout) {
	amount := fmt.Sprintf("%d.%02d", payout.AmountCents/100, payout.AmountCents%100)
	subject := "Your payout is scheduled"
	body := fmt.Sprintf(
		"Hi %s,\n\nA payout of %s for the period %s to %s has been scheduled.\n",
		owner.Name, amount,
		payout.PeriodStart.Format("Jan 2, 2006"),
		payout.PeriodEnd.Format("Jan 2, 2006"))

	n.sendEmail(ctx, owner.Email, subject, body)

	if payout.AmountCents >= 100000 && owner.Phone != "" {
		n.sendSMS(ctx, owner.Phone, fmt.Sprintf("Evercraft: payout of %s scheduled.", amount))
	}
}

func (n *Notifier) sendEmail(ctx context.Context, to, subject, body string) {
	if !n.cfg.Email.Enabled || n.sesClient == nil || to == "" {
		return
	}
	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.cfg.Email.FromEmail),
	})
	if err != nil {
		n.logger.WithError(err).Error("email send failed", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
	}
}

func (n *Notifier) sendSMS(ctx context.Context, to, message string) {
	if !n.cfg.SMS.Enabled || n.snsClient == nil || to == "" {
		return
	}
	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	if err != nil {
		n.logger.WithError(err).Error("SMS send failed", map[string]interface{}{
			"to": to,
		})
	}
}
