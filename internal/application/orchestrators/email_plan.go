package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	emailAdapter "architect/internal/adapters/email"
)

// EmailPlanInput carries input for the email orchestrator. The HTML body is
// rendered by the projection layer before this orchestrator runs.
type EmailPlanInput struct {
	To       string
	PlanName string
	HTML     string
}

// EmailPlanDeps holds dependencies for EmailPlan.
type EmailPlanDeps struct {
	Sender emailAdapter.Sender
}

var ErrInvalidRecipient = errors.New("recipient must be a valid email address")

// ExecuteEmailPlan sends a rendered plan to one recipient.
// PRE: input.HTML is the rendered plan detail
// POST: The email is queued with the provider
func ExecuteEmailPlan(ctx context.Context, input EmailPlanInput, deps EmailPlanDeps) error {
	to := strings.TrimSpace(input.To)
	if to == "" || !strings.Contains(to, "@") {
		return ErrInvalidRecipient
	}
	if strings.TrimSpace(input.HTML) == "" {
		return errors.New("email body cannot be empty")
	}

	subject := "Training plan"
	if input.PlanName != "" {
		subject = "Training plan: " + input.PlanName
	}

	result, err := deps.Sender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{to},
		Subject: subject,
		HTML:    input.HTML,
	})
	if err != nil {
		return err
	}

	slog.Info("email_event", "event", "plan_emailed", "to", to, "message_id", result.MessageID)
	return nil
}
