package orchestrators

import (
	"context"
	"errors"
	"testing"

	emailAdapter "architect/internal/adapters/email"
)

// mockSender implements email.Sender.
type mockSender struct {
	sent []emailAdapter.SendRequest
	err  error
}

func (m *mockSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if m.err != nil {
		return emailAdapter.SendResult{}, m.err
	}
	m.sent = append(m.sent, req)
	return emailAdapter.SendResult{MessageID: "msg-1"}, nil
}

// TestExecuteEmailPlan_Valid tests a successful send.
func TestExecuteEmailPlan_Valid(t *testing.T) {
	sender := &mockSender{}
	err := ExecuteEmailPlan(context.Background(), EmailPlanInput{
		To:       "athlete@example.com",
		PlanName: "Hypertrophy Block",
		HTML:     "<h1>Hypertrophy Block</h1>",
	}, EmailPlanDeps{Sender: sender})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(sender.sent))
	}
	req := sender.sent[0]
	if req.Subject != "Training plan: Hypertrophy Block" {
		t.Errorf("subject = %q", req.Subject)
	}
	if len(req.To) != 1 || req.To[0] != "athlete@example.com" {
		t.Errorf("to = %v", req.To)
	}
}

// TestExecuteEmailPlan_InvalidRecipient tests the recipient guard.
func TestExecuteEmailPlan_InvalidRecipient(t *testing.T) {
	sender := &mockSender{}
	for _, to := range []string{"", "   ", "not-an-address"} {
		err := ExecuteEmailPlan(context.Background(), EmailPlanInput{
			To:   to,
			HTML: "<p>body</p>",
		}, EmailPlanDeps{Sender: sender})
		if !errors.Is(err, ErrInvalidRecipient) {
			t.Errorf("to %q: expected ErrInvalidRecipient, got %v", to, err)
		}
	}
	if len(sender.sent) != 0 {
		t.Error("expected no sends")
	}
}

// TestExecuteEmailPlan_SenderFailure tests provider error propagation.
func TestExecuteEmailPlan_SenderFailure(t *testing.T) {
	sender := &mockSender{err: errors.New("rate limited")}
	err := ExecuteEmailPlan(context.Background(), EmailPlanInput{
		To:   "athlete@example.com",
		HTML: "<p>body</p>",
	}, EmailPlanDeps{Sender: sender})
	if err == nil {
		t.Fatal("expected error")
	}
}
