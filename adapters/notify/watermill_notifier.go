package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/wealthpath/onboard/ports"
)

// WelcomeTopic is the topic the mailer worker consumes.
const WelcomeTopic = "onboarding.email.welcome"

// WelcomeEmail is the payload handed to the external mailer.
type WelcomeEmail struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

// WatermillNotifier publishes email events for the external mailer.
type WatermillNotifier struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillNotifier creates a new Watermill-backed notifier.
func NewWatermillNotifier(publisher message.Publisher) ports.Notifier {
	return &WatermillNotifier{
		publisher: publisher,
		topic:     WelcomeTopic,
	}
}

func (n *WatermillNotifier) SendWelcome(ctx context.Context, email, fullName string) error {
	event := WelcomeEmail{
		Email:    email,
		FullName: fullName,
		Subject:  "Registration Successful",
		Body:     fmt.Sprintf("Welcome %s, you have successfully registered to our platform", fullName),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := n.publisher.Publish(n.topic, msg); err != nil {
		return fmt.Errorf("failed to publish welcome email: %w", err)
	}

	return nil
}
