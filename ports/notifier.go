package ports

import "context"

// Notifier hands messages to the outbound email collaborator.
type Notifier interface {
	SendWelcome(ctx context.Context, email, fullName string) error
}
