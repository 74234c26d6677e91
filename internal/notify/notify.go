// Package notify defines the outbound notification sender used for
// authentication numbers and password-reset notices.
package notify

import "context"

// Notifier sends a message to a target (a phone number for SMS). Callers
// treat sending as fire-and-forget: a failed send must never fail the
// operation that triggered it.
type Notifier interface {
	Send(ctx context.Context, target, message string) error
}
