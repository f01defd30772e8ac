package auth

import (
	"context"
	"log"
)

type Mailer interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}

// LogMailer writes reset links to the process log instead of sending mail.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(ctx context.Context, email, link string) error {
	log.Printf("password reset requested for %s: %s", email, link)
	return nil
}
