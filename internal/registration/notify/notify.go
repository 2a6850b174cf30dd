// Package notify delivers one-time registration codes to students.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/quizbank/pkg/slogx"
)

const (
	Subject = "Your QuizBank verification code"
)

// Body renders the plain-text message carrying code.
func Body(code string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Your QuizBank verification code is: %s\r\n\r\n"+
			"The code expires in %s. If you did not request it, ignore this email.\r\n",
		code, humanDuration(ttl),
	)
}

func humanDuration(d time.Duration) string {
	if d <= 0 {
		d = 10 * time.Minute
	}
	if m := int(d / time.Minute); d%time.Minute == 0 {
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return d.String()
}

// LogNotifier writes codes to the log instead of sending mail. Use it in
// development only: it is the one place a code is ever logged.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Send(ctx context.Context, email, code string) error {
	log := n.Logger
	if log == nil {
		log = slogx.FromContext(ctx)
	}
	log.Warn("OTP issued (log notifier, do not use in production)",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}
