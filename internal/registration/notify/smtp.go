package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/quizbank/pkg/idx"
	"github.com/aussiebroadwan/quizbank/pkg/slogx"
)

// TLS modes for SMTPConfig.TLS.
const (
	TLSStartTLS = "starttls"
	TLSImplicit = "implicit"
	TLSNone     = "none"
)

var ErrInvalidRecipient = errors.New("notify: invalid recipient")

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string // defaults to Username
	SenderName string
	TLS        string // starttls, implicit or none
	Timeout    time.Duration

	// CodeTTL is only used to word the message.
	CodeTTL time.Duration
}

// SMTPNotifier sends codes by email.
type SMTPNotifier struct {
	cfg  SMTPConfig
	auth smtp.Auth
	now  func() time.Time
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.SenderName == "" {
		cfg.SenderName = "QuizBank"
	}
	if cfg.TLS == "" {
		cfg.TLS = TLSStartTLS
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	n := &SMTPNotifier{cfg: cfg, now: time.Now}
	if cfg.Username != "" {
		n.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return n
}

func (n *SMTPNotifier) Send(ctx context.Context, email, code string) error {
	log := slogx.FromContext(ctx)

	rcpt, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}

	msg := n.buildMessage(rcpt.Address, Subject, Body(code, n.cfg.CodeTTL))
	address := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	conn, err := n.dial(ctx, address)
	if err != nil {
		log.Error("failed to connect to SMTP server", slog.String("address", address), slog.Any("error", err))
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if n.cfg.TLS == TLSStartTLS {
		if err := client.StartTLS(&tls.Config{ServerName: n.cfg.Host}); err != nil {
			log.Error("failed to start TLS", slog.Any("error", err))
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if err := n.sendViaClient(client, rcpt.Address, msg); err != nil {
		log.Error("failed to send email", slog.Any("error", err))
		return err
	}

	log.Info("verification email sent")
	return nil
}

func (n *SMTPNotifier) dial(ctx context.Context, address string) (net.Conn, error) {
	d := &net.Dialer{Timeout: n.cfg.Timeout}
	if n.cfg.TLS == TLSImplicit {
		td := &tls.Dialer{NetDialer: d, Config: &tls.Config{ServerName: n.cfg.Host}}
		return td.DialContext(ctx, "tcp", address)
	}
	return d.DialContext(ctx, "tcp", address)
}

// sendViaClient authenticates when credentials are set, then runs the
// MAIL/RCPT/DATA exchange.
func (n *SMTPNotifier) sendViaClient(client *smtp.Client, rcpt string, msg []byte) error {
	if n.auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(n.auth); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := client.Mail(n.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(rcpt); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}

func (n *SMTPNotifier) buildMessage(recipient, subject, body string) []byte {
	domain := n.cfg.Host
	if addr, err := mail.ParseAddress(n.cfg.From); err == nil {
		if i := strings.LastIndexByte(addr.Address, '@'); i >= 0 {
			domain = addr.Address[i+1:]
		}
	}

	from := mail.Address{Name: n.cfg.SenderName, Address: n.cfg.From}

	return fmt.Appendf(nil,
		"Message-ID: <%s@%s>\r\n"+
			"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s",
		idx.New().String(), domain,
		n.now().Format(time.RFC1123Z),
		recipient,
		from.String(),
		mime.QEncoding.Encode("utf-8", subject),
		body,
	)
}
