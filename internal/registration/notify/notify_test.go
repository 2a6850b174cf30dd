package notify

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type received struct {
	from string
	rcpt string
	data string
}

// fakeSMTP is a minimal plain-text SMTP server good enough for net/smtp.
type fakeSMTP struct {
	ln         net.Listener
	msgs       chan received
	rejectRcpt bool
}

func startFakeSMTP(t *testing.T, rejectRcpt bool) *fakeSMTP {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeSMTP{ln: ln, msgs: make(chan received, 4), rejectRcpt: rejectRcpt}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.serve(conn)
		}
	}()
	return s
}

func (s *fakeSMTP) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTP) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }

	reply("220 localhost ESMTP fake")

	var msg received
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		verb := strings.ToUpper(line)

		switch {
		case strings.HasPrefix(verb, "EHLO"):
			reply("250-localhost")
			reply("250 8BITMIME")
		case strings.HasPrefix(verb, "HELO"):
			reply("250 localhost")
		case strings.HasPrefix(verb, "MAIL FROM:"):
			msg.from = line[len("MAIL FROM:"):]
			reply("250 OK")
		case strings.HasPrefix(verb, "RCPT TO:"):
			if s.rejectRcpt {
				reply("550 no such user")
				continue
			}
			msg.rcpt = line[len("RCPT TO:"):]
			reply("250 OK")
		case verb == "DATA":
			reply("354 end with .")
			var data bytes.Buffer
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				data.WriteString(l)
			}
			msg.data = data.String()
			s.msgs <- msg
			reply("250 OK queued")
		case verb == "QUIT":
			reply("221 bye")
			return
		default:
			reply("250 OK")
		}
	}
}

func TestSMTPNotifierSend(t *testing.T) {
	t.Parallel()
	srv := startFakeSMTP(t, false)

	n := NewSMTPNotifier(SMTPConfig{
		Host:    "127.0.0.1",
		Port:    srv.port(),
		From:    "noreply@quizbank.test",
		TLS:     TLSNone,
		Timeout: 2 * time.Second,
		CodeTTL: 10 * time.Minute,
	})

	require.NoError(t, n.Send(context.Background(), "Student@Example.com", "042917"))

	select {
	case msg := <-srv.msgs:
		require.Contains(t, msg.from, "<noreply@quizbank.test>")
		require.Contains(t, msg.rcpt, "<Student@Example.com>")
		require.Contains(t, msg.data, "To: Student@Example.com\r\n")
		require.Contains(t, msg.data, "Subject: Your QuizBank verification code\r\n")
		require.Contains(t, msg.data, `From: "QuizBank" <noreply@quizbank.test>`)
		require.Contains(t, msg.data, "042917")
		require.Contains(t, msg.data, "10 minutes")
		require.Contains(t, msg.data, "@quizbank.test>\r\n")
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestSMTPNotifierRejectedRecipient(t *testing.T) {
	t.Parallel()
	srv := startFakeSMTP(t, true)

	n := NewSMTPNotifier(SMTPConfig{
		Host: "127.0.0.1", Port: srv.port(), From: "noreply@quizbank.test", TLS: TLSNone,
	})

	err := n.Send(context.Background(), "student@example.com", "123456")
	require.Error(t, err)
	require.Contains(t, err.Error(), "rcpt")
}

func TestSMTPNotifierInvalidRecipient(t *testing.T) {
	t.Parallel()
	n := NewSMTPNotifier(SMTPConfig{Host: "127.0.0.1", Port: 1, TLS: TLSNone})

	err := n.Send(context.Background(), "not an email", "123456")
	require.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestSMTPNotifierUnreachable(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	n := NewSMTPNotifier(SMTPConfig{Host: "127.0.0.1", Port: port, TLS: TLSNone, Timeout: time.Second})
	require.Error(t, n.Send(context.Background(), "student@example.com", "123456"))
}

func TestSMTPDefaults(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "bot@example.com"})
	require.Equal(t, "bot@example.com", n.cfg.From)
	require.Equal(t, TLSStartTLS, n.cfg.TLS)
	require.Equal(t, 10*time.Second, n.cfg.Timeout)
	require.NotNil(t, n.auth)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	require.NoError(t, n.Send(context.Background(), "a@b.com", "654321"))
	require.Contains(t, buf.String(), `"email":"a@b.com"`)
	require.Contains(t, buf.String(), `"code":"654321"`)
}

func TestBody(t *testing.T) {
	require.Contains(t, Body("000123", time.Minute), "000123")
	require.Contains(t, Body("000123", time.Minute), "1 minute.")
	require.Contains(t, Body("000123", 0), "10 minutes")
	require.Contains(t, Body("000123", 90*time.Second), "1m30s")
}
