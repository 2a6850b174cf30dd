// Package regctl is a small command line client for the registration
// service. It is a thin layer over pkg/quizbanksdk.
package regctl

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/quizbank/pkg/quizbanksdk"
)

// Config holds the client settings. Flags override the environment.
type Config struct {
	URL     string        `env:"QUIZBANK_URL"     envDefault:"http://localhost:8000"`
	Timeout time.Duration `env:"QUIZBANK_TIMEOUT" envDefault:"10s"`
}

const usage = `usage: regctl [-url URL] [-timeout D] <command> [flags]

commands:
  register   start a registration and mail a verification code
  verify     complete a registration with the mailed code
  resend     mail a new code for a pending registration
  login      check a student ID and password
  students   list registered students
  health     show service readiness
`

// errUsage marks errors caused by bad command line input.
var errUsage = errors.New("usage")

type cli struct {
	client *quizbanksdk.SDKClient
	in     *bufio.Reader
	out    io.Writer
}

// Run executes one command and returns the process exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	fs := flag.NewFlagSet("regctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	fs.StringVar(&cfg.URL, "url", cfg.URL, "base URL of the registration service")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	client := quizbanksdk.NewSDKClient(cfg.URL)
	client.HTTPClient.Timeout = cfg.Timeout

	c := &cli{client: client, in: bufio.NewReader(stdin), out: stdout}

	err := c.dispatch(ctx, fs.Arg(0), fs.Args()[1:], stderr)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 2
	default:
		fmt.Fprintf(stderr, "error: %s\n", describe(err))
		return 1
	}
}

func (c *cli) dispatch(ctx context.Context, cmd string, args []string, stderr io.Writer) error {
	switch cmd {
	case "register":
		return c.register(ctx, args, stderr)
	case "verify":
		return c.verify(ctx, args, stderr)
	case "resend":
		return c.resend(ctx, args, stderr)
	case "login":
		return c.login(ctx, args, stderr)
	case "students":
		return c.students(ctx)
	case "health":
		return c.health(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (c *cli) register(ctx context.Context, args []string, stderr io.Writer) error {
	var req quizbanksdk.StartRegistrationRequest

	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&req.LastName, "last", "", "last name")
	fs.StringVar(&req.FirstName, "first", "", "first name")
	fs.StringVar(&req.MiddleName, "middle", "", "middle name")
	fs.StringVar(&req.Suffix, "suffix", "", "name suffix (optional)")
	fs.StringVar(&req.StudentID, "id", "", "student ID, NN-NNNN-NNNNNN")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Course, "course", "", "course")
	fs.StringVar(&req.Section, "section", "", "section")
	fs.StringVar(&req.YearLevel, "year", "", "year level")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	prompts := []struct {
		label string
		value *string
	}{
		{"Last name", &req.LastName},
		{"First name", &req.FirstName},
		{"Middle name", &req.MiddleName},
		{"Student ID", &req.StudentID},
		{"Email", &req.Email},
		{"Course", &req.Course},
		{"Section", &req.Section},
		{"Year level", &req.YearLevel},
	}
	for _, p := range prompts {
		if err := c.ask(p.label, p.value); err != nil {
			return err
		}
	}

	var err error
	if req.Password, err = promptSecret(c.out, "Password"); err != nil {
		return err
	}
	if req.ConfirmPassword, err = promptSecret(c.out, "Confirm password"); err != nil {
		return err
	}

	resp, err := c.client.StartRegistration(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s: %s (expires %s)\n", resp.Message, resp.Email, resp.ExpiresAt.Local().Format(time.Kitchen))
	return nil
}

func (c *cli) verify(ctx context.Context, args []string, stderr io.Writer) error {
	var email, code string

	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&email, "email", "", "email address used to register")
	fs.StringVar(&code, "code", "", "verification code from the email")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := c.ask("Email", &email); err != nil {
		return err
	}
	if err := c.ask("Code", &code); err != nil {
		return err
	}

	resp, err := c.client.VerifyRegistration(ctx, email, code)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, resp.Message)
	printStudent(c.out, resp.Student)
	return nil
}

func (c *cli) resend(ctx context.Context, args []string, stderr io.Writer) error {
	var email string

	fs := flag.NewFlagSet("resend", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&email, "email", "", "email address used to register")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := c.ask("Email", &email); err != nil {
		return err
	}

	resp, err := c.client.ResendOTP(ctx, email)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s: %s\n", resp.Message, resp.Email)
	return nil
}

func (c *cli) login(ctx context.Context, args []string, stderr io.Writer) error {
	var studentID string

	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&studentID, "id", "", "student ID")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := c.ask("Student ID", &studentID); err != nil {
		return err
	}

	password, err := promptSecret(c.out, "Password")
	if err != nil {
		return err
	}

	resp, err := c.client.Login(ctx, studentID, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, resp.Message)
	printStudent(c.out, resp.Student)
	return nil
}

func (c *cli) students(ctx context.Context) error {
	list, err := c.client.ListStudents(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(c.out, "no students registered")
		return nil
	}
	for _, s := range list {
		fmt.Fprintf(c.out, "%s\t%s\t%s\t%s %s-%s\n",
			s.StudentID, s.FullName, s.Email, s.Course, s.YearLevel, s.Section)
	}
	return nil
}

func (c *cli) health(ctx context.Context) error {
	// A degraded service still reports which check failed.
	h, err := c.client.GetReadiness(ctx)
	if h == nil {
		return err
	}
	fmt.Fprintf(c.out, "status: %s\nversion: %s\nuptime: %s\n", h.Status, h.Version, h.Uptime)
	if h.Checks != nil {
		fmt.Fprintf(c.out, "database: %s\nledger: %s\n", h.Checks.Database, h.Checks.Ledger)
	}
	return err
}

// parseFlags parses subcommand flags, marking failures as usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %s", errUsage, err)
}

// ask prompts for value unless a flag already set it.
func (c *cli) ask(label string, value *string) error {
	if strings.TrimSpace(*value) != "" {
		return nil
	}
	v, err := promptText(c.in, c.out, label)
	if err != nil {
		return fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	*value = v
	return nil
}

func printStudent(w io.Writer, s quizbanksdk.Student) {
	fmt.Fprintf(w, "  id:         %s\n", s.ID)
	fmt.Fprintf(w, "  student id: %s\n", s.StudentID)
	fmt.Fprintf(w, "  name:       %s\n", s.FullName)
	fmt.Fprintf(w, "  email:      %s\n", s.Email)
	fmt.Fprintf(w, "  course:     %s %s-%s\n", s.Course, s.YearLevel, s.Section)
}

// describe renders service errors with their reason and offending fields.
func describe(err error) string {
	var apiErr *quizbanksdk.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	msg := apiErr.Message
	if apiErr.Reason != "" {
		msg += " (" + apiErr.Reason + ")"
	} else if apiErr.Kind != "" {
		msg += " (" + apiErr.Kind + ")"
	}
	if len(apiErr.Fields) > 0 {
		msg += " fields: " + strings.Join(apiErr.Fields, ", ")
	}
	return msg
}
