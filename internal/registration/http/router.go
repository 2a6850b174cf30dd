package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/quizbank/internal/registration/service"
	"github.com/aussiebroadwan/quizbank/internal/registration/store"
	"github.com/aussiebroadwan/quizbank/pkg/httpx"
	"github.com/aussiebroadwan/quizbank/pkg/slogx"

	_ "github.com/aussiebroadwan/quizbank/api/registration" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store  store.Store
	ledger service.Ledger

	// Limits assigns a throttling profile to each route. NewRouter sets
	// the production defaults.
	Limits httpx.RateLimits

	RegistrationService *service.RegistrationService
	AuthService         *service.AuthService
	AccountService      *service.AccountService // Optional: nil leaves /api/students unmounted
}

func NewRouter(
	buildVersion string,
	st store.Store,
	ledger service.Ledger,
	allowedOrigins []string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		ledger:       ledger,
		logger:       logger,
		Limits:       httpx.DefaultRateLimits(),
	}

	// Metrics reads the matched pattern, so it has to sit closest to the mux.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(allowedOrigins),
		httpx.Metrics,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerRegistration()
	r.registerLogin()
	r.registerStudents()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			QuizBank Registration API
//	@version		0.1.0
//	@description	Student registration with email one-time codes, and student ID / password login.
//	@description
//	@description	Registration is two steps: start mails a code, verify exchanges it for an account.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/quizbank
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8000
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerRegistration() {
	h := &RegisterHandler{RegistrationService: r.RegistrationService}

	// POST /start and /resend-otp send mail - moderate limit by IP + email
	r.Mux.Handle("POST /api/register/start",
		httpx.Chain(http.HandlerFunc(h.HandleStart),
			httpx.RateLimitByIPAndJSONField(r.Limits.Moderate, "email"),
		),
	)
	r.Mux.Handle("POST /api/register/resend-otp",
		httpx.Chain(http.HandlerFunc(h.HandleResend),
			httpx.RateLimitByIPAndJSONField(r.Limits.Moderate, "email"),
		),
	)

	// POST /verify - strict limit by IP + email (code guessing)
	r.Mux.Handle("POST /api/register/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIPAndJSONField(r.Limits.Strict, "email"),
		),
	)
}

func (r *Router) registerLogin() {
	// POST /login - strict limit by IP + student id (password guessing)
	r.Mux.Handle("POST /api/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService},
			httpx.RateLimitByIPAndJSONField(r.Limits.Strict, "studentID"),
		),
	)
}

func (r *Router) registerStudents() {
	if r.AccountService == nil {
		return
	}
	r.Mux.Handle("GET /api/students",
		httpx.Chain(&StudentsHandler{AccountService: r.AccountService},
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /{$}",
		httpx.Chain(RootHandler(),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.ledger),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)

	r.Mux.Handle("GET /metrics",
		httpx.Chain(httpx.MetricsHandler(),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
}
