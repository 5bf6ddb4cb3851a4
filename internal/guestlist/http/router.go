package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/verdant-events/guestlist/internal/guestlist/service"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/verdant-events/guestlist/pkg/httpx"
	"github.com/verdant-events/guestlist/pkg/jwtx"
	"github.com/verdant-events/guestlist/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	GuestService     *service.GuestService
	ClaimService     *service.ClaimService
	RSVPService      *service.RSVPService
	BroadcastService *service.BroadcastService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerGuests()
	r.registerRSVP()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /token - strict rate limit by IP + username to slow brute force
	tokenHandler := &TokenHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)
}

func (r *Router) registerGuests() {
	guests := &GuestsHandler{GuestService: r.GuestService}
	csvUpload := &CSVUploadHandler{GuestService: r.GuestService}
	broadcast := &BroadcastHandler{BroadcastService: r.BroadcastService}
	claims := &ClaimHandler{ClaimService: r.ClaimService}

	admin := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /guests/{$}", admin(http.HandlerFunc(guests.HandleCreate)))
	r.Mux.Handle("GET /guests/{$}", admin(http.HandlerFunc(guests.HandleList)))
	r.Mux.Handle("POST /guests/upload-csv", admin(csvUpload))
	r.Mux.Handle("POST /guests/broadcast", admin(broadcast))
	r.Mux.Handle("POST /guests/{code}/mark-sent", admin(http.HandlerFunc(guests.HandleMarkSent)))
	r.Mux.Handle("DELETE /guests/{code}", admin(http.HandlerFunc(guests.HandleDelete)))

	// Public device lookup used by invite links to restore a session
	r.Mux.Handle("GET /guests/validate-device/{device_id}",
		httpx.Chain(http.HandlerFunc(claims.HandleValidateDevice),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerRSVP() {
	rsvp := &RSVPHandler{GuestService: r.GuestService, RSVPService: r.RSVPService}
	claims := &ClaimHandler{ClaimService: r.ClaimService}

	r.Mux.Handle("GET /rsvp/{code}",
		httpx.Chain(http.HandlerFunc(rsvp.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Submissions and claims mutate guest state; keep a tighter lid on them
	r.Mux.Handle("POST /rsvp/{code}",
		httpx.Chain(http.HandlerFunc(rsvp.HandleSubmit),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /rsvp/claim/{code}",
		httpx.Chain(http.HandlerFunc(claims.HandleClaim),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
