package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/zkmixer/zkmixer/log"
	"github.com/zkmixer/zkmixer/mixer"
)

// APIConfig type represents the configuration for the API HTTP server.
// It includes the host, port and the mixer controller instance.
type APIConfig struct {
	Host  string
	Port  int
	Mixer *mixer.Mixer
}

// API type represents the API HTTP server.
type API struct {
	router *chi.Mux
	mixer  *mixer.Mixer
}

// New creates a new API instance with the given configuration and starts
// the HTTP server.
func New(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	if conf.Mixer == nil {
		return nil, fmt.Errorf("missing mixer instance")
	}
	a := &API{
		mixer: conf.Mixer,
	}

	// Initialize router
	a.initRouter()
	go func() {
		log.Infow("Starting API server", "host", conf.Host, "port", conf.Port)
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", conf.Host, conf.Port), a.router); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
	return a, nil
}

// Router returns the chi router for testing purposes
func (a *API) Router() *chi.Mux {
	return a.router
}

// registerHandlers registers all the API handlers.
func (a *API) registerHandlers() {
	log.Infow("register handler", "endpoint", PingEndpoint, "method", "GET")
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	log.Infow("register handler", "endpoint", AdminInitializeEndpoint, "method", "POST")
	a.router.Post(AdminInitializeEndpoint, a.initializeMixer)
	log.Infow("register handler", "endpoint", AdminPauseEndpoint, "method", "POST")
	a.router.Post(AdminPauseEndpoint, a.pauseMixer)
	log.Infow("register handler", "endpoint", AdminUnpauseEndpoint, "method", "POST")
	a.router.Post(AdminUnpauseEndpoint, a.unpauseMixer)
	log.Infow("register handler", "endpoint", AdminAuthorityEndpoint, "method", "POST")
	a.router.Post(AdminAuthorityEndpoint, a.transferAuthority)
	log.Infow("register handler", "endpoint", AdminFeeCollectorEndpoint, "method", "POST")
	a.router.Post(AdminFeeCollectorEndpoint, a.updateFeeCollector)
	log.Infow("register handler", "endpoint", PoolsEndpoint, "method", "POST")
	a.router.Post(PoolsEndpoint, a.newPool)
	log.Infow("register handler", "endpoint", PoolsEndpoint, "method", "GET")
	a.router.Get(PoolsEndpoint, a.pools)
	log.Infow("register handler", "endpoint", PoolEndpoint, "method", "GET")
	a.router.Get(PoolEndpoint, a.pool)
	log.Infow("register handler", "endpoint", PoolEndpoint, "method", "DELETE")
	a.router.Delete(PoolEndpoint, a.closePool)
	log.Infow("register handler", "endpoint", DepositsEndpoint, "method", "POST")
	a.router.Post(DepositsEndpoint, a.newDeposit)
	log.Infow("register handler", "endpoint", CommitmentsEndpoint, "method", "GET")
	a.router.Get(CommitmentsEndpoint, a.commitments)
	log.Infow("register handler", "endpoint", WithdrawalsEndpoint, "method", "POST")
	a.router.Post(WithdrawalsEndpoint, a.newWithdrawal)
	log.Infow("register handler", "endpoint", WithdrawalsEndpoint, "method", "GET")
	a.router.Get(WithdrawalsEndpoint, a.withdrawals)
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	// Create the router with a basic middleware stack
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Throttle(100))
	a.router.Use(middleware.ThrottleBacklog(5000, 40000, 60*time.Second))
	a.router.Use(middleware.Timeout(45 * time.Second))

	// Register the API handlers
	a.registerHandlers()
}
