package wire

import (
	"net/http"

	"cosplay-booking/internal/adaptor"
	"cosplay-booking/internal/data/repository"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/middleware"
	"cosplay-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, deps usecase.Deps, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, service.Auth, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	auth middleware.Authenticator,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSAllowedOrigins))

	authMW := middleware.AuthSession(auth, logger)

	// Apply routes
	wireAuth(r, handler.Auth, authMW)
	wireUser(r, handler.User, handler.Notification, authMW, logger)
	wireCosplayer(r, handler.Cosplayer, handler.Review, authMW, logger)
	wireBooking(r, handler.Booking, handler.Payment, authMW, logger)
	wirePayment(r, handler.Wallet, handler.Payment, authMW)
	wireReview(r, handler.Review, authMW, logger)
	wireAdmin(r, handler.Escrow, handler.Wallet, authMW, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
