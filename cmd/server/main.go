package main

import (
	"database/sql"
	"net/http"

	"dukaan-be/internal/cart"
	"dukaan-be/internal/config"
	"dukaan-be/internal/db"
	"dukaan-be/internal/logger"
	"dukaan-be/internal/middleware"
	"dukaan-be/internal/order"
	"dukaan-be/internal/payment"
	"dukaan-be/internal/payment/verify"

	"go.uber.org/zap"
)

// Indirections for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func setupRouter(orderHandler, verifyHandler, failureHandler http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("POST /checkout/orders", middleware.RequireAuth(orderHandler))
	mux.Handle("POST /payments/verify", middleware.RequireAuth(verifyHandler))
	mux.Handle("POST /payments/failure", middleware.RequireAuth(failureHandler))

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)

	return handler
}

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, gateway)
	orderHandler := order.NewHandler(orderSvc)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	attemptRepo := payment.NewRepository(database)
	verifier := verify.NewVerifier(orderSvc, attemptRepo, cfg.RazorpayKeySecret)
	outcome := verify.NewOutcomeHandler(orderSvc, attemptRepo, cartSvc, verify.Callbacks{})
	verifyHandler := verify.NewHandler(verifier, outcome, orderSvc, attemptRepo)

	return setupRouter(
		orderHandler.CreateOrderHandler,
		verifyHandler.VerifyHandler,
		verifyHandler.FailureHandler,
	)
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	logger.L().Info("checkout server listening", zap.String("port", cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, router)
}

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}
