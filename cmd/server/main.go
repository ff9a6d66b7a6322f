package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"pulse/internal/audit"
	credmetrics "pulse/internal/credential/metrics"
	credservice "pulse/internal/credential/service"
	credstore "pulse/internal/credential/store"
	"pulse/internal/credential/wallet"
	"pulse/internal/jwtauth"
	"pulse/internal/platform/config"
	"pulse/internal/platform/httpclient"
	"pulse/internal/platform/httpserver"
	"pulse/internal/platform/logger"
	platformredis "pulse/internal/platform/redis"
	"pulse/internal/ratelimit"
	"pulse/internal/reputation"
	httptransport "pulse/internal/transport/http"
	"pulse/internal/verification/cache"
	vmetrics "pulse/internal/verification/metrics"
	"pulse/internal/verification/providers"
	"pulse/internal/verification/providers/farcaster"
	"pulse/internal/verification/providers/github"
	"pulse/internal/verification/providers/lens"
	"pulse/internal/verification/providers/mirror"
	"pulse/internal/verification/providers/twitter"
	vservice "pulse/internal/verification/service"
	vstore "pulse/internal/verification/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in internal services.
func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log.Info("initializing pulse",
		"addr", cfg.Addr,
		"redis", cfg.RedisAddr != "",
		"wallet", cfg.WalletBaseURL != "",
	)

	redisClient, err := platformredis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	var (
		verificationStore vstore.Store
		attemptStore      ratelimit.Store
		credentialStore   credstore.Store
	)
	if redisClient != nil {
		verificationStore = vstore.NewRedisStore(redisClient)
		attemptStore = ratelimit.NewRedisStore(redisClient)
		credentialStore = credstore.NewRedisStore(redisClient)
	} else {
		verificationStore = vstore.NewInMemoryStore()
		attemptStore = ratelimit.NewInMemoryStore()
		credentialStore = credstore.NewInMemoryStore()
	}

	client := httpclient.New(cfg.HTTPTimeout)

	registry := providers.NewRegistry()
	for _, p := range []providers.Provider{
		github.New(cfg.GitHubToken, client),
		twitter.New(cfg.TwitterBearerToken, client),
		lens.New(client, lens.WithEndpoint(cfg.LensEndpoint)),
		farcaster.New(cfg.NeynarAPIKey, client),
		mirror.New(),
	} {
		if err := registry.Register(p); err != nil {
			log.Error("failed to register provider", "error", err)
			os.Exit(1)
		}
	}

	auditor := audit.NewPublisher(audit.NewInMemoryStore(), audit.WithLogger(log))

	walletCap := wallet.NotCapable()
	if cfg.WalletBaseURL != "" {
		walletCap = wallet.Capable(wallet.NewHTTPClient(cfg.WalletBaseURL, cfg.WalletAPIKey, client))
	}
	credentialSvc := credservice.New(walletCap, credentialStore,
		credservice.WithLogger(log),
		credservice.WithMetrics(credmetrics.New()),
	)

	limiter := ratelimit.New(attemptStore, cfg.MaxAttemptsPerDay)

	verificationSvc := vservice.New(registry, verificationStore, limiter,
		vservice.WithCredentialIssuer(credentialSvc),
		vservice.WithProfileCache(cache.New(cfg.ProfileCacheTTL)),
		vservice.WithMetrics(vmetrics.New()),
		vservice.WithAuditor(auditor),
		vservice.WithLogger(log),
	)

	reputationSvc := reputation.New(verificationStore)

	tokens, err := jwtauth.New(cfg.JWTSigningKey, "pulse", cfg.TokenTTL)
	if err != nil {
		log.Error("failed to initialize token service", "error", err)
		os.Exit(1)
	}

	handler := httptransport.NewHandler(verificationSvc, reputationSvc, credentialSvc, limiter, log,
		httptransport.WithAuditor(auditor),
	)
	router := httptransport.NewRouter(handler, tokens, log)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("server stopped")
}
