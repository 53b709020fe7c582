package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cacheadapter "github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/adapters/cache"
	clockadapter "github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/adapters/clock"
	eventadapter "github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/adapters/events"
	httpadapter "github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/adapters/http"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/adapters/memory"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/adapters/postgres"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/adapters/security"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/application"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/escrow"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	outbox     *eventadapter.OutboxWorker
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("bootstrapping m23 nft auction service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"in_memory", cfg.InMemory,
	)

	cleanups := make([]func(), 0, 3)
	cleanup := func(context.Context) {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	fail := func(stage string, err error) (*Runtime, error) {
		cleanup(ctx)
		return nil, fmt.Errorf("%s: %w", stage, err)
	}

	var (
		assetRepo   ports.AssetRepository
		auctionRepo ports.AuctionRepository
		outboxRepo  ports.OutboxRepository
		wallets     ports.WalletLedger
		bidCache    ports.BidCache
	)

	if cfg.InMemory {
		repos := memory.NewRepositories()
		assetRepo = repos.Assets
		auctionRepo = repos.Auctions
		outboxRepo = repos.Outbox
		wallets = memory.NewWalletStore()
	} else {
		db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
		if err != nil {
			return fail("connect postgres", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fail("gorm sql db", err)
		}
		cleanups = append(cleanups, func() { _ = sqlDB.Close() })

		if err := postgres.RunMigrations(ctx, db); err != nil {
			return fail("run migrations", err)
		}

		redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fail("connect redis", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fail("ping redis", err)
		}
		cleanups = append(cleanups, func() { _ = redisClient.Close() })

		repos := postgres.NewRepositories(db)
		assetRepo = repos.Assets
		auctionRepo = repos.Auctions
		outboxRepo = repos.Outbox
		wallets = cacheadapter.NewRedisWalletStore(redisClient)
		bidCache = cacheadapter.NewRedisBidCache(redisClient)
	}

	tokenSigner, err := security.NewJWTSigner(cfg.JWTKeyID, cfg.JWTPrivateKeyPEM, cfg.JWTPublicKeyPEM)
	if err != nil {
		if !cfg.AllowEphemeralJWT {
			return fail("init jwt signer", err)
		}
		logger.Warn("using ephemeral JWT keys for local/dev runtime")
		tokenSigner, err = security.NewEphemeralJWTSigner(cfg.JWTKeyID)
		if err != nil {
			return fail("init ephemeral jwt signer", err)
		}
	}

	ledger := escrow.NewLedger(wallets)
	openAuctions, err := auctionRepo.ListOpen(ctx)
	if err != nil {
		return fail("rehydrate escrow ledger", err)
	}
	for _, auction := range openAuctions {
		ledger.Seed(auction.EscrowID, auction.EscrowBalance)
	}

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName: cfg.ServiceID,
		},
		Assets:   assetRepo,
		Auctions: auctionRepo,
		Escrow:   ledger,
		Clock:    clockadapter.NewSystem(),
		BidCache: bidCache,
		Tokens:   tokenSigner,
	})

	handler := httpadapter.NewHandler(svc)
	router := httpadapter.NewRouter(handler)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fail("listen gRPC", err)
	}

	var publisher ports.EventPublisher = eventadapter.NewLoggingPublisher(logger)
	if cfg.NATSURL != "" && !cfg.InMemory {
		conn, err := nats.Connect(cfg.NATSURL, nats.Name(cfg.ServiceID))
		if err != nil {
			return fail("connect nats", err)
		}
		cleanups = append(cleanups, func() { conn.Close() })
		publisher = eventadapter.NewNATSPublisher(conn, cfg.EventSubjectPrefix)
	}

	outbox := eventadapter.NewOutboxWorker(
		logger,
		outboxRepo,
		publisher,
		cfg.OutboxPollInterval,
		cfg.OutboxBatchSize,
	)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		outbox:     outbox,
		cleanupFn:  cleanup,
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		r.logger.Info("grpc server started", "addr", r.grpcLis.Addr().String())
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("outbox worker started")
	err := r.outbox.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.cleanupFn(shutdownCtx)
	return nil
}
