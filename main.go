package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/linkstart-be/internal/api"
	"github.com/isdelr/linkstart-be/internal/auth"
	"github.com/isdelr/linkstart-be/internal/config"
	"github.com/isdelr/linkstart-be/internal/database"
	"github.com/isdelr/linkstart-be/internal/logger"
	"github.com/isdelr/linkstart-be/internal/probe"
	"github.com/isdelr/linkstart-be/internal/repository"
	"github.com/isdelr/linkstart-be/internal/services"
	"github.com/rs/zerolog/log"
)

// stores bundles the repositories of whichever backend is configured.
type stores struct {
	users    repository.UserRepository
	services repository.ServiceRepository
	close    func()
}

func main() {
	// Load configuration
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Set up the store
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := openStores(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}
	defer st.close()

	// Set up services
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token service")
	}
	userService, err := services.NewUserService(st.users, tokens, auth.NewPasswordHasher(cfg.BcryptCost))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize user service")
	}
	serviceManager := services.NewServiceManager(st.services)
	prober := probe.New(cfg.PingTimeout, cfg.PingPrivileged)

	// Set up router
	router := api.NewRouter(api.Dependencies{
		AllowedOrigins: cfg.AllowedOrigins,
		Tokens:         tokens,
		Users:          userService,
		Services:       serviceManager,
		Prober:         prober,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Bool("mongo", cfg.UseMongo()).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// openStores connects to MongoDB when a URI is configured and to the SQLite
// database otherwise, preparing indexes or schema before returning.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.UseMongo() {
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.DatabaseName)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &stores{
			users:    repository.NewMongoUserRepository(db),
			services: repository.NewMongoServiceRepository(db),
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Error().Err(err).Msg("Failed to disconnect from mongo")
				}
			},
		}, nil
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &stores{
		users:    repository.NewSQLiteUserRepository(db),
		services: repository.NewSQLiteServiceRepository(db),
		close: func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database")
			}
		},
	}, nil
}
