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

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/auth"
	"github.com/junaidrashid-git/teazen/config"
	adminController "github.com/junaidrashid-git/teazen/controllers/admin"
	"github.com/junaidrashid-git/teazen/mailer"
	"github.com/junaidrashid-git/teazen/media"
	"github.com/junaidrashid-git/teazen/metrics"
	"github.com/junaidrashid-git/teazen/routes"
	"github.com/junaidrashid-git/teazen/seed"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/session"
	"github.com/junaidrashid-git/teazen/store"
	"github.com/junaidrashid-git/teazen/store/gormstore"
	"github.com/junaidrashid-git/teazen/store/memory"
	"github.com/junaidrashid-git/teazen/web"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const usage = `usage:
  teazen                               start the web server
  teazen seed [fixtures.yaml]          load sample content into empty tables
  teazen create-admin <email> <pass>   create a superuser`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ config:", err)
		os.Exit(1)
	}
	log := config.NewLogger(cfg)
	ctx := log.WithContext(context.Background())

	args := os.Args[1:]
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "":
		err = serve(ctx, cfg, log)
	case "seed":
		err = runSeed(ctx, cfg, log, args[1:])
	case "create-admin":
		err = runCreateAdmin(ctx, cfg, log, args[1:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("❌ failed")
	}
}

// app holds the long-lived resources shared by every command.
type app struct {
	store    store.Store
	services *services.Services
	metrics  *metrics.Metrics
	hub      *adminController.Hub
	closers  []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

func newApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{
		metrics: metrics.New(),
		hub:     adminController.NewHub(log),
	}

	switch cfg.StoreDriver {
	case "memory":
		log.Warn().Msg("⚠️ using the in-memory store, data is lost on restart")
		a.store = memory.New()
	default:
		db, err := config.ConnectDB(cfg, log)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		if err := config.Migrate(db); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info().Msg("✅ database migrated")
		a.store = gormstore.New(db)
	}

	var mail mailer.Mailer = mailer.LogMailer{}
	if cfg.SMTPEnabled() {
		mail = mailer.NewSMTP(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	}

	a.services = services.New(a.store, services.Options{
		Reset:  auth.NewResetTokens(cfg.SessionSecret, cfg.ResetTokenTTL),
		Mailer: mail,
		Events: services.MultiEvents{a.metrics, a.hub},
		Identity: services.IdentityOptions{
			SiteURL:    cfg.SiteURL,
			BcryptCost: cfg.BcryptCost,
		},
	})
	return a, nil
}

func newSessionStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (session.Store, func() error, error) {
	if cfg.RedisAddr == "" {
		log.Warn().Msg("⚠️ REDIS_ADDR not set, sessions are kept in memory")
		return session.NewMemoryStore(), func() error { return nil }, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("✅ connected to redis")
	return session.NewRedisStore(client), client.Close, nil
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	log.Info().Msg("✅ Starting application...")

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	sessions, closeSessions, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, closeSessions)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	if err := routes.SetupRoutes(r, &routes.Deps{
		Config:   cfg,
		Log:      log,
		Store:    a.store,
		Services: a.services,
		Sessions: sessions,
		Codec:    auth.NewSessionCodec(cfg.SessionSecret, cfg.SessionTTL),
		Metrics:  a.metrics,
		Hub:      a.hub,
		Uploads:  media.NewStore(cfg.MediaRoot),
		Web:      web.FS,
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("🚀 Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("🛑 shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runSeed(ctx context.Context, cfg *config.Config, log zerolog.Logger, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	fixtures, err := seed.Load(path)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := seed.Apply(ctx, a.services, fixtures)
	if err != nil {
		return err
	}
	fmt.Printf("Created %d products, %d storyboard items, %d raw items, %d cabinet items\n",
		res.Products, res.Storyboard, res.Raw, res.Cabinet)
	return nil
}

func runCreateAdmin(ctx context.Context, cfg *config.Config, log zerolog.Logger, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.services.Identity.CreateAdmin(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	log.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("👑 superuser created")
	return nil
}
