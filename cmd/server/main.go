package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"

	"github.com/brightforge/site-api/internal/config"
	"github.com/brightforge/site-api/internal/guard"
	"github.com/brightforge/site-api/internal/health"
	"github.com/brightforge/site-api/internal/httpapi"
	"github.com/brightforge/site-api/internal/intake"
	"github.com/brightforge/site-api/internal/metrics"
	"github.com/brightforge/site-api/internal/notify"
	"github.com/brightforge/site-api/internal/session"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	// Setup structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	if os.Getenv("ENVIRONMENT") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = logger

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err == nil {
		zerolog.SetGlobalLevel(level)
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Str("listen_addr", cfg.ListenAddr).
		Bool("redis", cfg.RedisEnabled()).
		Bool("sqlite", cfg.SQLiteEnabled()).
		Bool("resend", cfg.ResendEnabled()).
		Bool("smtp", cfg.SMTPEnabled()).
		Bool("slack", cfg.SlackEnabled()).
		Msg("starting site api")

	// Context with graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	m := metrics.New()
	checker := health.NewChecker(logger)

	// Session store: Redis wins over SQLite, memory is the fallback
	var store session.Store
	switch {
	case cfg.RedisEnabled():
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		rs := session.NewRedisStore(rdb, logger)
		checker.Register("redis", func(ctx context.Context) health.Status {
			if err := rs.Ping(ctx); err != nil {
				return health.StatusDown
			}
			return health.StatusOK
		})
		store = rs
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis session store")

	case cfg.SQLiteEnabled():
		ss, err := session.NewSQLiteStore(cfg.SQLitePath, logger)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("failed to open sqlite session store")
		}
		checker.Register("sqlite", func(ctx context.Context) health.Status {
			if _, err := ss.Cleanup(ctx); err != nil {
				return health.StatusDegraded
			}
			return health.StatusOK
		})
		store = ss
		logger.Info().Str("path", cfg.SQLitePath).Msg("using sqlite session store")

	default:
		store = session.NewMemoryStore()
		logger.Info().Msg("using in-memory session store")
	}
	defer store.Close()

	// Periodic sweep of expired sessions
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := store.Cleanup(ctx); err != nil {
					logger.Warn().Err(err).Msg("session cleanup failed")
				} else if n > 0 {
					logger.Debug().Int("removed", n).Msg("session cleanup")
				}
			}
		}
	}()

	// Content guard rules (built-in defaults, optional YAML override)
	rules := guard.DefaultRules()
	if cfg.GuardRulesPath != "" {
		rules, err = guard.LoadRules(cfg.GuardRulesPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.GuardRulesPath).Msg("failed to load guard rules")
		}
		logger.Info().Str("path", cfg.GuardRulesPath).Msg("guard rules loaded")
	}
	contentGuard := guard.New(rules, logger)

	// Email delivery: Resend primary, SMTP fallback, no retries
	var primary, fallback notify.Sender
	if cfg.ResendEnabled() {
		primary = notify.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
		logger.Info().Msg("resend email sender initialized")
	}
	if cfg.SMTPEnabled() {
		smtpSender, smtpErr := notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
		if smtpErr != nil {
			logger.Error().Err(smtpErr).Msg("failed to init smtp sender (non-fatal)")
		} else {
			fallback = smtpSender
			logger.Info().Str("host", cfg.SMTPHost).Msg("smtp email sender initialized")
		}
	}
	if primary == nil {
		primary, fallback = fallback, nil
	}

	var notifier *notify.Notifier
	if primary != nil {
		sender := notify.NewFailoverSender(primary, fallback, m, logger)
		opts := []notify.Option{notify.WithMetrics(m)}
		if cfg.SlackEnabled() {
			api := slack.New(cfg.SlackBotToken)
			opts = append(opts, notify.WithSlack(notify.NewSlackAlerter(api, cfg.SlackLeadChannel)))
			logger.Info().Str("channel", cfg.SlackLeadChannel).Msg("slack lead alerts enabled")
		}
		notifier = notify.New(sender, cfg.LeadInbox, logger, opts...)
	} else {
		logger.Warn().Msg("no email provider configured — leads will not be delivered")
	}

	// Intake flow and HTTP API
	var leadNotifier intake.LeadNotifier
	var contactNotifier httpapi.ContactNotifier
	if notifier != nil {
		leadNotifier = notifier
		contactNotifier = notifier
	}
	flow := intake.NewController(leadNotifier, logger)

	handlers := httpapi.NewHandlers(flow, contentGuard, store, contactNotifier, m, checker, httpapi.HandlerConfig{
		MaxSessionID:  cfg.MaxSessionID,
		MaxMessageLen: cfg.MaxMessageLen,
		SessionTTL:    cfg.SessionTTL,
		ReplyDelay:    cfg.ReplyDelay,
	}, logger)

	server := httpapi.NewServer(httpapi.ServerConfig{
		ListenAddr:  cfg.ListenAddr,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit: httpapi.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
	}, handlers, m, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("api server error")
		}
	}()

	<-sigCh
	logger.Info().Msg("shutdown signal received")
	cancel()

	if err := server.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}

	logger.Info().Msg("site api stopped")
}
