package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventschedule/eventschedule/internal/config"
	"github.com/eventschedule/eventschedule/internal/events"
	"github.com/eventschedule/eventschedule/internal/hash"
	"github.com/eventschedule/eventschedule/internal/httpserver"
	"github.com/eventschedule/eventschedule/internal/logging"
	"github.com/eventschedule/eventschedule/internal/mail"
	"github.com/eventschedule/eventschedule/internal/repo"
	"github.com/eventschedule/eventschedule/internal/service"
	"github.com/eventschedule/eventschedule/internal/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	codec := &tokens.Codec{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.TokenTTL,
	}
	hasher := hash.New(cfg.BcryptCost)
	accounts := &repo.GormRepo{DB: db}
	producer := events.NewProducer(cfg.KafkaAddress)
	defer producer.Close()

	creds := &service.CredentialService{
		Accounts: accounts,
		Hasher:   hasher,
		Codec:    codec,
		Producer: producer,
	}
	reset := &service.ResetFlow{
		Accounts: accounts,
		Hasher:   hasher,
		Codec:    codec,
		Relay:    &mail.LogRelay{Logger: logger},
		Producer: producer,
		BaseURL:  cfg.ResetBaseURL,
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Creds: creds, Reset: reset},
		Auth:        &httpserver.AuthMiddleware{Codec: codec},
	})

	go func() {
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
