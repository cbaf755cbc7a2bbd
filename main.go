package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/qnd101/PenFootball-GameServer/lobby"
	"github.com/qnd101/PenFootball-GameServer/tick"
)

func main() {
	configDir := flag.String("config", ".", "directory holding penfootball.yaml")
	flag.Parse()

	cfg, err := LoadConfig(*configDir)
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	log := SetupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(ctx context.Context, cfg *Config, log *logrus.Logger) error {
	db, err := OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", cfg.DBPath, err)
	}
	defer db.Close()

	creds := credentials{Username: cfg.MainUsername, Password: cfg.MainPassword}
	var base *url.URL
	if cfg.MainURL != "" {
		if base, err = url.Parse(cfg.MainURL); err != nil {
			return fmt.Errorf("main.url: %w", err)
		}
	}

	secret, policy, err := resolveSecret(ctx, cfg, base, creds, db, log)
	if err != nil {
		return err
	}
	auth := NewAuth(secret, cfg.JWTIssuer, cfg.JWTAudience)

	lcfg := lobby.DefaultConfig()
	lcfg.NormTimeout = cfg.NormTimeout
	lcfg.WaitingInfoPeriod = cfg.WaitingInfoPeriod
	reg := lobby.New(lcfg, lobby.WithLogger(log.WithField("component", "lobby")))

	hub := NewHub(reg, auth, policy, log.WithField("component", "hub"))

	var (
		sink   tick.ResultSink
		poster *Poster
	)
	if base != nil {
		poster = NewPoster(base, cfg.ResultPath, cfg.LoginPath, creds, db, log)
		sink = poster
	} else {
		log.Warn("main.url not set, duel results will not be reported")
	}

	sched := tick.New(reg, hub, sink,
		tick.WithPeriod(cfg.TickPeriod),
		tick.WithFloor(cfg.TickFloor),
		tick.WithLogger(log.WithField("component", "tick")),
	)

	server := &http.Server{Addr: cfg.Addr, Handler: SetupRoutes(hub)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error { return sched.Run(gctx) })
	if poster != nil {
		g.Go(func() error { return poster.Run(gctx) })
	}
	g.Go(func() error {
		log.WithField("addr", cfg.Addr).Info("server starting")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// resolveSecret picks the token secret: from the main server when one is
// configured and reachable, then from config, then from the local store.
func resolveSecret(ctx context.Context, cfg *Config, base *url.URL, creds credentials, db *DB, log logrus.FieldLogger) ([]byte, EntrancePolicy, error) {
	if base != nil {
		initCtx, cancel := context.WithTimeout(ctx, postTimeout)
		defer cancel()
		secret, policy, err := fetchInit(initCtx, http.DefaultClient, base, cfg.InitPath, creds)
		if err == nil {
			log.WithField("rules", len(policy)).Info("initialized from main server")
			if policy == nil {
				policy = cfg.Entrance
			}
			return []byte(secret), policy, nil
		}
		log.WithError(err).Warn("initialize failed, using local secret")
	}
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret), cfg.Entrance, nil
	}
	secret, err := loadOrCreateSecret(db, log)
	if err != nil {
		return nil, nil, err
	}
	return secret, cfg.Entrance, nil
}
