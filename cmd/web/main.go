package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/tomz197/lanebattle/internal/config"
	"github.com/tomz197/lanebattle/internal/logging"
	"github.com/tomz197/lanebattle/internal/web"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.ConfigPathEnv+")")
	noDemo := flag.Bool("no-demo", false, "serve only the landing page")
	flag.Parse()

	cfg, err := config.Load(config.ConfigPath(*configPath))
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)
	if logging.ParseLevel(cfg.LogLevel) > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := web.RouterOptions{
		SSHHost: cfg.Web.SSHDisplayHost,
		Rules:   cfg.Rules(),
		Logger:  logger,
	}
	if !*noDemo {
		demo := web.NewDemo(web.DemoOptions{Rules: cfg.Rules(), Logger: logger})
		go demo.Run(ctx)
		b := web.NewBroadcaster(demo, 100*time.Millisecond, logger)
		go b.Run(ctx)
		opts.Source = demo
		opts.Broadcaster = b
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Web.Host, cfg.Web.Port),
		Handler:           web.SetupRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting web server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}
