package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/ostolop/rent-vs-buy/internal/logging"
	"github.com/ostolop/rent-vs-buy/internal/server"
	"github.com/ostolop/rent-vs-buy/pkg/constants"
	"go.uber.org/zap"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	addr := flag.String("addr", "", "listen address override (e.g. :8080)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	if *addr != "" {
		cfg.Address = *addr
	}

	logger, err := logging.Initialize(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	handler := server.NewHandler(logger, cfg.BodySizeBytes(), cfg.AllowedOrigins, version)

	logger.Info("starting server",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.String("version", version),
		zap.Int64("maxBodySize", cfg.BodySizeBytes()),
	)

	if err := http.ListenAndServe(cfg.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
