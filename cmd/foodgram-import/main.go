// Command foodgram-import loads the ingredient reference catalog from a
// CSV file or URL into the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlazarev/foodgram/internal/config"
	fgHttp "github.com/mlazarev/foodgram/internal/http"
	"github.com/mlazarev/foodgram/internal/importer"
	"github.com/mlazarev/foodgram/internal/log"
	"github.com/mlazarev/foodgram/internal/setup"
)

func main() {
	source := flag.String("source", "", "CSV path or http(s) URL with name,measurement_unit rows")
	timeout := flag.Duration("timeout", 5*time.Minute, "import timeout")
	flag.Parse()

	logger := log.New(nil)

	if *source == "" {
		fmt.Fprintln(os.Stderr, "usage: foodgram-import -source <path or URL>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	conf, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := setup.Database(ctx, conf)
	if err != nil {
		logger.Error("failed to setup database", slog.Any("error", err))
		os.Exit(1)
	}

	httpConfig := fgHttp.DefaultConfig()
	httpConfig.Logger = logger
	client := fgHttp.New(httpConfig)

	inserted, err := importer.ImportIngredients(ctx, db, client, *source)
	if err != nil {
		logger.Error("import failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("import complete", slog.Int64("inserted", inserted))
}
