package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"

	"github.com/lintang-b-s/Windnav/pkg/engine"
	"github.com/lintang-b-s/Windnav/pkg/http"
	"github.com/lintang-b-s/Windnav/pkg/http/usecases"
	"github.com/lintang-b-s/Windnav/pkg/logger"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
	"github.com/lintang-b-s/Windnav/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	batchWorkers = flag.Int("batch_workers", runtime.NumCPU(), "number of goroutines solving batch route queries")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	source, err := newSource(logger)
	if err != nil {
		panic(err)
	}
	store := snapshot.NewStore()
	refresher := snapshot.NewRefresher(source, store, viper.GetDuration("REFRESH_INTERVAL"), logger)

	routingEngine, err := engine.NewEngine(store, engine.ConfigFromViper(), logger)
	if err != nil {
		panic(err)
	}

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	go func() {
		_ = refresher.Run(ctx)
	}()

	updates, unsubscribe := store.Subscribe(1)

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine, *batchWorkers)
	windService := usecases.NewWindService(logger, routingEngine)
	if _, err := api.Use(ctx, logger, viper.GetBool("USE_RATE_LIMIT"), routingService, windService, updates); err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("Windnav Routing Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("API stopped with error", zap.Error(err))
	}
	unsubscribe()
}

func newSource(log *zap.Logger) (snapshot.Source, error) {
	switch kind := viper.GetString("SNAPSHOT_SOURCE"); kind {
	case "http":
		retry := snapshot.DefaultRetryConfig()
		retry.MaxRetries = viper.GetInt("FETCH_MAX_RETRIES")
		return snapshot.NewHTTPSource(
			viper.GetString("SNAPSHOT_PREVIOUS_URL"),
			viper.GetString("SNAPSHOT_CURRENT_URL"),
			viper.GetDuration("FETCH_TIMEOUT"),
			viper.GetInt("FETCH_REQUESTS_PER_MINUTE"),
			retry, log,
		), nil
	case "file":
		return snapshot.NewFileSource(viper.GetString("SNAPSHOT_PREVIOUS_FILE"), viper.GetString("SNAPSHOT_CURRENT_FILE")), nil
	default:
		return nil, fmt.Errorf("unknown SNAPSHOT_SOURCE %q", kind)
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
