package http

import (
	"context"

	http_router "github.com/lintang-b-s/Windnav/pkg/http/router"
	"github.com/lintang-b-s/Windnav/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/Windnav/pkg/http/server"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
	windService controllers.WindService,
	updates <-chan *snapshot.Pair,
) (*Server, error) {
	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(
			gctx, config,
			useRateLimit, routingService, windService, updates,
		)
	})
	s.g = g

	return s, nil
}

// Wait. blocks until the API goroutines return.
func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}
