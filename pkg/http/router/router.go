package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lintang-b-s/Windnav/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/Windnav/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/Windnav/pkg/http/server"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
	"github.com/spf13/viper"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "net/http/pprof"
)

type API struct {
	log *zap.Logger
	hub *controllers.Hub
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			Windnav API
//	@version		1.0
//	@description	Wind-aware routing over the positions of drifting weather balloons.

//	@contact.name	Lintang Birda Saputra
//	@contact.url	_
//	@contact.email	lintang.birda.saputra@mail.ugm.ac.id

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Handler(
	config http_server.Config,
	useRateLimit bool,
	routingService controllers.RoutingService,
	windService controllers.WindService,
) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")

	controllers.New(routingService, api.log).Routes(group)
	controllers.NewWindAPI(windService, api.log).Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log)}
	if useRateLimit {
		mwChain = append(mwChain, Limit(viper.GetFloat64("RATE_LIMIT_RPS"), viper.GetInt("RATE_LIMIT_BURST")))
	}
	if config.Timeout > 0 {
		mwChain = append(mwChain, Timeout(config.Timeout))
	}
	mainMwChain := alice.New(mwChain...).Then(router)

	// the websocket feed bypasses the chain: it hijacks the connection and outlives the request timeout
	api.hub = controllers.NewHub(windService, api.log)
	wsRouter := httprouter.New()
	wsRouter.GET("/ws/wind", api.hub.ServeWS)

	mux := http.NewServeMux()
	mux.Handle("/ws/", alice.New(api.recoverPanic, RealIP).Then(wsRouter))
	mux.Handle("/", mainMwChain)
	return mux
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,

	useRateLimit bool,
	routingService controllers.RoutingService,
	windService controllers.WindService,
	updates <-chan *snapshot.Pair,
) error {
	api.log.Info("Run httprouter API")

	handler := api.Handler(config, useRateLimit, routingService, windService)
	go api.hub.Run(ctx, updates)

	srv := http_server.New(ctx, handler, config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
