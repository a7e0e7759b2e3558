package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/Windnav/pkg/engine"
	"github.com/lintang-b-s/Windnav/pkg/geo"
	"github.com/lintang-b-s/Windnav/pkg/logger"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
	"github.com/lintang-b-s/Windnav/pkg/util"
	"go.uber.org/zap"
)

var (
	previousPath = flag.String("previous", "./data/previous.json", "previous snapshot file (.json or .json.bz2)")
	currentPath  = flag.String("current", "./data/current.json", "current snapshot file (.json or .json.bz2)")
	from         = flag.String("from", "", "origin as lat,lon")
	to           = flag.String("to", "", "destination as lat,lon")
	connectivity = flag.String("connectivity", "", "grid or proximity, defaults to CONNECTIVITY")
)

type routeOutput struct {
	Route           [][2]float64 `json:"route"`
	TotalCost       *float64     `json:"total_cost"`
	OriginNode      [2]float64   `json:"origin_node"`
	DestinationNode [2]float64   `json:"destination_node"`
	Connectivity    string       `json:"connectivity"`
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	origin, err := parseLatLon(*from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	destination, err := parseLatLon(*to)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}

	if err := util.ReadConfig(); err != nil {
		return err
	}
	log, err := logger.New()
	if err != nil {
		return err
	}
	defer log.Sync()

	store := snapshot.NewStore()
	refresher := snapshot.NewRefresher(snapshot.NewFileSource(*previousPath, *currentPath), store, 0, log)
	if _, err := refresher.Refresh(context.Background()); err != nil {
		return err
	}

	routingEngine, err := engine.NewEngine(store, engine.ConfigFromViper(), log)
	if err != nil {
		return err
	}
	res, err := routingEngine.ShortestPath(origin, destination, *connectivity)
	if err != nil {
		return err
	}
	log.Debug("route solved", zap.Bool("found", res.Route.Found))

	out := routeOutput{
		OriginNode:      [2]float64{res.Origin.Lat, res.Origin.Lon},
		DestinationNode: [2]float64{res.Destination.Lat, res.Destination.Lon},
		Connectivity:    res.Connectivity,
	}
	if res.Route.Found {
		for _, c := range res.Route.Path {
			out.Route = append(out.Route, [2]float64{c.Lat, c.Lon})
		}
		cost := res.Route.TotalCost
		out.TotalCost = &cost
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func parseLatLon(s string) (geo.Coordinate, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Coordinate{}, fmt.Errorf("expected lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return geo.Coordinate{}, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return geo.Coordinate{}, err
	}
	return geo.NewCoordinate(lat, lon), nil
}
