package engine

import (
	"github.com/lintang-b-s/Windnav/pkg/costfunction"
	"github.com/lintang-b-s/Windnav/pkg/graphbuilder"
	"github.com/lintang-b-s/Windnav/pkg/wind"
	"github.com/spf13/viper"
)

type Config struct {
	SamplingInterval   float64 // seconds between the previous and current snapshot
	WindInfluence      float64
	Connectivity       string
	GridStep           float64 // degrees
	ProximityThreshold float64 // L1 degrees
	MaxProximityNodes  int
	GraphCacheSize     int
}

func DefaultConfig() Config {
	return Config{
		SamplingInterval:   wind.DefaultSamplingInterval,
		WindInfluence:      costfunction.DefaultWindInfluence,
		Connectivity:       graphbuilder.GRID,
		GridStep:           0.01,
		ProximityThreshold: 5.0,
		MaxProximityNodes:  5000,
		GraphCacheSize:     8,
	}
}

// ConfigFromViper. expects util.SetDefaults to have run.
func ConfigFromViper() Config {
	return Config{
		SamplingInterval:   viper.GetFloat64("SAMPLING_INTERVAL_SECONDS"),
		WindInfluence:      viper.GetFloat64("WIND_INFLUENCE"),
		Connectivity:       viper.GetString("CONNECTIVITY"),
		GridStep:           viper.GetFloat64("GRID_STEP"),
		ProximityThreshold: viper.GetFloat64("PROXIMITY_THRESHOLD"),
		MaxProximityNodes:  viper.GetInt("MAX_PROXIMITY_NODES"),
		GraphCacheSize:     viper.GetInt("GRAPH_CACHE_SIZE"),
	}
}
