package config

import (
	"flag"
	"math"
)

// noHeight marks the height flag as unset so any explicit value, even an
// invalid one, reaches Validate.
var noHeight = math.NaN()

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagHeight  = flag.Float64("height", noHeight, "Primitive height")
	flagLevel   = flag.Int("level", -1, "Primitive subdivision level")
	flagExplode = flag.Bool("explode", false, "Build one mesh per point instead of a fused mesh")
	flagJoin    = flag.Bool("join", false, "Build one fused mesh (overridden by --explode)")
	flagShape   = flag.String("shape", "", "Primitive shape (tetrahedra, cuboid)")
	flagPoints  = flag.String("points", "", "Path to an XYZ point file")
	flagOutput  = flag.String("o", "", "Export output path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if !math.IsNaN(*flagHeight) {
		cfg.Scatter.Height = float32(*flagHeight)
	}
	if *flagLevel >= 0 {
		cfg.Scatter.Level = *flagLevel
	}
	if *flagJoin {
		cfg.Scatter.JoinMode = true
	}
	if *flagExplode {
		cfg.Scatter.JoinMode = false
	}
	if *flagShape != "" {
		cfg.Scatter.Shape = *flagShape
	}
	if *flagPoints != "" {
		cfg.Scatter.PointsFile = *flagPoints
	}
	if *flagOutput != "" {
		cfg.Export.Output = *flagOutput
	}
}
