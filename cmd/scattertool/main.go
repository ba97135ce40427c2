// scattertool builds scatter meshes from a point cloud and exports them.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/scattermesh/internal/config"
	"github.com/Faultbox/scattermesh/internal/logger"
	"github.com/Faultbox/scattermesh/internal/scatter"
	"github.com/Faultbox/scattermesh/pkg/formats"
	"github.com/Faultbox/scattermesh/pkg/math"
	"github.com/Faultbox/scattermesh/pkg/primitives"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "info":
		err = cmdInfo(cfg)
	case "instances", "ls":
		err = cmdInstances(cfg)
	case "export", "x":
		err = cmdExport(cfg)
	case "grid":
		err = cmdGrid(rest)
	case "save-config":
		err = cmdSaveConfig(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scattertool - scatter mesh builder

Usage:
  scattertool [flags] <command> [args]

Commands:
  info                          Build and show geometry totals
  instances                     List built mesh instances
  export                        Write the built meshes as OBJ (-o path)
  grid <nx> <ny> <nz> <step> <out.xyz>
                                Write a regular grid of points
  save-config [path]            Write the effective config as YAML

Flags:
  --config <file>   YAML config (default ./scatter.yaml)
  --points <file>   XYZ point file
  --height <h>      Primitive height
  --level <n>       Subdivision level
  --shape <name>    Primitive shape (tetrahedra, cuboid)
  --explode         One mesh per point instead of a fused mesh
  --debug           Debug logging

Examples:
  scattertool info
  scattertool --points cloud.xyz --explode instances
  scattertool --points cloud.xyz -o cloud.obj export
  scattertool grid 10 10 10 0.5 cloud.xyz`)
}

// build creates the aggregator described by cfg.
func build(cfg *config.Config) (*scatter.Aggregator, error) {
	points := cfg.Scatter.ScatterPoints()
	if cfg.Scatter.PointsFile != "" {
		loaded, err := formats.LoadXYZ(cfg.Scatter.PointsFile)
		if err != nil {
			return nil, err
		}
		points = loaded
	}

	gen, err := primitives.Lookup(cfg.Scatter.Shape)
	if err != nil {
		return nil, err
	}

	logger.Info("building scatter mesh",
		zap.Int("points", len(points)),
		zap.String("shape", cfg.Scatter.Shape),
		zap.Bool("join", cfg.Scatter.JoinMode))

	return scatter.New(
		scatter.WithPoints(points),
		scatter.WithHeight(cfg.Scatter.Height),
		scatter.WithLevel(cfg.Scatter.Level),
		scatter.WithJoinMode(cfg.Scatter.JoinMode),
		scatter.WithGenerator(gen),
	)
}

func cmdInfo(cfg *config.Config) error {
	agg, err := build(cfg)
	if err != nil {
		return err
	}

	mode := "exploded"
	if agg.JoinMode() {
		mode = "fused"
	}
	st := agg.Stats()
	ps := scatter.DefaultAttributes.PipelineState()

	fmt.Printf("Shape:      %s (height %g, level %d)\n", cfg.Scatter.Shape, agg.Height(), agg.Level())
	fmt.Printf("Points:     %d\n", len(agg.Points()))
	fmt.Printf("Mode:       %s\n", mode)
	fmt.Printf("Instances:  %d\n", st.Instances)
	fmt.Printf("Vertices:   %d\n", st.Vertices)
	fmt.Printf("Faces:      %d\n", st.Faces)
	fmt.Printf("TexCoords:  %d\n", st.TexCoords)
	fmt.Printf("Pipeline:   topology=%v cull=%v depth=%v\n",
		ps.Primitive.Topology, ps.Primitive.CullMode, ps.DepthCompare)
	return nil
}

func cmdInstances(cfg *config.Config) error {
	agg, err := build(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%-6s %-28s %8s %8s\n", "ID", "ANCHOR", "VERTS", "FACES")
	for _, inst := range agg.Instances() {
		a := inst.Anchor()
		fmt.Printf("%-6s %-28s %8d %8d\n",
			inst.ID(),
			fmt.Sprintf("(%g, %g, %g)", a.X, a.Y, a.Z),
			inst.Mesh().VertexCount(),
			inst.Mesh().FaceCount())
	}
	return nil
}

func cmdExport(cfg *config.Config) error {
	agg, err := build(cfg)
	if err != nil {
		return err
	}

	var objects []formats.OBJObject
	for _, inst := range agg.Instances() {
		objects = append(objects, formats.OBJObject{Name: "instance_" + inst.ID(), Mesh: inst.Mesh()})
	}
	if err := formats.SaveOBJ(cfg.Export.Output, objects...); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Export.Output, err)
	}

	st := agg.Stats()
	logger.Info("exported", zap.String("path", cfg.Export.Output), zap.Int("instances", st.Instances))
	fmt.Printf("Wrote %d instance(s), %d vertices, %d faces to %s\n",
		st.Instances, st.Vertices, st.Faces, cfg.Export.Output)
	return nil
}

func cmdGrid(args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("usage: scattertool grid <nx> <ny> <nz> <step> <out.xyz>")
	}

	var dims [3]int
	for i := range dims {
		n, err := strconv.Atoi(args[i])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid grid dimension %q", args[i])
		}
		dims[i] = n
	}
	step, err := strconv.ParseFloat(args[3], 32)
	if err != nil || step <= 0 {
		return fmt.Errorf("invalid grid step %q", args[3])
	}

	points := gridPoints(dims, float32(step))

	if err := writeXYZFile(args[4], points); err != nil {
		return err
	}

	fmt.Printf("Wrote %d points to %s\n", len(points), args[4])
	return nil
}

// writeXYZFile writes points to path, reporting the close error.
func writeXYZFile(path string, points []math.Vec3) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := formats.WriteXYZ(f, points); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// gridPoints lays out dims[0]*dims[1]*dims[2] points, x varying fastest.
func gridPoints(dims [3]int, step float32) []math.Vec3 {
	points := make([]math.Vec3, 0, dims[0]*dims[1]*dims[2])
	for z := 0; z < dims[2]; z++ {
		for y := 0; y < dims[1]; y++ {
			for x := 0; x < dims[0]; x++ {
				points = append(points, math.V3(float32(x)*step, float32(y)*step, float32(z)*step))
			}
		}
	}
	return points
}

func cmdSaveConfig(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Printf("Saved config to %s\n", args[0])
		return nil
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("Saved config to %s\n", config.ConfigDir())
	return nil
}
