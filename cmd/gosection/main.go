package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/philipparndt/gosection/internal/config"
	"github.com/philipparndt/gosection/internal/loader"
	"github.com/philipparndt/gosection/internal/logging"
	"github.com/philipparndt/gosection/version"
	"github.com/spf13/cobra"
)

// app is the state shared by all commands after flag parsing
type app struct {
	cfg    config.Config
	logger *slog.Logger
	stderr io.Writer
}

func (a *app) loader() loader.Loader {
	return loader.Loader{OpenSCAD: a.cfg.OpenSCAD, Logger: a.logger}
}

func newRootCmd() *cobra.Command {
	a := &app{stderr: os.Stderr}
	var (
		configPath   string
		vv, v, quiet bool
	)

	rootCmd := &cobra.Command{
		Use:   "gosection",
		Short: "Cross-sections of triangulated solids",
		Long: `gosection cuts STL and OpenSCAD models with a plane and reports the
resulting loops. Loops can be projected onto the front, top and side
drafting views and exported as GeoJSON, DXF or JSON.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Override(cmd.Flags()); err != nil {
				return err
			}
			level, err := logging.Resolve(vv, v, quiet, cfg.Log.Level)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(a.stderr, level)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	flags.BoolVar(&vv, "vv", false, "debug output")
	flags.BoolVarP(&v, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "only print errors")
	config.RegisterFlags(flags)

	rootCmd.AddCommand(
		newSectionCmd(a),
		newCylinderCmd(a),
		newConeCmd(a),
		newProjectCmd(a),
		newWatchCmd(a),
		newInfoCmd(a),
		newSolidCmd(a),
	)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
