package main

import (
	"fmt"

	"github.com/philipparndt/gosection/pkg/section"
	"github.com/spf13/cobra"
)

func newConeCmd(a *app) *cobra.Command {
	var (
		plane     planeFlags
		halfAngle float64
		axis      string
	)
	cmd := &cobra.Command{
		Use:   "cone",
		Short: "Classify the conic section of a cone and a plane",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plane.plane()
			if err != nil {
				return err
			}
			if halfAngle <= 0 || halfAngle >= 90 {
				return fmt.Errorf("--half-angle must be between 0 and 90 degrees")
			}
			ax, err := parseVector(axis)
			if err != nil {
				return fmt.Errorf("--axis: %w", err)
			}
			if ax.IsZero() {
				return fmt.Errorf("--axis must not be zero")
			}

			kind := section.ClassifyCone(degToRad(halfAngle), ax, p)
			a.logger.Debug("cone classified", "half_angle", halfAngle, "axis", ax, "normal", p.Normal, "kind", kind)
			fmt.Fprintln(cmd.OutOrStdout(), kind)
			return nil
		},
	}
	plane.register(cmd.Flags())
	cmd.Flags().Float64Var(&halfAngle, "half-angle", 30, "cone half-angle in degrees")
	cmd.Flags().StringVar(&axis, "axis", "0,0,1", "cone axis direction")
	return cmd
}
