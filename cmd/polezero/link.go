package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/polezero/pkg/adapters/query"
	"github.com/aretw0/polezero/pkg/codec"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Print the page URL for a set of poles and zeros",
	Example: `  polezero link --pole 0.9,45 --pole 0.9,-45 --zero 1,180
  polezero link --base http://localhost:8080 --zero 1,0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		poleArgs, _ := cmd.Flags().GetStringArray("pole")
		zeroArgs, _ := cmd.Flags().GetStringArray("zero")
		base, _ := cmd.Flags().GetString("base")

		c := domain.Empty()
		if c.Poles, err = parsePoints(poleArgs); err != nil {
			return fmt.Errorf("--pole: %w", err)
		}
		if c.Zeros, err = parsePoints(zeroArgs); err != nil {
			return fmt.Errorf("--zero: %w", err)
		}
		for _, kind := range []domain.Kind{domain.Pole, domain.Zero} {
			if idx := c.OutOfRange(kind); len(idx) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s %v outside the editor ranges\n", kind, idx)
			}
		}

		src, err := query.Parse(base, cfg.Publisher())
		if err != nil {
			return fmt.Errorf("invalid --base: %w", err)
		}
		if err := src.Save(cmd.Context(), codec.Encode(c)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), src.Location())
		return nil
	},
}

// parsePoints reads "magnitude,phase" pairs.
func parsePoints(values []string) ([]domain.ComplexPoint, error) {
	points := make([]domain.ComplexPoint, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%q: want magnitude,phase", v)
		}
		m, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: bad magnitude: %w", v, err)
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: bad phase: %w", v, err)
		}
		points = append(points, domain.Point(m, p))
	}
	return points, nil
}

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.Flags().StringArray("pole", nil, "Pole as magnitude,phase in degrees (repeatable)")
	linkCmd.Flags().StringArray("zero", nil, "Zero as magnitude,phase in degrees (repeatable)")
	linkCmd.Flags().String("base", "", "Scheme and host to prefix, e.g. http://localhost:8080")
}
