package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/polished/internal/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "CSS style helpers (unit conversion, modular scale, fluid sizing)",
	Long: `Style helpers print their result as JSON so the output can be piped into
other tools. Helpers that return a single value print a JSON string.`,
}

var remCmd = &cobra.Command{
	Use:   "rem <px> [base]",
	Short: "Convert pixels to rem (base defaults to 16px)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := style.Rem(args[0], optArg(args, 1))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var emCmd = &cobra.Command{
	Use:   "em <px> [base]",
	Short: "Convert pixels to em (base defaults to 16px)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := style.Em(args[0], optArg(args, 1))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var modularScaleCmd = &cobra.Command{
	Use:   "modular-scale <steps>",
	Short: "Step along a modular scale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid steps %q: %w", args[0], err)
		}
		out, err := style.ModularScale(steps, viper.GetString("style.modular_scale.base"), viper.GetString("style.modular_scale.ratio"))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var betweenCmd = &cobra.Command{
	Use:   "between <fromSize> <toSize>",
	Short: "Build a calc() value scaling between two sizes across the screen range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := style.Between(args[0], args[1], viper.GetString("style.min_screen"), viper.GetString("style.max_screen"))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var directionalCmd = &cobra.Command{
	Use:   "directional <property> [values...]",
	Short: "Expand a shorthand into per-side properties",
	Args:  cobra.RangeArgs(1, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), style.DirectionalProperty(args[0], args[1:]...))
	},
}

var coverCmd = &cobra.Command{
	Use:   "cover [offset]",
	Short: "Absolutely position an element over its container",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), style.Cover(optArg(args, 0)))
	},
}

var fluidRangeCmd = &cobra.Command{
	Use:   "fluid-range",
	Short: "Build fluid media queries for one or more properties",
	Long: `Build fallbacks plus media queries for properties given as
--prop name:fromSize:toSize (repeatable). Without --prop, the list is read from
the style.fluid_range key of the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		props, err := fluidProps(viper.GetStringSlice("style.fluid_range_props"))
		if err != nil {
			return err
		}
		if len(props) == 0 {
			if err := viper.UnmarshalKey("style.fluid_range", &props); err != nil {
				return fmt.Errorf("failed to read style.fluid_range: %w", err)
			}
		}
		out, err := style.FluidRange(props, viper.GetString("style.min_screen"), viper.GetString("style.max_screen"))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(styleCmd)
	styleCmd.AddCommand(remCmd, emCmd, allowNegativeArgs(modularScaleCmd), allowNegativeArgs(betweenCmd),
		directionalCmd, coverCmd, fluidRangeCmd)

	styleCmd.PersistentFlags().String("min-screen", style.DefaultMinScreen, "Smallest screen width for fluid helpers")
	styleCmd.PersistentFlags().String("max-screen", style.DefaultMaxScreen, "Largest screen width for fluid helpers")
	modularScaleCmd.Flags().String("base", "1em", "Base value of the scale")
	modularScaleCmd.Flags().String("ratio", "perfectFourth", "Ratio name or number")
	fluidRangeCmd.Flags().StringArray("prop", nil, "Property as name:fromSize:toSize (repeatable)")

	bindFlags := []struct {
		key  string
		cmd  *cobra.Command
		flag string
	}{
		{"style.min_screen", styleCmd, "min-screen"},
		{"style.max_screen", styleCmd, "max-screen"},
		{"style.modular_scale.base", modularScaleCmd, "base"},
		{"style.modular_scale.ratio", modularScaleCmd, "ratio"},
		{"style.fluid_range_props", fluidRangeCmd, "prop"},
	}

	for _, bf := range bindFlags {
		flag := bf.cmd.Flags().Lookup(bf.flag)
		if flag == nil {
			flag = bf.cmd.PersistentFlags().Lookup(bf.flag)
		}
		if err := viper.BindPFlag(bf.key, flag); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func optArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// fluidProps parses name:fromSize:toSize triples.
func fluidProps(specs []string) ([]style.FluidProp, error) {
	props := make([]style.FluidProp, 0, len(specs))
	for _, s := range specs {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid --prop %q: expected name:fromSize:toSize", s)
		}
		props = append(props, style.FluidProp{
			Prop:     strings.TrimSpace(parts[0]),
			FromSize: strings.TrimSpace(parts[1]),
			ToSize:   strings.TrimSpace(parts[2]),
		})
	}
	return props, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
