package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MeKo-Tech/polished/internal/color"
	"github.com/MeKo-Tech/polished/internal/expr"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// stdoutIsTerminal reports whether colour previews should be drawn.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

type amountCommand struct {
	name  string
	arg   string
	short string
	run   func(string, color.Input) (string, error)
}

var amountCommands = []amountCommand{
	{"adjust-hue", "degree", "Rotate the hue of a colour", color.AdjustHue[string]},
	{"saturate", "amount", "Increase the saturation of a colour", color.Saturate[string]},
	{"desaturate", "amount", "Decrease the saturation of a colour", color.Desaturate[string]},
	{"lighten", "amount", "Increase the lightness of a colour", color.Lighten[string]},
	{"darken", "amount", "Decrease the lightness of a colour", color.Darken[string]},
	{"tint", "percentage", "Mix a colour with white", color.Tint[string]},
	{"shade", "percentage", "Mix a colour with black", color.Shade[string]},
}

var parseCmd = &cobra.Command{
	Use:   "parse <color>",
	Short: "Normalize a CSS colour string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := color.ToColorString(color.Text(args[0]))
		if err != nil {
			return err
		}
		return printColor(cmd.OutOrStdout(), out)
	},
}

var hslCmd = &cobra.Command{
	Use:   "hsl <color>",
	Short: "Print a colour in HSL notation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := color.ParseToHSL(args[0])
		if err != nil {
			return err
		}
		return printColor(cmd.OutOrStdout(), color.ToHSLString(h))
	},
}

var mixCmd = &cobra.Command{
	Use:   "mix <weight> <color1> <color2>",
	Short: "Blend two colours; weight is the share of color1",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := color.Mix(args[0], color.Text(args[1]), color.Text(args[2]))
		if err != nil {
			return err
		}
		return printColor(cmd.OutOrStdout(), out)
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a colour expression, e.g. \"tint 0.25 #00f\"",
	Long: "Evaluate a colour expression. Supported operations:\n\n  " +
		strings.Join(usages(), "\n  "),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := expr.Eval(strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printColor(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd, hslCmd, allowNegativeArgs(mixCmd), evalCmd)

	for _, ac := range amountCommands {
		run := ac.run
		rootCmd.AddCommand(allowNegativeArgs(&cobra.Command{
			Use:   fmt.Sprintf("%s <%s> <color>", ac.name, ac.arg),
			Short: ac.short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := run(args[0], color.Text(args[1]))
				if err != nil {
					return err
				}
				return printColor(cmd.OutOrStdout(), out)
			},
		}))
	}
}

func usages() []string {
	var out []string
	for _, name := range expr.Ops() {
		u, _ := expr.Usage(name)
		out = append(out, u)
	}
	return out
}

// printColor writes a result line, preceded by a colour block on terminals.
func printColor(w io.Writer, out string) error {
	if stdoutIsTerminal() {
		if c, err := color.ParseToRGB(out); err == nil {
			out = preview(c) + " " + out
		}
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func preview(c color.RGB) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("      ")
}
