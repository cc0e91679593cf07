package cmd

import (
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// negativeArg matches positional arguments such as -10, -0.5 or -.5em, which
// pflag would otherwise read as shorthand flags.
var negativeArg = regexp.MustCompile(`^-\.?\d`)

// allowNegativeArgs turns off cobra's flag parsing for c and parses its flags
// here instead, so negative numbers reach RunE as positional arguments.
func allowNegativeArgs(c *cobra.Command) *cobra.Command {
	validate := c.Args
	run := c.RunE

	c.DisableFlagParsing = true
	c.Args = cobra.ArbitraryArgs
	c.RunE = func(cmd *cobra.Command, args []string) error {
		// InheritedFlags merges the parents' persistent flags into cmd.Flags().
		cmd.InheritedFlags()
		fs := cmd.Flags()

		flags, positional := splitFlagArgs(fs, args)
		if err := fs.Parse(flags); err != nil {
			return err
		}
		if help, _ := fs.GetBool("help"); help {
			return cmd.Help()
		}
		if fs.Changed("config") {
			initConfig()
		}

		if validate != nil {
			if err := validate(cmd, positional); err != nil {
				return err
			}
		}
		return run(cmd, positional)
	}
	return c
}

// splitFlagArgs separates flag tokens (with their values) from positional
// arguments. Everything after "--" is positional.
func splitFlagArgs(fs *pflag.FlagSet, args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return flags, append(positional, args[i+1:]...)
		case a == "-" || !strings.HasPrefix(a, "-") || negativeArg.MatchString(a):
			positional = append(positional, a)
		default:
			flags = append(flags, a)
			if takesValue(fs, a) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}
	return flags, positional
}

// takesValue reports whether arg names a non-boolean flag whose value is the
// next token.
func takesValue(fs *pflag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	var f *pflag.Flag
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		f = fs.Lookup(name)
	} else if len(arg) == 2 {
		f = fs.ShorthandLookup(arg[1:])
	}
	return f != nil && f.NoOptDefVal == ""
}
