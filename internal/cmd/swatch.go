package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/MeKo-Tech/polished/internal/color"
	"github.com/MeKo-Tech/polished/internal/swatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var swatchCmd = &cobra.Command{
	Use:   "swatch",
	Short: "Manage the SQLite swatch book",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("swatch-db") == "" {
			return errors.New("--swatch-db is required")
		}
		return nil
	},
}

var swatchImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import named colours from a YAML, JSON or TOML file",
	Long: `Import named colours into the swatch book. The file holds a "swatches"
map of name to colour string, plus optional book metadata:

  name: Brand
  author: Design team
  swatches:
    primary: "#ff6347"
    overlay: rgba(0, 0, 0, 0.5)

Every colour is validated before anything is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runSwatchImport,
}

var swatchGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a stored swatch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := swatch.OpenReader(viper.GetString("swatch-db"))
		if err != nil {
			return err
		}
		defer r.Close()

		s, err := r.Get(args[0])
		if err != nil {
			return err
		}
		return printColor(cmd.OutOrStdout(), s.Canonical())
	},
}

var swatchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored swatches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := swatch.OpenReader(viper.GetString("swatch-db"))
		if err != nil {
			return err
		}
		defer r.Close()

		list, err := r.List()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, s := range list {
			line := fmt.Sprintf("%-20s %s", s.Name, s.Canonical())
			if stdoutIsTerminal() {
				line = preview(s.Color) + " " + line
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(swatchCmd)
	swatchCmd.AddCommand(swatchImportCmd, swatchGetCmd, swatchListCmd)
}

func runSwatchImport(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}
	dbPath := viper.GetString("swatch-db")

	v := viper.New()
	v.SetConfigFile(args[0])
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	entries := v.GetStringMapString("swatches")
	if len(entries) == 0 {
		return fmt.Errorf("no swatches found in %s", args[0])
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := color.ParseToRGB(entries[name]); err != nil {
			return fmt.Errorf("swatch %q: %w", name, err)
		}
	}

	meta := swatch.Metadata{
		Name:        v.GetString("name"),
		Description: v.GetString("description"),
		Author:      v.GetString("author"),
		Version:     v.GetString("version"),
	}

	logger.Info("Importing swatches", "file", args[0], "db", dbPath, "count", len(names))

	w, err := swatch.New(dbPath, meta)
	if err != nil {
		return fmt.Errorf("failed to create swatch book: %w", err)
	}
	defer w.Close()

	for i, name := range names {
		s, err := w.Put(name, entries[name])
		if err != nil {
			return err
		}
		logger.Debug("Swatch staged", "name", s.Name, "color", s.Canonical())

		if (i+1)%swatch.DefaultBatchSize == 0 {
			logger.Info("Progress", "imported", i+1, "total", len(names))
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush swatches: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d swatches into %s\n", len(names), dbPath)
	return nil
}
