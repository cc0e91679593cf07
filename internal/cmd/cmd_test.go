package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger = newLogger(io.Discard, "text", false)
	os.Exit(m.Run())
}

// resetFlags restores every flag to its default so runs do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestColorCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"parse", "rgb(255, 0, 0)"}, "#ff0000"},
		{[]string{"parse", "hsla(0, 100%, 50%, 0.5)"}, "rgba(255,0,0,0.5)"},
		{[]string{"hsl", "#ff0000"}, "hsl(0,100%,50%)"},
		{[]string{"adjust-hue", "180", "#448"}, "#888844"},
		{[]string{"adjust-hue", "-10", "#f00"}, "#ff002b"},
		{[]string{"saturate", "0.2", "#CCCD64"}, "#e0e250"},
		{[]string{"tint", "0.25", "#00f"}, "#bfbfff"},
		{[]string{"shade", "0.5", "white"}, "#808080"},
		{[]string{"mix", "0.5", "#f00", "#00f"}, "#800080"},
		{[]string{"eval", "tint", "0.25", "blue"}, "#bfbfff"},
		{[]string{"eval", "mix 0.5 rgb(255, 0, 0) #00f"}, "#800080"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestColorCommands_Errors(t *testing.T) {
	_, err := execute(t, "", "parse", "not-a-color")
	assert.Error(t, err)

	_, err = execute(t, "", "tint", "lots", "#fff")
	assert.Error(t, err)

	_, err = execute(t, "", "tint", "0.5")
	assert.Error(t, err)
}

func TestNegativeArgs(t *testing.T) {
	want, err := execute(t, "", "eval", "mix -0.5 #f00 #00f")
	require.NoError(t, err)
	out, err := execute(t, "", "mix", "-0.5", "#f00", "#00f")
	require.NoError(t, err)
	assert.Equal(t, want, out)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"adjust-hue", "--verbose", "-10", "#f00"}, "#ff002b\n"},
		{[]string{"adjust-hue", "--", "-10", "#f00"}, "#ff002b\n"},
		{[]string{"style", "modular-scale", "-1", "--ratio", "2"}, "\"0.5em\"\n"},
		{[]string{"style", "modular-scale", "--ratio=2", "-2"}, "\"0.25em\"\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	out, err = execute(t, "", "adjust-hue", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "adjust-hue <degree> <color>")

	_, err = execute(t, "", "adjust-hue", "-10")
	assert.Error(t, err)

	_, err = execute(t, "", "adjust-hue", "--bogus", "-10", "#f00")
	assert.ErrorContains(t, err, "bogus")
}

func TestSplitFlagArgs(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("base", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.StringP("ratio", "r", "", "")

	tests := []struct {
		args       []string
		flags      []string
		positional []string
	}{
		{[]string{"-10", "#f00"}, nil, []string{"-10", "#f00"}},
		{[]string{"-.5", "-v", "red"}, []string{"-v"}, []string{"-.5", "red"}},
		{[]string{"--base", "-1em", "2"}, []string{"--base", "-1em"}, []string{"2"}},
		{[]string{"-r", "2", "--verbose", "-3"}, []string{"-r", "2", "--verbose"}, []string{"-3"}},
		{[]string{"--base=2em", "--", "--verbose"}, []string{"--base=2em"}, []string{"--verbose"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			flags, positional := splitFlagArgs(fs, tt.args)
			assert.Equal(t, tt.flags, flags)
			assert.Equal(t, tt.positional, positional)
		})
	}
}

func TestPrintColor_Terminal(t *testing.T) {
	orig := stdoutIsTerminal
	t.Cleanup(func() { stdoutIsTerminal = orig })

	var buf bytes.Buffer
	stdoutIsTerminal = func() bool { return false }
	require.NoError(t, printColor(&buf, "#ff0000"))
	assert.Equal(t, "#ff0000\n", buf.String())

	buf.Reset()
	stdoutIsTerminal = func() bool { return true }
	require.NoError(t, printColor(&buf, "#ff0000"))
	assert.True(t, strings.HasSuffix(buf.String(), " #ff0000\n"))
	assert.Greater(t, buf.Len(), len("#ff0000\n"))
}

func TestStyleCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"style", "rem", "24px"}, `"1.5rem"`},
		{[]string{"style", "em", "24px", "12px"}, `"2em"`},
		{[]string{"style", "modular-scale", "2"}, `"1.776889em"`},
		{
			[]string{"style", "between", "20px", "100px", "--min-screen", "400px", "--max-screen", "1000px"},
			`"calc(-33.33333333333334px + 13.333333333333334vw)"`,
		},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestStyleCommands_Maps(t *testing.T) {
	out, err := execute(t, "", "style", "directional", "padding", "1px", "2px")
	require.NoError(t, err)
	assert.JSONEq(t, `{"paddingTop":"1px","paddingRight":"2px","paddingBottom":"1px","paddingLeft":"2px"}`, out)

	out, err = execute(t, "", "style", "cover", "10px")
	require.NoError(t, err)
	assert.JSONEq(t, `{"position":"absolute","top":"10px","right":"10px","bottom":"10px","left":"10px"}`, out)

	out, err = execute(t, "", "style", "fluid-range",
		"--prop", "padding:20px:100px", "--min-screen", "400px", "--max-screen", "1000px")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "20px", got["padding"])
	assert.Contains(t, got, "@media (min-width: 1000px)")
}

func TestFluidProps(t *testing.T) {
	props, err := fluidProps([]string{"padding:20px:100px", " margin : 5px : 25px "})
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "margin", props[1].Prop)
	assert.Equal(t, "25px", props[1].ToSize)

	_, err = fluidProps([]string{"padding:20px"})
	assert.Error(t, err)
}

func TestParseBatchLine(t *testing.T) {
	tests := []struct {
		input string
		name  string
		expr  string
		ok    bool
	}{
		{"tint 0.25 #00f", "", "tint 0.25 #00f", true},
		{"  brand = lighten 0.1 red ", "brand", "lighten 0.1 red", true},
		{"// comment", "", "", false},
		{"   ", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, e, ok := parseBatchLine(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.expr, e)
		})
	}
}

func TestReadTasks_LineNumbers(t *testing.T) {
	tasks, err := readTasks(strings.NewReader("// header\n\ntint 0.25 #00f\naccent = complement red\n"))
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, 3, tasks[0].Line)
	assert.Equal(t, 4, tasks[1].Line)
	assert.Equal(t, "accent", tasks[1].Name)
}

func TestBatchCommand(t *testing.T) {
	input := "tint 0.25 #00f\n// skipped\n\naccent = complement red\nadjust-hue 180 #448\n"

	out, err := execute(t, input, "batch", "--workers", "2")
	require.NoError(t, err)
	assert.Equal(t, "#bfbfff\naccent = #00ffff\n#888844\n", out)
}

func TestBatchCommand_Failures(t *testing.T) {
	input := "tint 0.25 #00f\nparse nope\n"

	_, err := execute(t, input, "batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 expressions failed")

	out, err := execute(t, input, "batch", "--allow-failures")
	require.NoError(t, err)
	assert.Equal(t, "#bfbfff\n", out)
}

func TestBatchAndSwatchCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "book.db")

	_, err := execute(t, "brand = tint 0.25 #00f\n", "batch", "--swatch-db", dbPath)
	require.NoError(t, err)

	out, err := execute(t, "", "swatch", "get", "BRAND", "--swatch-db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "#bfbfff\n", out)

	_, err = execute(t, "", "swatch", "get", "missing", "--swatch-db", dbPath)
	assert.Error(t, err)
}

func TestBatchCommand_CountsStoredSwatches(t *testing.T) {
	var logs bytes.Buffer
	orig := logger
	logger = newLogger(&logs, "json", false)
	t.Cleanup(func() { logger = orig })

	dbPath := filepath.Join(t.TempDir(), "book.db")
	input := "brand = tint 0.25 #00f\nbroken = parse nope\n"

	_, err := execute(t, input, "batch", "--allow-failures", "--swatch-db", dbPath)
	require.NoError(t, err)

	var updated map[string]any
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec["msg"] == "Swatch book updated" {
			updated = rec
		}
	}
	require.NotNil(t, updated)
	assert.EqualValues(t, 1, updated["swatches"])

	_, err = execute(t, "", "swatch", "get", "broken", "--swatch-db", dbPath)
	assert.Error(t, err)
}

func TestSwatchImport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "book.db")
	file := filepath.Join(dir, "brand.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`name: Brand
author: Design team
swatches:
  primary: "#ff6347"
  overlay: rgba(0, 0, 0, 0.5)
`), 0o644))

	out, err := execute(t, "", "swatch", "import", file, "--swatch-db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 swatches")

	out, err = execute(t, "", "swatch", "list", "--swatch-db", dbPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"overlay", "rgba(0,0,0,0.5)"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"primary", "#ff6347"}, strings.Fields(lines[1]))

	_, err = execute(t, "", "swatch", "list")
	assert.ErrorContains(t, err, "--swatch-db is required")
}

func TestSwatchImport_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "book.db")
	file := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("swatches:\n  good: red\n  bad: nope\n"), 0o644))

	_, err := execute(t, "", "swatch", "import", file, "--swatch-db", dbPath)
	assert.ErrorContains(t, err, `"bad"`)

	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "book must not be created when validation fails")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "json", true)
	l.Debug("hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])

	buf.Reset()
	newLogger(&buf, "text", false).Debug("hidden")
	assert.Empty(t, buf.String())
}
