package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/MeKo-Tech/polished/internal/expr"
	"github.com/MeKo-Tech/polished/internal/swatch"
	"github.com/MeKo-Tech/polished/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate a file of colour expressions in parallel",
	Long: `Evaluate one colour expression per line, e.g.

  tint 0.25 #00f
  brand-light = lighten 0.1 #ff6347

Blank lines and lines starting with "//" are skipped. Results are printed in
input order. A line of the form "name = expression" names its result; named
results are stored in the swatch book when --swatch-db is set.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("input", "i", "-", "Expression file (- for stdin)")
	batchCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().Bool("progress", false, "Show progress bar on stderr")
	batchCmd.Flags().Bool("allow-failures", false, "Exit successfully even if some expressions fail")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"batch.input", "input"},
		{"batch.workers", "workers"},
		{"batch.progress", "progress"},
		{"batch.allow_failures", "allow-failures"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, batchCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

// namedTask pairs a pool task with the swatch name its result is stored under.
type namedTask struct {
	worker.Task
	Name string
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := viper.GetString("batch.input")
	workers := viper.GetInt("batch.workers")
	showProgress := viper.GetBool("batch.progress")
	allowFailures := viper.GetBool("batch.allow_failures")
	swatchDB := viper.GetString("swatch-db")

	if logger == nil {
		initLogging()
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var r io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	named, err := readTasks(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if len(named) == 0 {
		return fmt.Errorf("no expressions found in %s", input)
	}

	logger.Info("Starting batch evaluation",
		"input", input,
		"expressions", len(named),
		"workers", workers,
		"swatch_db", swatchDB,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tasks := make([]worker.Task, len(named))
	names := make(map[int]string, len(named))
	for i, nt := range named {
		tasks[i] = nt.Task
		if nt.Name != "" {
			names[nt.Line] = nt.Name
		}
	}

	progress := worker.NewProgress(len(tasks), showProgress)
	pool := worker.New(worker.Config{
		Workers: workers,
		Evaluator: worker.EvaluatorFunc(func(_ context.Context, e string) (string, error) {
			return expr.Eval(e)
		}),
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	var book *swatch.Writer
	if swatchDB != "" {
		book, err = swatch.New(swatchDB, swatch.Metadata{Name: "polished batch"})
		if err != nil {
			return fmt.Errorf("failed to open swatch book: %w", err)
		}
		defer book.Close()
	}

	out := cmd.OutOrStdout()
	var failedCount, stored int
	for _, res := range results {
		if res.Err != nil {
			failedCount++
			logger.Error("Expression failed", "line", res.Task.Line, "expr", res.Task.Expr, "error", res.Err)
			continue
		}
		logger.Debug("Expression evaluated", "line", res.Task.Line, "elapsed", res.Elapsed)

		name := names[res.Task.Line]
		if name == "" {
			fmt.Fprintln(out, res.Output)
			continue
		}
		fmt.Fprintf(out, "%s = %s\n", name, res.Output)
		if book != nil {
			if _, err := book.Put(name, res.Output); err != nil {
				return fmt.Errorf("failed to store swatch %q: %w", name, err)
			}
			stored++
		}
	}

	logger.Info(progress.Summary())

	if book != nil {
		if err := book.Flush(); err != nil {
			return fmt.Errorf("failed to flush swatch book: %w", err)
		}
		logger.Info("Swatch book updated", "path", swatchDB, "swatches", stored)
	}

	if failedCount > 0 && !allowFailures {
		return fmt.Errorf("%d expressions failed", failedCount)
	}
	return nil
}

// readTasks reads one expression per line, keeping 1-based line numbers.
func readTasks(r io.Reader) ([]namedTask, error) {
	var tasks []namedTask
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		name, e, ok := parseBatchLine(scanner.Text())
		if !ok {
			continue
		}
		tasks = append(tasks, namedTask{Task: worker.Task{Line: line, Expr: e}, Name: name})
	}
	return tasks, scanner.Err()
}

// parseBatchLine splits "name = expression" and reports false for blank and
// comment lines.
func parseBatchLine(s string) (name, e string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "//") {
		return "", "", false
	}
	if before, after, found := strings.Cut(s, "="); found {
		return strings.TrimSpace(before), strings.TrimSpace(after), true
	}
	return "", s, true
}
