package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Stats is a point-in-time view of batch progress.
type Stats struct {
	Completed int
	Failed    int
	Total     int
	Elapsed   time.Duration
}

// Succeeded is the number of completed expressions that did not fail.
func (s Stats) Succeeded() int { return s.Completed - s.Failed }

// Rate is the number of completed expressions per second.
func (s Stats) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Completed) / s.Elapsed.Seconds()
}

// ETA estimates the time left at the current rate. Zero when unknown.
func (s Stats) ETA() time.Duration {
	rate := s.Rate()
	if rate <= 0 || s.Completed >= s.Total {
		return 0
	}
	return time.Duration(float64(s.Total-s.Completed)/rate) * time.Second
}

// Progress tracks and displays batch evaluation progress.
type Progress struct {
	startTime time.Time
	output    io.Writer
	total     int
	completed int
	failed    int
	mu        sync.RWMutex
	enabled   bool
}

// NewProgress creates a progress tracker drawing on stderr when enabled.
func NewProgress(total int, enabled bool) *Progress {
	return &Progress{
		total:     total,
		startTime: time.Now(),
		output:    os.Stderr,
		enabled:   enabled,
	}
}

// Update records the completion of a task.
func (p *Progress) Update(completed, total, failed int) {
	p.mu.Lock()
	p.completed = completed
	p.total = total
	p.failed = failed
	p.mu.Unlock()

	if p.enabled {
		p.Print()
	}
}

// Callback returns a ProgressFunc suitable for use with Pool.Config.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

// Snapshot returns the current counters.
func (p *Progress) Snapshot() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Stats{
		Completed: p.completed,
		Failed:    p.failed,
		Total:     p.total,
		Elapsed:   time.Since(p.startTime),
	}
}

const barWidth = 30

func bar(completed, total int) string {
	filled := barWidth
	if total > 0 {
		filled = min(barWidth, completed*barWidth/total)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// Print draws the current progress line.
func (p *Progress) Print() {
	s := p.Snapshot()

	line := fmt.Sprintf("\r[%s] %d/%d expressions", bar(s.Completed, s.Total), s.Completed, s.Total)
	if s.Failed > 0 {
		line += fmt.Sprintf(" (%d failed)", s.Failed)
	}
	line += fmt.Sprintf(" - %.1f expr/sec", s.Rate())
	if eta := s.ETA(); eta > 0 {
		line += " - ETA: " + formatDuration(eta)
	}
	if s.Completed == s.Total {
		line += " - Done in " + formatDuration(s.Elapsed)
	}

	// Pad to clear previous line content
	line += "          "

	fmt.Fprint(p.output, line)
}

// Done prints the final progress and a newline.
func (p *Progress) Done() {
	if p.enabled {
		p.Print()
		fmt.Fprintln(p.output)
	}
}

// Summary returns a one-line summary of the completed work.
func (p *Progress) Summary() string {
	s := p.Snapshot()
	return fmt.Sprintf("Evaluated %d/%d expressions (%d failed) in %s (%.1f expr/sec)",
		s.Succeeded(), s.Total, s.Failed, formatDuration(s.Elapsed), s.Rate())
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", hours, mins)
}
