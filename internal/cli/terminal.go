package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vijay-prabhu/applicant-triage/internal/engine"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
)

// Spinner frames for animated progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Terminal provides terminal-aware progress output on stderr
type Terminal struct {
	IsTerminal   bool
	UseColor     bool
	out          io.Writer
	spinnerIndex int
}

// NewTerminal creates a Terminal writing to w. Color and line rewriting are
// only used when w is a TTY.
func NewTerminal(w io.Writer) *Terminal {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isTerminal(f)
	}
	return &Terminal{
		IsTerminal: tty,
		UseColor:   tty,
		out:        w,
	}
}

// ClearLine clears the current line (terminal only)
func (t *Terminal) ClearLine() {
	if t.IsTerminal {
		fmt.Fprint(t.out, "\r\033[K")
	}
}

// Spinner returns the next spinner frame
func (t *Terminal) Spinner() string {
	if !t.IsTerminal {
		return ""
	}
	frame := spinnerFrames[t.spinnerIndex]
	t.spinnerIndex = (t.spinnerIndex + 1) % len(spinnerFrames)
	return frame
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// Progress returns an engine callback that renders progress lines. On a TTY
// the line is rewritten in place; otherwise only phase changes and the final
// count are printed. The callback is safe for concurrent use.
func (t *Terminal) Progress() engine.ProgressCallback {
	var mu sync.Mutex
	var lastPhase engine.ProgressPhase
	return func(p engine.Progress) {
		mu.Lock()
		defer mu.Unlock()

		var msg string
		switch p.Phase {
		case engine.PhaseDeduplicating:
			msg = fmt.Sprintf("%s Deduplicating %d submissions", t.Spinner(), p.Total)
			if p.Description != "" && p.Current == p.Total {
				msg = p.Description
			}
		case engine.PhaseScoring:
			eta := ""
			if d := p.ETA(); d > 0 {
				eta = fmt.Sprintf(" (ETA: %s)", FormatETA(d))
			}
			msg = fmt.Sprintf("Scoring: %d/%d applicants (%d%%)%s", p.Current, p.Total, p.Percentage(), eta)
		}
		msg = t.Color(PhaseColor(p.Phase), msg)

		if t.IsTerminal {
			t.ClearLine()
			fmt.Fprint(t.out, msg)
		} else if p.Phase != lastPhase || p.Current == p.Total {
			fmt.Fprintln(t.out, msg)
		}
		lastPhase = p.Phase
	}
}

// FormatETA formats a duration as a human-readable ETA string
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}

// PhaseColor returns the color for a batch phase
func PhaseColor(phase engine.ProgressPhase) string {
	switch phase {
	case engine.PhaseDeduplicating:
		return ColorCyan
	case engine.PhaseScoring:
		return ColorGreen
	default:
		return ColorWhite
	}
}
