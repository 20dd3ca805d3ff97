package main

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/dontpress/actuator"
	"github.com/lixenwraith/dontpress/config"
	"github.com/lixenwraith/dontpress/event"
	"github.com/lixenwraith/dontpress/input"
	"github.com/lixenwraith/dontpress/session"
	"github.com/lixenwraith/dontpress/status"
	"github.com/lixenwraith/dontpress/wincond"
)

// buttonEdge is one scripted button transition in game time
type buttonEdge struct {
	at   time.Duration
	down bool
}

// parsePresses reads a press script such as "1s,2.5s+300ms"
// Each entry presses at the given instant and releases after the optional
// hold, one step by default
func parsePresses(script string, step time.Duration) ([]buttonEdge, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, nil
	}

	var edges []buttonEdge
	lastRelease := time.Duration(-1)
	for i, entry := range strings.Split(script, ",") {
		entry = strings.TrimSpace(entry)
		atStr, holdStr, hasHold := strings.Cut(entry, "+")

		at, err := time.ParseDuration(strings.TrimSpace(atStr))
		if err != nil {
			return nil, errors.Wrapf(err, "press %d", i+1)
		}
		hold := step
		if hasHold {
			if hold, err = time.ParseDuration(strings.TrimSpace(holdStr)); err != nil {
				return nil, errors.Wrapf(err, "press %d hold", i+1)
			}
		}
		if at < 0 || hold <= 0 {
			return nil, errors.Errorf("press %d: instant must be non-negative and hold positive", i+1)
		}
		if at <= lastRelease {
			return nil, errors.Errorf("press %d at %v overlaps the previous hold", i+1, at)
		}

		edges = append(edges, buttonEdge{at: at, down: true}, buttonEdge{at: at + hold, down: false})
		lastRelease = at + hold
	}
	return edges, nil
}

// headlessResult summarizes a simulated session
type headlessResult struct {
	Outcome wincond.Outcome
	Clicks  int
	Elapsed time.Duration
	Frames  uint64
	Metrics []string
}

// runHeadless simulates a session at a fixed step with scripted presses
// Every port call is written to out, stamped with game time
// Stops at a terminal outcome or after duration
func runHeadless(cfg *config.Config, edges []buttonEdge, duration, step time.Duration, out io.Writer) (headlessResult, error) {
	if step <= 0 {
		return headlessResult{}, errors.Errorf("headless step must be positive, got %v", step)
	}
	if duration <= 0 {
		return headlessResult{}, errors.Errorf("headless duration must be positive, got %v", duration)
	}

	logger := log.New(out, "", 0)
	diag := event.Chain(event.LogHook(), func(d event.Diagnostic) {
		logger.Printf("diag %s", d)
	})

	latch := input.NewLatch(nil)
	ports := actuator.NewPorts(diag, actuator.NewLogSink(logger, true))
	reg := status.NewRegistry()

	sess, err := session.New(cfg, ports, latch, session.WithStatus(reg), session.WithDiagnostics(diag))
	if err != nil {
		return headlessResult{}, err
	}
	tagSession(sess.ID)
	log.Printf("headless session: step=%v duration=%v edges=%d", step, duration, len(edges))

	// Edges inside a frame are observed at its end instant
	next := 0
	for now := time.Duration(0); now < duration; now += step {
		end := now + step
		for next < len(edges) && edges[next].at <= end {
			latch.Button(edges[next].down, 0, 0)
			next++
		}
		logger.SetPrefix(fmt.Sprintf("%8.3fs ", end.Seconds()))
		if !sess.Tick(step) {
			break
		}
	}
	logger.SetPrefix("")

	return headlessResult{
		Outcome: sess.Outcome(),
		Clicks:  sess.ClickIndex(),
		Elapsed: sess.Elapsed(),
		Frames:  sess.Frames(),
		Metrics: reg.Lines(),
	}, nil
}

// printSummary writes the final state of a headless run
func printSummary(w io.Writer, r headlessResult) {
	fmt.Fprintf(w, "outcome: %s\n", r.Outcome)
	fmt.Fprintf(w, "clicks: %d\n", r.Clicks)
	fmt.Fprintf(w, "elapsed: %v over %d frames\n", r.Elapsed, r.Frames)
	for _, line := range r.Metrics {
		fmt.Fprintln(w, line)
	}
}
