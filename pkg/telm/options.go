package telm

import (
	"os"
	"time"
)

// Options configures a Program. The zero value is not meaningful; use
// defaultOptions, which derives some fields from the environment, and adjust
// fields through the fluent setters on Program.
type Options struct {
	// AltScreen enters the alternate screen buffer on startup, giving the
	// program a full-screen canvas that vanishes on exit.
	AltScreen bool
	// Mouse enables mouse capture.
	Mouse bool
	// BracketedPaste enables bracketed paste reporting.
	BracketedPaste bool
	// FocusChange enables focus change reporting.
	FocusChange bool
	// FPS caps the render cadence and bounds the poll timeout. It is
	// clamped to 1..120.
	FPS int
	// Accessible forces the non-interactive output path. Defaults to
	// whether $ACCESSIBLE is set.
	Accessible bool
	// RespectNoColor tells styling layers to honor $NO_COLOR. The runtime
	// itself never recolors view strings.
	RespectNoColor bool
	// ReduceMotion tells animated widgets to simplify. Defaults to whether
	// $REDUCE_MOTION is set.
	ReduceMotion bool
	// TickRate is the baseline wake interval for models that want periodic
	// updates without declaring subscriptions.
	TickRate time.Duration
}

const (
	defaultFPS      = 60
	minFPS          = 1
	maxFPS          = 120
	defaultTickRate = time.Second
)

func defaultOptions() Options {
	return Options{
		FPS:            defaultFPS,
		Accessible:     envSet("ACCESSIBLE"),
		RespectNoColor: true,
		ReduceMotion:   envSet("REDUCE_MOTION"),
		TickRate:       defaultTickRate,
	}
}

// frameDuration returns the wait bound implied by the FPS cap.
func (o Options) frameDuration() time.Duration {
	fps := o.FPS
	if fps < minFPS {
		fps = minFPS
	} else if fps > maxFPS {
		fps = maxFPS
	}
	return time.Second / time.Duration(fps)
}

// Environment variables any of which indicates a CI environment.
var ciEnvVars = []string{
	"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI",
	"TRAVIS", "JENKINS_URL", "BUILDKITE",
}

func inCI() bool {
	for _, name := range ciEnvVars {
		if envSet(name) {
			return true
		}
	}
	return false
}

func envSet(name string) bool {
	_, set := os.LookupEnv(name)
	return set
}
