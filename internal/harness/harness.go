// Package harness runs conformance scenarios and records verdicts.
//
// S is the scenario context handed to every scenario function. It plays the
// role testing.T plays in ordinary Go tests: it accumulates warnings and
// captured diagnostic context, and aborts the scenario on the first failed
// assertion. Two disjoint failure classes are kept apart: conformance
// failures (the runtime under test violated its contract) and harness errors
// (assumed-healthy scaffolding misbehaved).
package harness

import (
	"fmt"
	"io"
	"time"

	"github.com/xrcheck/xrcheck/internal/config"
	"github.com/xrcheck/xrcheck/internal/xr"
)

// Outcome classifies a scenario verdict.
type Outcome string

const (
	// OutcomePass means every assertion held.
	OutcomePass Outcome = "pass"

	// OutcomeFail means the runtime under test violated its contract.
	OutcomeFail Outcome = "fail"

	// OutcomeError means harness scaffolding failed; the runtime's
	// conformance was not determined.
	OutcomeError Outcome = "error"
)

// Verdict is the result of one scenario run.
type Verdict struct {
	Scenario string
	Outcome  Outcome
	Failures []string
	Warnings []string
	Elapsed  time.Duration
}

// Func is a scenario body. It drives the runtime through S and returns
// normally on success; assertion failures abort it early.
type Func func(s *S)

// S is the per-scenario context.
type S struct {
	name       string
	rt         xr.Runtime
	cfg        config.Config
	viewConfig xr.ViewConfigType
	out        io.Writer
	verbose    bool

	captures []string
	warnings []string
	failures []string
	errored  bool
}

// scenarioAbort is the sentinel recovered by Run when an assertion fails.
type scenarioAbort struct{}

// Runtime returns the runtime under test.
func (s *S) Runtime() xr.Runtime { return s.rt }

// Config returns the run configuration.
func (s *S) Config() config.Config { return s.cfg }

// Timeouts returns the configured wait budgets.
func (s *S) Timeouts() config.Timeouts { return s.cfg.Timeouts }

// ViewConfig returns the selected primary view configuration type.
func (s *S) ViewConfig() xr.ViewConfigType { return s.viewConfig }

// Graphics reports whether a rendering backend is in use for this run.
func (s *S) Graphics() bool { return !s.cfg.Headless }

// Logf writes progress output when the run is verbose.
func (s *S) Logf(format string, args ...any) {
	if s.verbose && s.out != nil {
		fmt.Fprintf(s.out, "    [%s] %s\n", s.name, fmt.Sprintf(format, args...))
	}
}

// Capturef records diagnostic context. Captures are attached to any later
// failure for post-mortem reporting and are otherwise discarded.
func (s *S) Capturef(format string, args ...any) {
	s.captures = append(s.captures, fmt.Sprintf(format, args...))
}

// Warnf records a non-fatal conformance concern, such as a runtime returning
// an accepted but less-specific error code.
func (s *S) Warnf(format string, args ...any) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

// Failf records a conformance failure and aborts the scenario. Failures are
// never retried and never downgraded.
func (s *S) Failf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	for _, c := range s.captures {
		msg += "\n    captured: " + c
	}
	s.failures = append(s.failures, msg)
	panic(scenarioAbort{})
}

// Errorf records a harness-internal failure and aborts the scenario with an
// error verdict. Use it for scaffolding calls whose behavior is not under
// test.
func (s *S) Errorf(format string, args ...any) {
	s.errored = true
	s.Failf("harness error: "+format, args...)
}

// Require asserts cond, failing the scenario with the formatted message
// otherwise.
func (s *S) Require(cond bool, format string, args ...any) {
	if !cond {
		s.Failf(format, args...)
	}
}

// RequireResult asserts that op returned want.
func (s *S) RequireResult(op string, got, want xr.Result) {
	if got != want {
		s.Failf("%s returned %v, want %v", op, got, want)
	}
}

// RequireSuccess asserts that op returned unqualified success.
func (s *S) RequireSuccess(op string, got xr.Result) {
	s.RequireResult(op, got, xr.Success)
}

// MustInfra asserts that an assumed-healthy infrastructure call succeeded,
// reporting a harness error otherwise.
func (s *S) MustInfra(op string, got xr.Result) {
	if !got.Unqualified() {
		s.Errorf("%s returned %v", op, got)
	}
}

// RunOptions configures a scenario run.
type RunOptions struct {
	Config  config.Config
	Verbose bool
	Out     io.Writer
}

// Run executes one scenario against a runtime and returns its verdict.
func Run(sc Scenario, rt xr.Runtime, opts RunOptions) Verdict {
	s := &S{
		name:    sc.Name,
		rt:      rt,
		cfg:     opts.Config,
		out:     opts.Out,
		verbose: opts.Verbose,
	}

	viewConfig, err := xr.ParseViewConfigType(opts.Config.ViewConfig)
	if err != nil {
		return Verdict{
			Scenario: sc.Name,
			Outcome:  OutcomeError,
			Failures: []string{err.Error()},
		}
	}
	s.viewConfig = viewConfig

	start := time.Now()
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(scenarioAbort); !ok {
					panic(r)
				}
			}
		}()
		sc.Fn(s)
	}()

	v := Verdict{
		Scenario: sc.Name,
		Failures: s.failures,
		Warnings: s.warnings,
		Elapsed:  time.Since(start),
	}
	switch {
	case s.errored:
		v.Outcome = OutcomeError
	case len(s.failures) > 0:
		v.Outcome = OutcomeFail
	default:
		v.Outcome = OutcomePass
	}
	return v
}
