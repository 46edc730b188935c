package scenario

import (
	"strings"
	"testing"
	"time"

	"github.com/xrcheck/xrcheck/internal/config"
	"github.com/xrcheck/xrcheck/internal/harness"
	"github.com/xrcheck/xrcheck/internal/xr"
	"github.com/xrcheck/xrcheck/internal/xr/fake"
)

// testConfig shortens the wait budgets so absence windows do not dominate
// test time. The polarity of every wait is unaffected.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Timeouts.Transition = config.Duration(5 * time.Second)
	cfg.Timeouts.Event = config.Duration(time.Second)
	cfg.Timeouts.NoEvent = config.Duration(100 * time.Millisecond)
	cfg.Timeouts.Interval = config.Duration(time.Millisecond)
	return cfg
}

// runScenario executes a registered scenario against a fake runtime with the
// given quirks.
func runScenario(t *testing.T, name string, quirks fake.Quirks) harness.Verdict {
	t.Helper()
	for _, sc := range harness.Scenarios() {
		if sc.Name == name {
			return harness.Run(sc, fake.New(quirks), harness.RunOptions{Config: testConfig()})
		}
	}
	t.Fatalf("scenario %q is not registered", name)
	return harness.Verdict{}
}

func requirePass(t *testing.T, v harness.Verdict) {
	t.Helper()
	if v.Outcome != harness.OutcomePass {
		t.Fatalf("%s outcome = %v, failures: %q", v.Scenario, v.Outcome, v.Failures)
	}
}

func requireFailContaining(t *testing.T, v harness.Verdict, substr string) {
	t.Helper()
	if v.Outcome != harness.OutcomeFail {
		t.Fatalf("%s outcome = %v, want %v (failures: %q)", v.Scenario, v.Outcome, harness.OutcomeFail, v.Failures)
	}
	for _, f := range v.Failures {
		if strings.Contains(f, substr) {
			return
		}
	}
	t.Fatalf("no failure mentions %q: %q", substr, v.Failures)
}

func TestSessionState(t *testing.T) {
	t.Run("conformant runtime passes", func(t *testing.T) {
		requirePass(t, runScenario(t, "SessionState", fake.Quirks{}))
	})

	t.Run("idempotent across reruns", func(t *testing.T) {
		requirePass(t, runScenario(t, "SessionState", fake.Quirks{}))
		requirePass(t, runScenario(t, "SessionState", fake.Quirks{}))
	})

	t.Run("premature synchronized is caught", func(t *testing.T) {
		v := runScenario(t, "SessionState", fake.Quirks{PrematureSync: true})
		requireFailContaining(t, v, "premature progression from READY")
	})

	t.Run("premature idle is caught", func(t *testing.T) {
		v := runScenario(t, "SessionState", fake.Quirks{PrematureIdle: true})
		requireFailContaining(t, v, "premature progression from STOPPING")
	})

	t.Run("skipped state is caught", func(t *testing.T) {
		v := runScenario(t, "SessionState", fake.Quirks{SkipVisible: true})
		requireFailContaining(t, v, "unexpected session state")
	})

	t.Run("wrong end-session result is caught", func(t *testing.T) {
		v := runScenario(t, "SessionState", fake.Quirks{WrongEndResult: xr.ErrValidationFailure})
		requireFailContaining(t, v, "end-session in STOPPING")
	})
}

func TestRequestExitNotRunning(t *testing.T) {
	requirePass(t, runScenario(t, "RequestExitNotRunning", fake.Quirks{}))
}

func TestOutOfTurnCalls(t *testing.T) {
	t.Run("conformant runtime passes", func(t *testing.T) {
		requirePass(t, runScenario(t, "OutOfTurnCalls", fake.Quirks{}))
	})

	t.Run("blocking illegal wait-frame is caught", func(t *testing.T) {
		v := runScenario(t, "OutOfTurnCalls", fake.Quirks{SlowIllegalWaitFrame: 300 * time.Millisecond})
		requireFailContaining(t, v, "must return immediately")
	})
}

func TestLocateViews(t *testing.T) {
	t.Run("conformant runtime passes without warnings", func(t *testing.T) {
		v := runScenario(t, "LocateViews", fake.Quirks{})
		requirePass(t, v)
		if len(v.Warnings) != 0 {
			t.Errorf("unexpected warnings: %q", v.Warnings)
		}
	})

	t.Run("lenient rejection passes with warnings", func(t *testing.T) {
		v := runScenario(t, "LocateViews", fake.Quirks{LenientLocate: true})
		requirePass(t, v)
		if len(v.Warnings) == 0 {
			t.Error("lenient validation errors produced no warnings")
		}
	})
}

func TestSwapchainFormats(t *testing.T) {
	requirePass(t, runScenario(t, "SwapchainFormats", fake.Quirks{}))
}
