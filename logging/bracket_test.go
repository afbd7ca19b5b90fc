package logging_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/caffeine-storm/shipyard/logging"
	"github.com/caffeine-storm/shipyard/logging/logtesting"
	"github.com/runningwild/glop/glog"
	"github.com/stretchr/testify/assert"
)

const canary = "bilge-canary"

func TestLoggingBracket(t *testing.T) {
	for _, tc := range []struct {
		name    string
		bracket slog.Level
		log     func(string, ...interface{})
		visible bool
	}{
		{"error hides trace", slog.LevelError, logging.Trace, false},
		{"error hides warn", slog.LevelError, logging.Warn, false},
		{"warn shows error", slog.LevelWarn, logging.Error, true},
		{"debug shows debug", slog.LevelDebug, logging.Debug, true},
		{"trace shows info", glog.LevelTrace, logging.Info, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := logtesting.CollectOutput(func() {
				logging.Bracket(tc.bracket, func() {
					tc.log(canary, "case", tc.name)
				})
			})
			assert.Equal(t, tc.visible, strings.Contains(strings.Join(out, "\n"), canary))
		})
	}
}

func TestBracketRestoresLevel(t *testing.T) {
	out := logtesting.CollectOutput(func() {
		logging.TraceBracket(func() {
			logging.Trace(canary, "inside", true)
		})
		logging.Trace(canary, "inside", false)
	})

	joined := strings.Join(out, "\n")
	assert.Contains(t, joined, "inside=true")
	assert.NotContains(t, joined, "inside=false")
}
