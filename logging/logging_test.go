package logging_test

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/caffeine-storm/shipyard/logging"
	"github.com/caffeine-storm/shipyard/logging/logtesting"
	"github.com/runningwild/glop/glog"
	. "github.com/smartystreets/goconvey/convey"
)

func parseSourceAttr(line string) (string, bool) {
	key := logging.CallerKey + "="
	idx := strings.LastIndex(line, key)
	if idx == -1 {
		return "", false
	}

	sourcePlus := line[idx+len(key):]
	parts := strings.SplitN(sourcePlus, ":", 2)
	if len(parts) != 2 {
		return "", false
	}

	return parts[0], true
}

func ShouldContainSourceRef(outputStream io.Reader, target string) string {
	outputBytes, err := io.ReadAll(outputStream)
	if err != nil {
		panic(fmt.Errorf("couldn't io.ReadAll: %w", err))
	}

	outputLines := bytes.Split(outputBytes, []byte("\n"))
	for _, line := range outputLines {
		sourceAttr, found := parseSourceAttr(string(line))
		if !found {
			continue
		}

		if strings.Contains(sourceAttr, target) {
			return ""
		}
	}

	return fmt.Sprintf("did not find %q amongst output %q", target, bytes.Join(outputLines, []byte{'\n'}))
}

func ShouldReference(actual interface{}, expected ...interface{}) string {
	lineReader, ok := actual.(io.Reader)
	if !ok {
		panic(fmt.Errorf("'actual' had wrong type: want io.Reader, got %T", actual))
	}

	srcRef, ok := expected[0].(string)
	if !ok {
		panic(fmt.Errorf("'expected[0]' had wrong type: want string, got %T", expected[0]))
	}

	return ShouldContainSourceRef(lineReader, srcRef)
}

func LoggingSpec() {
	Convey("the caller attribute in a log message", func() {
		buf := &bytes.Buffer{}
		reset := logging.Redirect(buf)
		logging.Info("a test message")
		reset()

		Convey("should reference the client code", func() {
			So(buf, ShouldReference, "logging/logging_test.go")
		})
	})

	Convey("nothing should leak to the default slog logger", func() {
		leaked := &bytes.Buffer{}
		oldDefault := slog.Default()
		slog.SetDefault(slog.New(slog.NewTextHandler(leaked, nil)))
		defer slog.SetDefault(oldDefault)

		buf := &bytes.Buffer{}
		reset := logging.Redirect(buf)
		logging.Info("a quiet message", "answer", 42)
		logging.ErrorLogger().Error("direct message")
		reset()

		So(buf.String(), ShouldContainSubstring, "a quiet message")
		So(buf.String(), ShouldContainSubstring, "direct message")
		So(leaked.String(), ShouldBeEmpty)
	})

	Convey("should collect output during tests", func() {
		lines := logtesting.CollectOutput(func() {
			logging.Error("collected message")
		})
		So(strings.Join(lines, "\n"), ShouldContainSubstring, "collected message")
	})

	Convey("debug messages are dropped at the default level", func() {
		lines := logtesting.CollectOutput(func() {
			logging.Debug("quiet message")
		})
		So(strings.Join(lines, "\n"), ShouldNotContainSubstring, "quiet message")
	})

	Convey("tracing should be supported inside a bracket", func() {
		lines := logtesting.CollectOutput(func() {
			logging.Bracket(glog.LevelTrace, func() {
				logging.Trace("a trace message")
			})
		})
		So(strings.Join(lines, "\n"), ShouldContainSubstring, "a trace message")
	})

	Convey("redirection should be resettable", func() {
		buf1 := &bytes.Buffer{}

		oldErrorLogger := logging.ErrorLogger()
		resetRedirect := logging.Redirect(buf1)

		oldErrorLogger.Error("oldErrorLogger message 1")
		logging.Error("logging.Error() message 1")

		resetRedirect()

		oldErrorLogger.Error("oldErrorLogger message 2")
		logging.Error("logging.Error() message 2")

		bufferedOut := buf1.String()
		So(bufferedOut, ShouldContainSubstring, "logging.Error() message 1")
		So(bufferedOut, ShouldNotContainSubstring, "message 2")
		So(bufferedOut, ShouldNotContainSubstring, "oldErrorLogger")
	})
}

func TestLogging(t *testing.T) {
	Convey("logging.{Debug,Info,Warn,Error,Trace} levels", t, LoggingSpec)
}
