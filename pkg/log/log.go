// Package log prints the status lines of the datagen CLI.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

const windowsOS = "windows"

// Result descrbiles the result of a task.
type Result bool

const (
	// Success means true result.
	Success Result = true
	// Failure means false result.
	Failure Result = false
)

// Cyan highlights urls and paths.
var Cyan = color.New(color.FgCyan, color.Bold, color.Underline).SprintFunc()

var logAsJSON bool

// EnableJSONFormat makes the status events be printed as JSON lines.
func EnableJSONFormat(enable bool) {
	logAsJSON = enable
}

type status struct {
	name string
	icon string
}

var (
	success = status{"success", "✅"}
	failure = status{"failure", "❌"}
	warning = status{"warning", "⚠️ "}
	pending = status{"pending", "⌛"}
	info    = status{"info", "ℹ️ "}
)

func event(w io.Writer, s status, fmtstr string, a ...any) {
	msg := fmt.Sprintf(fmtstr, a...)
	switch {
	case logAsJSON:
		logJSON(w, s.name, msg)
	case runtime.GOOS == windowsOS:
		fmt.Fprintf(w, "%s\n", msg)
	default:
		fmt.Fprintf(w, "%s  %s\n", s.icon, msg)
	}
}

// SuccessStatusEvent reports on a success event.
func SuccessStatusEvent(w io.Writer, fmtstr string, a ...any) { event(w, success, fmtstr, a...) }

// FailureStatusEvent reports on a failure event.
func FailureStatusEvent(w io.Writer, fmtstr string, a ...any) { event(w, failure, fmtstr, a...) }

// WarningStatusEvent reports on a warning event.
func WarningStatusEvent(w io.Writer, fmtstr string, a ...any) { event(w, warning, fmtstr, a...) }

// PendingStatusEvent reports on a pending event.
func PendingStatusEvent(w io.Writer, fmtstr string, a ...any) { event(w, pending, fmtstr, a...) }

// InfoStatusEvent reports status information on an event.
func InfoStatusEvent(w io.Writer, fmtstr string, a ...any) { event(w, info, fmtstr, a...) }

// Spinner is a spinner for long running tasks,
// the returned func stops it and reports the result.
func Spinner(w io.Writer, fmtstr string, a ...any) func(result Result) {
	msg := fmt.Sprintf(fmtstr, a...)
	var once sync.Once
	var s *spinner.Spinner

	if logAsJSON {
		logJSON(w, pending.name, msg)
	} else if runtime.GOOS == windowsOS {
		fmt.Fprintf(w, "%s\n", msg)
	} else {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
		_ = s.Color("cyan")
		s.Suffix = "  " + msg
		s.Start()
	}

	return func(result Result) {
		once.Do(func() {
			if s != nil {
				s.Stop()
			}
			if result {
				SuccessStatusEvent(w, "%s", msg)
			} else {
				FailureStatusEvent(w, "%s", msg)
			}
		})
	}
}

func logJSON(w io.Writer, status, message string) {
	type jsonLog struct {
		Time    time.Time `json:"time"`
		Status  string    `json:"status"`
		Message string    `json:"msg"`
	}

	l := jsonLog{
		Time:    time.Now().UTC(),
		Status:  status,
		Message: message,
	}
	jsonBytes, err := json.Marshal(&l)
	if err != nil {
		fmt.Fprintln(w, message)
		return
	}

	fmt.Fprintf(w, "%s\n", string(jsonBytes))
}
