package watcher

import (
	"fmt"
	"strings"

	"github.com/DziubanMaciej/CheckMate/pkg/clientstate"
	"github.com/DziubanMaciej/CheckMate/pkg/runner"
)

// Classify turns a command's result into the status a watcher reports.
// A command that never ran is always an error, regardless of mode.
func Classify(mode Mode, res runner.Result) clientstate.Status {
	if !res.Executed {
		return errorStatus("Command was not executed. " + res.StdoutText)
	}

	switch mode {
	case OneLineError:
		return classifyOneLineError(res.StdoutText)
	case MultiLineError:
		return classifyMultiLineError(res.StdoutText)
	case ExitCode:
		return classifyExitCode(res.ExitCode)
	case OneLineErrorExitCode:
		return classifyOneLineErrorExitCode(res.ExitCode, res.StdoutText)
	default:
		return errorStatus(fmt.Sprintf("unknown watch mode %v", mode))
	}
}

func nonEmptyLines(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func classifyOneLineError(stdout string) clientstate.Status {
	lines := nonEmptyLines(stdout)
	if len(lines) == 0 {
		return ok()
	}
	return errorStatus(lines[0])
}

func classifyMultiLineError(stdout string) clientstate.Status {
	lines := nonEmptyLines(stdout)
	if len(lines) == 0 {
		return ok()
	}
	return errorStatus(strings.Join(lines, "\n"))
}

func classifyExitCode(exitCode *int) clientstate.Status {
	if exitCode == nil {
		return errorStatus("Exit code is not available")
	}
	if *exitCode == 0 {
		return ok()
	}
	return errorStatus(fmt.Sprintf("Exit code was %d", *exitCode))
}

func classifyOneLineErrorExitCode(exitCode *int, stdout string) clientstate.Status {
	if exitCode == nil {
		return errorStatus("Exit code is not available")
	}
	if *exitCode == 0 {
		return ok()
	}
	lines := nonEmptyLines(stdout)
	if len(lines) > 0 {
		return errorStatus(lines[0])
	}
	return errorStatus(fmt.Sprintf("Exit code was %d", *exitCode))
}

func ok() clientstate.Status { return clientstate.Status{} }

func errorStatus(msg string) clientstate.Status {
	return clientstate.Status{IsError: true, Message: msg}
}
