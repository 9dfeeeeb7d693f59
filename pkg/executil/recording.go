package executil

import (
	"context"
	"io"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Dir   string
	Cmd   string
	Args  []string
	Stdin string
}

// RecordingExecutor captures commands for testing.
// Configure Handler, Outputs or Errors to control return values.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Handler, when set, computes the output for every command and takes
	// precedence over Outputs and Errors.
	Handler func(cmd RecordedCommand) ([]byte, error)

	// Outputs maps command names to their output.
	Outputs map[string][]byte

	// Errors maps command names to their error.
	Errors map[string]error
}

// RunPipe records the command and its stdin and returns the configured output/error.
func (e *RecordingExecutor) RunPipe(ctx context.Context, dir string, stdin io.Reader, cmd string, args ...string) ([]byte, error) {
	var input string
	if stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		input = string(data)
	}

	rec := RecordedCommand{Dir: dir, Cmd: cmd, Args: args, Stdin: input}

	e.mu.Lock()
	e.Commands = append(e.Commands, rec)
	handler := e.Handler
	var out []byte
	var err error
	if e.Outputs != nil {
		out = e.Outputs[cmd]
	}
	if e.Errors != nil {
		err = e.Errors[cmd]
	}
	e.mu.Unlock()

	if handler != nil {
		return handler(rec)
	}

	return out, err
}

// Recorded returns a copy of the recorded commands.
func (e *RecordingExecutor) Recorded() []RecordedCommand {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]RecordedCommand, len(e.Commands))
	copy(out, e.Commands)
	return out
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
