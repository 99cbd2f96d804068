package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/platform"
)

// ErrUnknownCommand is returned for action names that map to no command.
var ErrUnknownCommand = errors.New("command: unknown command")

// errNoOp lets a handler finish without effect and without a notification.
var errNoOp = errors.New("command: nothing to do")

// Handler runs one command.
type Handler func(ctx context.Context, env *Env, args []string) error

// Status is the outcome of a dispatch.
type Status uint8

const (
	StatusOK Status = iota
	StatusNoOp
	StatusCancelled
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusCancelled:
		return "cancelled"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result describes what a dispatched command did.
type Result struct {
	Command Command
	Status  Status
	Err     error
	// Message is the alert body shown for errors.
	Message string
}

// failure carries the user-facing message a handler wants shown for err.
type failure struct {
	title   string
	message string
	err     error
}

func (f *failure) Error() string {
	if f.err == nil {
		return f.message
	}
	return f.message + ": " + f.err.Error()
}

func (f *failure) Unwrap() error { return f.err }

func fail(message string, err error) error {
	return &failure{title: titleError, message: message, err: err}
}

func notice(message string) error {
	return &failure{title: titleNotice, message: message}
}

// Dispatcher routes commands to handlers and turns their failures into
// notifications. Nothing is retried.
type Dispatcher struct {
	env      *Env
	handlers [commandCount]Handler
}

// NewDispatcher creates a dispatcher with the built-in handler table.
func NewDispatcher(env *Env) *Dispatcher {
	d := &Dispatcher{env: env}
	for c, h := range builtinHandlers() {
		d.handlers[c] = h
	}
	for _, c := range All() {
		if d.handlers[c] == nil {
			logger.Warnf("Dispatcher: no built-in handler for %q", c)
		}
	}
	return d
}

// Register replaces the handler of a command.
func (d *Dispatcher) Register(c Command, h Handler) error {
	if c <= Unknown || c >= commandCount {
		return fmt.Errorf("%w: %d", ErrUnknownCommand, int(c))
	}
	d.handlers[c] = h
	return nil
}

// Handles reports whether c has a handler.
func (d *Dispatcher) Handles(c Command) bool {
	return c > Unknown && c < commandCount && d.handlers[c] != nil
}

// DispatchName parses an action name and dispatches it.
func (d *Dispatcher) DispatchName(ctx context.Context, name string, args ...string) Result {
	c, ok := Parse(name)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownCommand, name)
		d.env.Notifier.Toast(err.Error())
		return Result{Status: StatusError, Err: err, Message: err.Error()}
	}
	return d.Dispatch(ctx, c, args...)
}

// Dispatch runs c. Cancellation is silent; every other failure is reported to
// the user through the notifier and returned in the Result.
func (d *Dispatcher) Dispatch(ctx context.Context, c Command, args ...string) Result {
	if !d.Handles(c) {
		err := fmt.Errorf("%w: %v", ErrUnknownCommand, c)
		return Result{Command: c, Status: StatusError, Err: err, Message: err.Error()}
	}

	logger.DebugTagf("command", "dispatch %s %v", c, args)
	err := d.handlers[c](ctx, d.env, args)

	switch {
	case err == nil:
		return Result{Command: c, Status: StatusOK}
	case errors.Is(err, platform.ErrCancelled):
		logger.DebugTagf("command", "%s cancelled", c)
		return Result{Command: c, Status: StatusCancelled}
	case errors.Is(err, errNoOp):
		return Result{Command: c, Status: StatusNoOp}
	}

	title, message := describe(err)
	logger.Warnf("Command %s failed: %v", c, err)
	d.env.Notifier.Alert(ctx, title, message)
	return Result{Command: c, Status: StatusError, Err: err, Message: message}
}

// describe builds the alert title and body for a handler error.
func describe(err error) (title, message string) {
	title, message = titleError, err.Error()

	var f *failure
	if errors.As(err, &f) {
		title, message = f.title, f.message
	}
	if code, ok := platform.Code(err); ok {
		message = fmt.Sprintf("%s. %s", message, platform.Message(code))
	}
	return strings.ToUpper(title), message
}
