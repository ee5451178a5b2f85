package script

import (
	"context"

	"github.com/dshills/csve/internal/action"
)

// Register installs the engine as the handler for script.run.
func (e *Engine) Register(d *action.Dispatcher) {
	d.Register(action.ScriptRun, e)
}

// Handle runs Args.Code and reports its value, if any, as the message.
func (e *Engine) Handle(ctx context.Context, a action.Action) action.Result {
	if a.Args.Code == "" {
		return action.NoOp()
	}
	out, err := e.Eval(ctx, a.Args.Code)
	if err != nil {
		return action.Error(err)
	}
	if out == "" {
		return action.Success()
	}
	return action.Successf("%s", out)
}
