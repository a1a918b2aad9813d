package rules

import (
	"context"
	"fmt"
	"os"

	"github.com/rubiojr/msilog/pkg/core"
	"github.com/rubiojr/msilog/pkg/log"
)

var logger = log.ForCategory("rules")

// Result is the outcome of one statement.
type Result struct {
	Statement Statement
	ExecID    string
	Status    int
	// Err is set when the microservice could not be called at all.
	Err error
}

// Failed reports whether the call was refused or returned a non-zero status.
func (r Result) Failed() bool {
	return r.Err != nil || r.Status != core.StatusOK
}

// Runner executes rule statements against a microservice registry.
type Runner struct {
	Registry *core.Registry
	RuleName string
	User     string
	// Allow, when set, vetoes calls to microservices it returns false for.
	Allow func(name string) bool
}

// Run executes stmts in order. Every statement gets its own execution
// context. A failing statement does not stop the run; a cancelled context
// does, and Run then returns the results gathered so far with ctx.Err().
func (r *Runner) Run(ctx context.Context, stmts []Statement) ([]Result, error) {
	results := make([]Result, 0, len(stmts))
	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, r.exec(stmt))
	}
	return results, nil
}

func (r *Runner) exec(stmt Statement) Result {
	if r.Allow != nil && !r.Allow(stmt.Name) {
		logger.Warnf("line %d: %s is disabled", stmt.Line, stmt.Name)
		return Result{
			Statement: stmt,
			Status:    core.SysInvalidInputParam,
			Err:       fmt.Errorf("microservice %s is disabled", stmt.Name),
		}
	}

	rei := core.NewRuleExecInfo(r.RuleName, r.User)
	status, err := r.Registry.Invoke(stmt.Name, stmt.Args, rei)
	if err != nil {
		logger.Errorf("line %d: %v", stmt.Line, err)
	} else {
		logger.Debugf("line %d: %s returned %d [%s]", stmt.Line, stmt, status, rei.ID)
	}
	return Result{Statement: stmt, ExecID: rei.ID, Status: status, Err: err}
}

// RunFile parses and runs the rule script at path.
func (r *Runner) RunFile(ctx context.Context, path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rule script: %w", err)
	}
	defer f.Close()

	stmts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return r.Run(ctx, stmts)
}
