// Package msilog implements the msi_log microservice, which writes a rule
// supplied message to the host log at a rule supplied severity.
//
// Messages go to the "legacy" category. Problems with the call itself are
// reported on the "microservice" category at ERROR, and the caller receives
// SYS_INTERNAL_NULL_INPUT_ERR or SYS_INVALID_INPUT_PARAM.
package msilog

import (
	"github.com/rubiojr/msilog/pkg/core"
	"github.com/rubiojr/msilog/pkg/log"
)

const (
	// Name is the microservice name rules call.
	Name = "msi_log"
	// NumArgs is the number of declared parameters: level and text.
	NumArgs = 2

	LegacyCategory       = "legacy"
	MicroserviceCategory = "microservice"
)

// Emitter writes a message at a severity. *log.Logger implements it.
type Emitter interface {
	Log(level log.Level, msg string)
}

// severities maps uppercased level tokens to host levels.
var severities = map[string]log.Level{
	"TRACE":    log.LevelTrace,
	"DEBUG":    log.LevelDebug,
	"INFO":     log.LevelInfo,
	"WARN":     log.LevelWarn,
	"ERROR":    log.LevelError,
	"CRITICAL": log.LevelCritical,
}

// LevelFor returns the severity named by token, ignoring ASCII case.
func LevelFor(token string) (log.Level, bool) {
	level, ok := severities[upperASCII(token)]
	return level, ok
}

// Dispatcher validates msi_log arguments and forwards the message.
type Dispatcher struct {
	resolver core.ParamResolver
	out      Emitter
	diag     Emitter
}

// New returns a dispatcher writing messages to out and its own diagnostics
// to diag. A nil resolver means core.DefaultResolver.
func New(resolver core.ParamResolver, out, diag Emitter) *Dispatcher {
	if resolver == nil {
		resolver = core.DefaultResolver
	}
	return &Dispatcher{resolver: resolver, out: out, diag: diag}
}

// Dispatch logs the text held by textParam at the level held by levelParam.
// Nothing is logged to out unless every check passes.
func (d *Dispatcher) Dispatch(levelParam, textParam *core.MsParam, rei *core.RuleExecInfo) error {
	if levelParam == nil || textParam == nil || rei == nil {
		d.diag.Log(log.LevelError, "At least one input argument is null.")
		return core.NullInputError("at least one input argument is null")
	}

	token, okLevel := d.resolver.ResolveString(levelParam)
	text, okText := d.resolver.ResolveString(textParam)
	if !okLevel || !okText {
		d.diag.Log(log.LevelError, "Could not parse microservice parameter into a string.")
		return core.InvalidParameterError("could not parse microservice parameter into a string")
	}

	token = upperASCII(token)
	level, ok := severities[token]
	if !ok {
		d.diag.Log(log.LevelError, "Invalid log level was specified: "+token)
		return core.InvalidParameterError("invalid log level %q", token)
	}

	d.out.Log(level, text)
	return nil
}

// Call is the rule engine entry point. params holds the level and the text.
func (d *Dispatcher) Call(params []*core.MsParam, rei *core.RuleExecInfo) int {
	if len(params) != NumArgs {
		d.diag.Log(log.LevelError, "Invalid number of arguments.")
		return core.SysInvalidInputParam
	}
	return core.StatusCode(d.Dispatch(params[0], params[1], rei))
}

// upperASCII maps a-z to A-Z and leaves every other byte alone, so tokens
// such as "ınfo" never fold into a valid level.
func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func init() {
	core.RegisterPluginFactory(Name, Factory)
}

// Factory builds the msi_log table entry wired to the host log categories.
func Factory() (*core.TableEntry, error) {
	d := New(core.DefaultResolver, log.ForCategory(LegacyCategory), log.ForCategory(MicroserviceCategory))
	return core.NewTableEntry(Name, NumArgs, d.Call), nil
}
