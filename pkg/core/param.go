package core

import "fmt"

// Parameter type tags, named after the host's msParam types.
const (
	StrMsT    = "STR_PI"
	IntMsT    = "INT_PI"
	DoubleMsT = "DOUBLE_PI"
	BufLenMsT = "BUF_LEN_PI"
)

// MsParam is a parameter handle passed to a microservice. A nil *MsParam is
// an absent handle.
type MsParam struct {
	Label string
	Type  string
	Value any
}

// StrParam returns a string parameter.
func StrParam(label, s string) *MsParam {
	return &MsParam{Label: label, Type: StrMsT, Value: s}
}

// IntParam returns an integer parameter.
func IntParam(label string, n int) *MsParam {
	return &MsParam{Label: label, Type: IntMsT, Value: n}
}

func (p *MsParam) String() string {
	if p == nil {
		return "<null>"
	}
	return fmt.Sprintf("%s(%s)=%v", p.Label, p.Type, p.Value)
}

// ParseForStr extracts the string held by p. Only non-nil STR_PI
// parameters carrying a string value resolve; everything else reports false.
func ParseForStr(p *MsParam) (string, bool) {
	if p == nil || p.Type != StrMsT {
		return "", false
	}
	s, ok := p.Value.(string)
	return s, ok
}

// ParamResolver turns a parameter handle into text.
type ParamResolver interface {
	ResolveString(p *MsParam) (string, bool)
}

// ResolverFunc adapts a function to ParamResolver.
type ResolverFunc func(p *MsParam) (string, bool)

func (f ResolverFunc) ResolveString(p *MsParam) (string, bool) {
	return f(p)
}

// DefaultResolver resolves parameters with ParseForStr.
var DefaultResolver ParamResolver = ResolverFunc(ParseForStr)
