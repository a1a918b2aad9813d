package rules

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/rubiojr/msilog/pkg/core"
)

// Statement is one microservice call in a rule script.
type Statement struct {
	Line int
	Name string
	Args []*core.MsParam
}

func (s Statement) String() string {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		switch {
		case a == nil:
			args[i] = "null"
		case a.Type == core.StrMsT:
			args[i] = strconv.Quote(fmt.Sprint(a.Value))
		default:
			args[i] = fmt.Sprint(a.Value)
		}
	}
	return s.Name + "(" + strings.Join(args, ", ") + ")"
}

// Parse reads a rule script. Each non-empty line that does not start with
// '#' is a call:
//
//	msi_log("INFO", "disk full");
//
// Arguments are double quoted strings, integers, or null for an absent
// parameter. The trailing semicolon is optional.
func Parse(r io.Reader) ([]Statement, error) {
	var stmts []Statement
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		stmt, err := parseStatement(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		stmt.Line = lineNo
		stmts = append(stmts, stmt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading rule script: %w", err)
	}
	return stmts, nil
}

func parseStatement(line string) (Statement, error) {
	line = strings.TrimSuffix(line, ";")
	line = strings.TrimSpace(line)

	open := strings.IndexByte(line, '(')
	if open < 0 || !strings.HasSuffix(line, ")") {
		return Statement{}, fmt.Errorf("expected name(args), got %q", line)
	}
	name := strings.TrimSpace(line[:open])
	if !validName(name) {
		return Statement{}, fmt.Errorf("invalid microservice name %q", name)
	}

	args, err := parseArgs(line[open+1 : len(line)-1])
	if err != nil {
		return Statement{}, fmt.Errorf("%s: %w", name, err)
	}
	return Statement{Name: name, Args: args}, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func parseArgs(s string) ([]*core.MsParam, error) {
	var args []*core.MsParam
	rest := strings.TrimSpace(s)
	if rest == "" {
		return args, nil
	}

	for {
		label := fmt.Sprintf("arg%d", len(args)+1)
		var (
			param *core.MsParam
			err   error
		)
		param, rest, err = parseArg(label, rest)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", len(args)+1, err)
		}
		args = append(args, param)

		rest = strings.TrimSpace(rest)
		if rest == "" {
			return args, nil
		}
		if rest[0] != ',' {
			return nil, fmt.Errorf("expected ',' after argument %d, got %q", len(args), rest)
		}
		rest = strings.TrimSpace(rest[1:])
	}
}

// parseArg consumes one argument from the front of s.
func parseArg(label, s string) (*core.MsParam, string, error) {
	switch {
	case s == "":
		return nil, "", fmt.Errorf("missing value")
	case s[0] == '"':
		quoted, err := strconv.QuotedPrefix(s)
		if err != nil {
			return nil, "", fmt.Errorf("bad string literal: %w", err)
		}
		value, err := strconv.Unquote(quoted)
		if err != nil {
			return nil, "", fmt.Errorf("bad string literal: %w", err)
		}
		return core.StrParam(label, value), s[len(quoted):], nil
	}

	end := strings.IndexByte(s, ',')
	if end < 0 {
		end = len(s)
	}
	token := strings.TrimSpace(s[:end])
	if token == "null" {
		return nil, s[end:], nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return nil, "", fmt.Errorf("expected string, integer or null, got %q", token)
	}
	return core.IntParam(label, n), s[end:], nil
}
