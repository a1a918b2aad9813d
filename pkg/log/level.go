package log

import (
	"fmt"
	"strings"
)

// Level is a host log severity.
type Level int8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
)

var levelNames = [...]string{
	LevelTrace:    "TRACE",
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarn:     "WARN",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

// Levels returns every severity in increasing order.
func Levels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCritical}
}

func (l Level) Valid() bool {
	return l >= LevelTrace && l <= LevelCritical
}

// String returns the uppercase name of the level.
func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("LEVEL(%d)", int8(l))
	}
	return levelNames[l]
}

// ParseLevel parses a level name, ignoring case. "warning" and "fatal" are
// accepted as aliases of WARN and CRITICAL so configuration files written
// for other tools keep working.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL", "FATAL":
		return LevelCritical, nil
	}
	return LevelInfo, fmt.Errorf("invalid log level: %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid log level: %d", int8(l))
	}
	return []byte(strings.ToLower(l.String())), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
