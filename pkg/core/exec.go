package core

import (
	"time"

	"github.com/google/uuid"
)

// RuleExecInfo describes the rule execution a microservice runs in.
// Microservices receive it on every call and must not retain it.
type RuleExecInfo struct {
	ID        string
	RuleName  string
	User      string
	StartedAt time.Time
}

// NewRuleExecInfo returns an execution context with a fresh ID.
func NewRuleExecInfo(ruleName, user string) *RuleExecInfo {
	return &RuleExecInfo{
		ID:        uuid.New().String(),
		RuleName:  ruleName,
		User:      user,
		StartedAt: time.Now(),
	}
}
