package session

import (
	"fmt"
	"strings"
)

// CleanupPolicy decides what is removed from the store when a session ends
// on refresh failure or on an auth failure after retry. Logout always clears everything.
type CleanupPolicy int

const (
	CleanupToken CleanupPolicy = iota
	CleanupSession
	CleanupNone
)

var cleanupPolicyNames = map[string]CleanupPolicy{
	"token":   CleanupToken,
	"session": CleanupSession,
	"none":    CleanupNone,
}

func ParseCleanupPolicy(name string) (CleanupPolicy, error) {
	policy, ok := cleanupPolicyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return CleanupToken, fmt.Errorf("unknown session cleanup policy %q", name)
	}
	return policy, nil
}

func (p CleanupPolicy) String() string {
	for name, policy := range cleanupPolicyNames {
		if policy == p {
			return name
		}
	}
	return "unknown"
}

func (p CleanupPolicy) clearsToken() bool {
	return p == CleanupToken || p == CleanupSession
}

func (p CleanupPolicy) clearsIdentity() bool {
	return p == CleanupSession
}
