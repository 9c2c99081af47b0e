package entity

import "time"

type AuditEntry struct {
	Timestamp   time.Time   `json:"timestamp"`
	Action      string      `json:"action"`
	Result      interface{} `json:"result"`
	User        string      `json:"user"`
	Environment string      `json:"environment"`
	Hash        string      `json:"hash"`
}

// BlockedResult is the audit payload for an attempt the policy engine refused.
type BlockedResult struct {
	Reason  string `json:"reason"`
	Blocked bool   `json:"blocked"`
}
