package model

import "time"

// SchedulerState is the monitoring loop's shared status. The scheduler owns
// it; command handlers and the ops endpoint read copies.
type SchedulerState struct {
	Active            bool      `json:"active"`
	SessionOpen       bool      `json:"session_open"`
	LastPoll          time.Time `json:"last_poll"`
	LastCycleVerdicts int       `json:"last_cycle_verdicts"`
}
