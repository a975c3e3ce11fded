// Package client implements the CheckMate client driver: connect with
// backoff/retry, optionally announce a name, then run a single action
// (or, for watch, run forever until the connection is lost).
package client

import (
	"time"

	"github.com/DziubanMaciej/CheckMate/pkg/watcher"
)

// ActionKind selects which client action Driver.Run performs after
// connecting.
type ActionKind int

const (
	ActionReadStatuses ActionKind = iota
	ActionWatch
	ActionRefreshByName
	ActionRefreshAll
	ActionListClients
	ActionAbort
	ActionHelp
	ActionVersion
)

// WatchOptions configures ActionWatch; it is nil for every other action.
type WatchOptions struct {
	Command  string
	Args     []string
	Shell    bool
	Mode     watcher.Mode
	Interval time.Duration
	Delay    time.Duration
}

// Action is the single operation a client invocation performs.
type Action struct {
	Kind ActionKind

	IncludeNames bool          // ActionReadStatuses
	RefreshName  string        // ActionRefreshByName
	Watch        *WatchOptions // ActionWatch
}

// Config is the fully parsed client configuration (spec §4.8, §6).
type Config struct {
	Port               uint16
	ClientName         string // empty means "do not send SetName"
	ConnectionBackoff  time.Duration
	ConnectionAttempts uint32 // 0 means unlimited
	Action             Action
}
