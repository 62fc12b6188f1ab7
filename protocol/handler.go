package protocol

import "robotfw/bytespan"

// MaxCmd bounds the command-id space; handlers are a static array, not a map.
const MaxCmd = 256

// StartFunc runs the first phase of a command. It writes into resp and
// returns the status and the number of bytes written (ignored unless status
// allows a payload).
type StartFunc func(req bytespan.ConstSpan, resp bytespan.MutSpan) (Status, int)

// GetResultFunc polls a previously started long-running command. It writes
// into resp and returns the status and bytes written.
type GetResultFunc func(resp bytespan.MutSpan) (Status, int)

// Handler is one command's entry in the static table. InProgress tracks
// whether a Start on this command returned Pending and no terminal
// GetResult has been observed yet.
type Handler struct {
	Start      StartFunc
	GetResult  GetResultFunc
	InProgress bool
}

// Table is the static command registry, indexed by command id.
type Table struct {
	handlers [MaxCmd]*Handler
}

// Register installs a handler at cmd. Intended to be called once at startup
// wiring time.
func (t *Table) Register(cmd uint8, h *Handler) {
	t.handlers[cmd] = h
}

func (t *Table) lookup(cmd uint8) *Handler {
	return t.handlers[cmd]
}
