package protocol

import "robotfw/bytespan"

// Engine ties the command Table to frame parsing and response encoding. The
// scratch buffer is owned by the engine so Dispatch never allocates on the
// hot path.
type Engine struct {
	Table   *Table
	scratch [MaxPayload]byte
}

// NewEngine returns an engine dispatching against table.
func NewEngine(table *Table) *Engine { return &Engine{Table: table} }

// Dispatch validates and processes one raw request frame, writing the
// encoded response into respBuf and returning the number of bytes written.
// respBuf must be at least MaxResponse bytes.
func (e *Engine) Dispatch(raw []byte, respBuf []byte) int {
	req, status := ParseRequest(raw)
	if status != Ok {
		return EncodeResponse(respBuf, status, nil)
	}

	h := e.Table.lookup(req.Cmd)
	if h == nil || h.Start == nil {
		return EncodeResponse(respBuf, UnknownCommand, nil)
	}

	payloadBuf := e.scratch[:]

	switch req.Op {
	case OpStart:
		return e.dispatchStart(h, req, payloadBuf, respBuf)
	case OpGetResult:
		return e.dispatchGetResult(h, payloadBuf, respBuf)
	default:
		return EncodeResponse(respBuf, UnknownOperation, nil)
	}
}

func (e *Engine) dispatchStart(h *Handler, req Request, payloadBuf, respBuf []byte) int {
	if h.InProgress {
		return EncodeResponse(respBuf, InvalidOperation, nil)
	}

	status, n := h.Start(req.Payload, bytespan.MutSpan(payloadBuf))
	status, n = clampToBuffer(status, n, len(payloadBuf))

	if status == Pending {
		h.InProgress = true
		if h.GetResult == nil {
			return EncodeResponse(respBuf, status, payloadBuf[:n])
		}
		// Piggy-back an immediate poll: the operation may already be done.
		grStatus, grN := h.GetResult(bytespan.MutSpan(payloadBuf))
		grStatus, grN = clampToBuffer(grStatus, grN, len(payloadBuf))
		if grStatus != Pending {
			h.InProgress = false
		}
		return EncodeResponse(respBuf, grStatus, payloadBuf[:grN])
	}

	return EncodeResponse(respBuf, status, payloadBuf[:n])
}

func (e *Engine) dispatchGetResult(h *Handler, payloadBuf, respBuf []byte) int {
	if h.GetResult == nil {
		return EncodeResponse(respBuf, InvalidOperation, nil)
	}
	if !h.InProgress {
		return EncodeResponse(respBuf, InvalidOperation, nil)
	}

	status, n := h.GetResult(bytespan.MutSpan(payloadBuf))
	status, n = clampToBuffer(status, n, len(payloadBuf))
	if status != Pending {
		h.InProgress = false
	}
	return EncodeResponse(respBuf, status, payloadBuf[:n])
}

// clampToBuffer enforces the rule that a handler writing past its buffer is
// a bug surfaced as InternalError rather than a silent overrun.
func clampToBuffer(status Status, n, capacity int) (Status, int) {
	if n < 0 || n > capacity {
		return InternalError, 0
	}
	return status, n
}
