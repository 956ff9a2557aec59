package broker

import "github.com/hearthy-oss/hearthproxy/schema"

// ResponseFunc is invoked once, with the decoded response body, when a
// pending request's matching response frame arrives.
type ResponseFunc func(resp *schema.MessageValue)

// pendingResponse records a request that expects a correlated response:
// created on send, consumed exactly once when a response frame with a
// matching token arrives, and dropped silently on connection teardown.
type pendingResponse struct {
	serviceID uint32
	methodID  uint32
	respType  *schema.MessageType
	onResp    ResponseFunc
}

// pendingTable is the broker's token → pendingResponse map plus the
// monotonic token allocator. Tokens wrap modulo 2^32, matching the
// source's plain incrementing counter.
type pendingTable struct {
	entries   map[uint32]pendingResponse
	nextToken uint32
}

func newPendingTable() *pendingTable {
	return &pendingTable{entries: make(map[uint32]pendingResponse)}
}

func (p *pendingTable) allocateToken() uint32 {
	t := p.nextToken
	p.nextToken++
	return t
}

func (p *pendingTable) insert(token uint32, entry pendingResponse) {
	p.entries[token] = entry
}

func (p *pendingTable) take(token uint32) (pendingResponse, bool) {
	e, ok := p.entries[token]
	if ok {
		delete(p.entries, token)
	}
	return e, ok
}

// clear drops every pending entry, matching the symmetric, silent
// release of in-flight requests on connection teardown.
func (p *pendingTable) clear() {
	p.entries = make(map[uint32]pendingResponse)
}
