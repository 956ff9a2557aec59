// Package broker implements the RPC broker: per-connection request and
// response dispatch over the bnet RPC envelope, bind-time negotiation
// of service ids, and the pending-response table that correlates a
// response frame back to the request that caused it.
//
// Grounded on hearthy.bnet.rpc (ServiceMethod, ServiceServer, ClientProxy,
// Service, RpcBroker) and hearthy.bnet.serverng (ConnectService.Connect).
package broker

import (
	"github.com/hearthy-oss/hearthproxy/messages"
	"github.com/hearthy-oss/hearthproxy/schema"
)

// responseServiceID is the sentinel ServiceId value that marks a frame
// as a response rather than a request.
const responseServiceID = 254

// emptyResponseType is a zero-field message type, encoding to zero
// bytes regardless of which concrete response the real service would
// have declared. Used by the placeholder export installed for an
// unrecognized imported service, which has no method table to look up a
// real response type from.
var emptyResponseType = func() *schema.MessageType {
	r := schema.NewRegistry()
	t := r.Define("PlaceholderEmptyResponse", nil)
	if err := r.Build(); err != nil {
		panic(err)
	}
	return t
}()

func headerType() *schema.MessageType {
	t, ok := messages.Registry.Lookup("BnetPacketHeader")
	if !ok {
		panic("broker: BnetPacketHeader not registered")
	}
	return t
}

// newHeader builds a BnetPacketHeader value with the given fields. Size
// is filled in by the caller once the body has been encoded.
func newHeader(serviceID, methodID, token uint32) *schema.MessageValue {
	h := schema.NewValue(headerType())
	h.Set("ServiceId", uint64(serviceID))
	h.Set("MethodId", uint64(methodID))
	h.Set("Token", uint64(token))
	h.Set("Status", uint64(0))
	h.Set("Size", uint64(0))
	return h
}

func headerUint32(h *schema.MessageValue, name string) uint32 {
	v, ok := h.Get(name)
	if !ok {
		return 0
	}
	return uint32(v.(uint64))
}

func setHeaderUint32(h *schema.MessageValue, name string, val uint32) {
	h.Set(name, uint64(val))
}
