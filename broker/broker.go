package broker

import (
	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/brokerutil"
	"github.com/hearthy-oss/hearthproxy/frame"
	"github.com/hearthy-oss/hearthproxy/herr"
	"github.com/hearthy-oss/hearthproxy/rpcsvc"
	"github.com/hearthy-oss/hearthproxy/schema"
)

// DataSink is where the broker writes encoded envelope bytes. The
// source's RpcBroker.send_data raised NotImplementedError for
// subclasses to override; here it is an injected dependency instead,
// typically a tcpendpoint.Endpoint's send buffer.
type DataSink interface {
	SendData(buf []byte) error
}

// Broker owns one connection's imported services (calls this side
// makes), exported services (calls this side serves), the
// pending-response table, and the token allocator. Not safe for
// concurrent use: one Broker per connection, driven from a single
// event loop goroutine.
type Broker struct {
	logger *zap.Logger
	sink   DataSink

	importedByHash map[uint32]*ImportedService
	exported       []*ExportedService
	exportedByHash map[uint32]*ExportedService

	pending *pendingTable

	rateLimiter *brokerutil.RateLimiter
}

// New creates an empty broker writing encoded frames to sink.
func New(logger *zap.Logger, sink DataSink) *Broker {
	return &Broker{
		logger:         logger,
		sink:           sink,
		importedByHash: make(map[uint32]*ImportedService),
		exportedByHash: make(map[uint32]*ExportedService),
		pending:        newPendingTable(),
	}
}

// SetRateLimiter installs a request-flood guard on the broker's
// dispatch path. Incoming requests are dropped once the limiter denies
// them; nil (the default) disables rate limiting entirely.
func (b *Broker) SetRateLimiter(l *brokerutil.RateLimiter) {
	b.rateLimiter = l
}

// AddImport registers a service this side will call once bind assigns
// it a peer-side export id. Returns the ImportedService handle, whose
// Id is -1 until bind completes.
func (b *Broker) AddImport(desc *rpcsvc.ServiceDescriptor) *ImportedService {
	imp := &ImportedService{Descriptor: desc, Id: -1}
	b.importedByHash[desc.Hash] = imp
	return imp
}

// AddExport registers a service this side serves, assigning it the
// next export id (its index in the exported slice).
func (b *Broker) AddExport(svc *ExportedService) *ExportedService {
	svc.Id = len(b.exported)
	b.exported = append(b.exported, svc)
	b.exportedByHash[svc.Descriptor.Hash] = svc
	return svc
}

// GetExportByHash finds an exported service by its stable hash.
func (b *Broker) GetExportByHash(hash uint32) (*ExportedService, bool) {
	s, ok := b.exportedByHash[hash]
	return s, ok
}

// GetExportedService finds an exported service by its bind-negotiated
// numeric id.
func (b *Broker) GetExportedService(id uint32) (*ExportedService, bool) {
	if int(id) >= len(b.exported) {
		return nil, false
	}
	return b.exported[id], true
}

// Close releases every pending response silently, matching the
// source's symmetric, silent teardown of in-flight requests.
func (b *Broker) Close() {
	b.pending.clear()
}

// sendPacket encodes (header, body), filling in header.Size, and
// writes the envelope to the sink.
func (b *Broker) sendPacket(header *schema.MessageValue, body *schema.MessageValue) error {
	var bodyBytes []byte
	if body != nil {
		encoded, err := schema.Encode(body)
		if err != nil {
			return err
		}
		bodyBytes = encoded
	}
	setHeaderUint32(header, "Size", uint32(len(bodyBytes)))

	wire, err := frame.EncodeEnvelopeFrame(header, bodyBytes)
	if err != nil {
		return err
	}
	return b.sink.SendData(wire)
}

// SendResponse replies to reqHeader with resp, using ServiceId=254 and
// the request's token, per the bnet RPC envelope's response-marker
// convention.
func (b *Broker) SendResponse(reqHeader *schema.MessageValue, resp *schema.MessageValue) error {
	header := newHeader(responseServiceID, 0, headerUint32(reqHeader, "Token"))
	return b.sendPacket(header, resp)
}

// sendRequest allocates a token, records a pending entry if the method
// expects a response, and sends the request.
func (b *Broker) sendRequest(serviceID, methodID uint32, req *schema.MessageValue, method rpcsvc.MethodDescriptor, onResp ResponseFunc) (uint32, error) {
	token := b.pending.allocateToken()
	header := newHeader(serviceID, methodID, token)
	if method.RespKind == rpcsvc.RespMessage {
		b.pending.insert(token, pendingResponse{
			serviceID: serviceID,
			methodID:  methodID,
			respType:  method.Resp,
			onResp:    onResp,
		})
	}
	if err := b.sendPacket(header, req); err != nil {
		return token, err
	}
	return token, nil
}

// Call invokes methodName on imp, sending req and registering onResp to
// run when the matching response frame arrives (onResp may be nil for
// a RespNone method, or when the caller does not care about the
// response). Returns the allocated token. imp.Id must already be bound
// by a completed handshake.
func (b *Broker) Call(imp *ImportedService, methodName string, req *schema.MessageValue, onResp ResponseFunc) (uint32, error) {
	method, ok := imp.Descriptor.MethodByName(methodName)
	if !ok {
		return 0, herr.New(herr.ProtocolViolation, "service %s has no method %q", imp.Descriptor.Name, methodName)
	}
	return b.sendRequest(uint32(imp.Id), method.ID, req, method, onResp)
}

// HandlePacket dispatches one decoded envelope frame: ServiceId == 254
// is a response, anything else a request to a locally exported
// service.
func (b *Broker) HandlePacket(header *schema.MessageValue, body []byte) error {
	serviceID := headerUint32(header, "ServiceId")
	if serviceID == responseServiceID {
		return b.handleResponse(header, body)
	}
	return b.handleRequest(serviceID, header, body)
}

// handleResponse matches a response frame against the pending table by
// token. An unknown token is a ProtocolViolation: logged and dropped,
// the pending table left untouched, the connection kept alive.
func (b *Broker) handleResponse(header *schema.MessageValue, body []byte) error {
	token := headerUint32(header, "Token")
	entry, ok := b.pending.take(token)
	if !ok {
		b.logger.Warn("response for unknown token", zap.Uint32("token", token))
		return nil
	}
	if entry.respType == nil {
		return nil
	}
	resp, err := schema.Decode(entry.respType, body)
	if err != nil {
		return err
	}
	if entry.onResp != nil {
		entry.onResp(resp)
	}
	return nil
}

// handleRequest decodes the request body, dispatches to the exported
// service's handler, and sends the response(s), if any, per the
// method's declared RespKind.
func (b *Broker) handleRequest(serviceID uint32, header *schema.MessageValue, body []byte) error {
	if b.rateLimiter != nil && !b.rateLimiter.Allow() {
		b.logger.Warn("request dropped by rate limiter", zap.Uint32("service_id", serviceID))
		return nil
	}

	exp, ok := b.GetExportedService(serviceID)
	if !ok {
		b.logger.Warn("request for unbound export id", zap.Uint32("service_id", serviceID))
		return nil
	}

	methodID := headerUint32(header, "MethodId")
	method, ok := exp.Descriptor.MethodByID(methodID)
	if !ok {
		if exp.Descriptor.IsPlaceholder {
			// An unrecognized service's method table is always empty, so
			// every call against it lands here. Reply with an empty,
			// token-matched response rather than silently dropping the
			// request: the caller has no way to know its request type
			// declares no response, and would otherwise stall waiting for
			// one that never arrives.
			b.logger.Warn("request for unknown service, sending empty response",
				zap.Uint32("service_hash", exp.Descriptor.Hash), zap.Uint32("method_id", methodID))
			return b.SendResponse(header, schema.NewValue(emptyResponseType))
		}
		b.logger.Warn("unknown method id",
			zap.String("service", exp.Descriptor.Name), zap.Uint32("method_id", methodID))
		return nil
	}

	var req *schema.MessageValue
	if method.Req != nil {
		decoded, err := schema.Decode(method.Req, body)
		if err != nil {
			return err
		}
		req = decoded
	}

	handler := exp.Handlers[method.Name]
	var responses []*schema.MessageValue
	if handler != nil {
		var err error
		responses, err = handler(req)
		if err != nil {
			return err
		}
	}

	switch {
	case len(responses) > 0:
		for _, resp := range responses {
			if err := b.SendResponse(header, resp); err != nil {
				return err
			}
		}
	case method.RespKind == rpcsvc.RespMessage && method.Resp != nil:
		if err := b.SendResponse(header, schema.NewValue(method.Resp)); err != nil {
			return err
		}
	}
	return nil
}
