package broker

import (
	"github.com/hearthy-oss/hearthproxy/rpcsvc"
	"github.com/hearthy-oss/hearthproxy/schema"
)

// Handler implements one exported method. req is nil when the method's
// request type is not registered (rpcsvc.MethodDescriptor.Req == nil).
// The returned slice holds zero or more responses to send, in order,
// each under the same token as the request — the Go equivalent of the
// source's plain-return-or-generator duality in ServiceServer._handle_packet.
// A method with no Handler entry falls back to the default-empty-response
// behavior for methods whose descriptor declares a concrete response
// type, and to silence otherwise.
type Handler func(req *schema.MessageValue) ([]*schema.MessageValue, error)

// ExportedService is a service this side serves: its bind-negotiated
// numeric id, its method descriptor table, and the handlers installed
// for the methods actually implemented. Descriptor is never nil; a
// placeholder export for an unrecognized hash carries
// rpcsvc.NewUnknownDescriptor(hash) with no methods and no handlers.
type ExportedService struct {
	Id         int
	Descriptor *rpcsvc.ServiceDescriptor
	Handlers   map[string]Handler
}

// NewExportedService wraps a descriptor with an empty handler table;
// callers add handlers with AddHandler before the service is exported.
func NewExportedService(desc *rpcsvc.ServiceDescriptor) *ExportedService {
	return &ExportedService{Descriptor: desc, Handlers: make(map[string]Handler)}
}

// AddHandler installs the implementation for one of the descriptor's
// declared methods.
func (e *ExportedService) AddHandler(methodName string, h Handler) {
	e.Handlers[methodName] = h
}

// ImportedService is a service this side calls: its stable descriptor
// plus the numeric id the peer assigned it at bind time. Id is -1
// until bind completes.
type ImportedService struct {
	Descriptor *rpcsvc.ServiceDescriptor
	Id         int
}
