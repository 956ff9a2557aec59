package rpcsvc

import (
	"fmt"

	"github.com/hearthy-oss/hearthproxy/schema"
)

// RespKind distinguishes a method with no response at all from one
// whose response type exists in the protocol but has no decoder here,
// a distinction the source collapsed into one NOT_IMPLEMENTED/NO_RESPONSE
// sentinel (both bound to None) but named differently at each call
// site in hearthy.bnet.rpcdef depending on which constant the author
// wrote.
type RespKind int

const (
	// RespNone means the method is fire-and-forget: a request is
	// never followed by a response frame.
	RespNone RespKind = iota
	// RespNotImplemented means the protocol defines a response for
	// this method but no message type is registered for it here.
	RespNotImplemented
	// RespMessage means Resp names a concrete, decodable response
	// type.
	RespMessage
)

// MethodSpec is the declarative description of one service method,
// passed to Registry.Define. Req == nil marks a request whose type is
// not registered here (NOT_IMPLEMENTED on the request side).
type MethodSpec struct {
	ID       uint32
	Name     string
	Req      *schema.MessageType
	RespKind RespKind
	Resp     *schema.MessageType
}

// MethodDescriptor is the resolved, looked-up-by-id-or-name form of a
// MethodSpec once registered on a ServiceDescriptor.
type MethodDescriptor struct {
	ID       uint32
	Name     string
	Req      *schema.MessageType
	RespKind RespKind
	Resp     *schema.MessageType
}

// ServiceDescriptor is a service's stable identity (name, hash) plus
// its method table, indexed both by numeric id (for dispatch off a
// wire header) and by name (for building a ClientProxy).
type ServiceDescriptor struct {
	Name string
	Hash uint32

	// IsPlaceholder marks a descriptor built by NewUnknownDescriptor for
	// a hash the catalogue has no entry for. The broker uses this to
	// decide how to answer a request against it, since its empty method
	// table can never yield a MethodByID match to dispatch on.
	IsPlaceholder bool

	byID   map[uint32]MethodDescriptor
	byName map[string]MethodDescriptor
}

// MethodByID looks up a method by its declared numeric id.
func (s *ServiceDescriptor) MethodByID(id uint32) (MethodDescriptor, bool) {
	m, ok := s.byID[id]
	return m, ok
}

// MethodByName looks up a method by its declared name.
func (s *ServiceDescriptor) MethodByName(name string) (MethodDescriptor, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// Registry is the process-wide table of every service this proxy
// knows how to serve or call, indexed both by hash (stable across
// connections) and by name (for readable wiring code).
type Registry struct {
	byHash map[uint32]*ServiceDescriptor
	byName map[string]*ServiceDescriptor
}

// NewUnknownDescriptor builds a bare ServiceDescriptor for a hash the
// catalogue has no entry for: an empty method table under a synthetic
// name, so the broker can still install it as a placeholder export and
// log calls against it by name/hash instead of a raw number.
func NewUnknownDescriptor(hash uint32) *ServiceDescriptor {
	return &ServiceDescriptor{
		Name:          "unknown",
		Hash:          hash,
		IsPlaceholder: true,
		byID:          make(map[uint32]MethodDescriptor),
		byName:        make(map[string]MethodDescriptor),
	}
}

// NewRegistry creates an empty service registry.
func NewRegistry() *Registry {
	return &Registry{
		byHash: make(map[uint32]*ServiceDescriptor),
		byName: make(map[string]*ServiceDescriptor),
	}
}

// Define registers a service under its fully-qualified dotted name.
// Panics on a duplicate name or hash collision — both indicate a typo
// in the catalogue, not a runtime condition.
func (r *Registry) Define(name string, methods []MethodSpec) *ServiceDescriptor {
	if _, exists := r.byName[name]; exists {
		panic(fmt.Sprintf("rpcsvc: duplicate service name %q", name))
	}
	hash := HashServiceName(name)
	if _, exists := r.byHash[hash]; exists {
		panic(fmt.Sprintf("rpcsvc: hash collision registering %q", name))
	}

	desc := &ServiceDescriptor{
		Name:   name,
		Hash:   hash,
		byID:   make(map[uint32]MethodDescriptor),
		byName: make(map[string]MethodDescriptor),
	}
	for _, m := range methods {
		md := MethodDescriptor{ID: m.ID, Name: m.Name, Req: m.Req, RespKind: m.RespKind, Resp: m.Resp}
		desc.byID[m.ID] = md
		desc.byName[m.Name] = md
	}

	r.byHash[hash] = desc
	r.byName[name] = desc
	return desc
}

// LookupByHash finds a service by its FNV-1a-32 name hash.
func (r *Registry) LookupByHash(hash uint32) (*ServiceDescriptor, bool) {
	s, ok := r.byHash[hash]
	return s, ok
}

// LookupByName finds a service by its fully-qualified dotted name.
func (r *Registry) LookupByName(name string) (*ServiceDescriptor, bool) {
	s, ok := r.byName[name]
	return s, ok
}
