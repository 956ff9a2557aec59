package broker

import (
	"time"

	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/herr"
	"github.com/hearthy-oss/hearthproxy/messages"
	"github.com/hearthy-oss/hearthproxy/rpcsvc"
	"github.com/hearthy-oss/hearthproxy/schema"
)

// defaultServerLabel and defaultClientLabel are the BnetProcessId
// labels the source hardcoded for every connection
// (hearthy.bnet.serverng.ConnectService.Connect). Kept as defaults
// here rather than invented values, since nothing in the protocol
// actually validates them against anything else.
const (
	defaultServerLabel = 3868510373
	defaultClientLabel = 1255760
)

// connectionService implements ConnectionService.Connect: the bind
// handshake that negotiates per-connection numeric service ids.
// Grounded on hearthy.bnet.serverng.ConnectService.
type connectionService struct {
	broker      *Broker
	serverLabel uint32
	clientLabel uint32
}

// NewConnectionService builds the ConnectionService export, wired to
// b, ready to install with b.AddExport.
func NewConnectionService(b *Broker) *ExportedService {
	desc, ok := rpcsvc.Catalogue.LookupByName("bnet.protocol.connection.ConnectionService")
	if !ok {
		panic("broker: ConnectionService not registered in rpcsvc.Catalogue")
	}
	cs := &connectionService{broker: b, serverLabel: defaultServerLabel, clientLabel: defaultClientLabel}
	svc := NewExportedService(desc)
	svc.AddHandler("Connect", cs.handleConnect)
	return svc
}

func (c *connectionService) handleConnect(req *schema.MessageValue) ([]*schema.MessageValue, error) {
	bindReqVal, ok := req.Get("BindRequest")
	if !ok {
		return nil, herr.New(herr.ProtocolViolation, "BnetConnectRequest missing BindRequest")
	}
	bindReq := bindReqVal.(*schema.MessageValue)

	importedHashes := bindReq.GetRepeated("ImportedServiceHash")
	importIDs := make([]any, 0, len(importedHashes))
	for _, h := range importedHashes {
		hash := h.(uint32)
		exp, ok := c.broker.GetExportByHash(hash)
		if !ok {
			c.broker.logger.Warn("client requested import of non-exported service",
				zap.Uint32("hash", hash))
			exp = c.broker.AddExport(NewExportedService(rpcsvc.NewUnknownDescriptor(hash)))
		}
		c.broker.logger.Info("client imported service",
			zap.String("service", exp.Descriptor.Name), zap.Int("id", exp.Id))
		importIDs = append(importIDs, uint64(exp.Id))
	}

	for _, item := range bindReq.GetRepeated("ExportedService") {
		bound := item.(*schema.MessageValue)
		hash, _ := bound.Get("Hash")
		id, _ := bound.Get("Id")
		imp, ok := c.broker.importedByHash[hash.(uint32)]
		if !ok {
			c.broker.logger.Warn("ignoring client export with unknown hash", zap.Uint32("hash", hash.(uint32)))
			continue
		}
		imp.Id = int(id.(uint64))
		c.broker.logger.Debug("bound import", zap.String("service", imp.Descriptor.Name), zap.Int("id", imp.Id))
	}

	if len(importIDs) != len(importedHashes) {
		return nil, herr.New(herr.ProtocolViolation, "bind response length %d != request length %d",
			len(importIDs), len(importedHashes))
	}

	bindRespType := mustLookup("BnetBindResponse")
	bindResp := schema.NewValue(bindRespType)
	bindResp.SetRepeated("ImportedServices", importIDs)

	now := time.Now()
	resp := schema.NewValue(mustLookup("BnetConnectResponse"))
	resp.Set("ServerId", processID(c.serverLabel, uint32(now.Unix())))
	resp.Set("ClientId", processID(c.clientLabel, uint32(now.Unix())))
	resp.Set("BindResult", uint64(0))
	resp.Set("BindResponse", bindResp)
	resp.Set("ServerTime", uint64(now.UnixMilli()))

	return []*schema.MessageValue{resp}, nil
}

func mustLookup(name string) *schema.MessageType {
	t, ok := messages.Registry.Lookup(name)
	if !ok {
		panic("broker: message type " + name + " not registered")
	}
	return t
}

func processID(label, epoch uint32) *schema.MessageValue {
	v := schema.NewValue(mustLookup("BnetProcessId"))
	v.Set("Label", uint64(label))
	v.Set("Epoch", uint64(epoch))
	return v
}
