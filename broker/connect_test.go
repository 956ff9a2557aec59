package broker

import (
	"testing"

	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/rpcsvc"
	"github.com/hearthy-oss/hearthproxy/schema"
)

func buildConnectRequest(t *testing.T, importHashes []uint32, exports []struct {
	Hash uint32
	Id   uint32
}) *schema.MessageValue {
	t.Helper()
	bindReq := schema.NewValue(mustLookup("BnetBindRequest"))
	hashes := make([]any, len(importHashes))
	for i, h := range importHashes {
		hashes[i] = h
	}
	bindReq.SetRepeated("ImportedServiceHash", hashes)

	boundType := mustLookup("BnetBoundService")
	items := make([]any, len(exports))
	for i, e := range exports {
		b := schema.NewValue(boundType)
		b.Set("Hash", e.Hash)
		b.Set("Id", uint64(e.Id))
		items[i] = b
	}
	bindReq.SetRepeated("ExportedService", items)

	req := schema.NewValue(mustLookup("BnetConnectRequest"))
	req.Set("BindRequest", bindReq)
	return req
}

func TestBindHandshakeImportsExistingExport(t *testing.T) {
	sink := &recordingSink{}
	b := New(zap.NewNop(), sink)

	authDesc, _ := rpcsvc.Catalogue.LookupByName("bnet.protocol.authentication.AuthenticationServer")
	authExport := b.AddExport(NewExportedService(authDesc))

	b.AddExport(NewConnectionService(b))

	req := buildConnectRequest(t, []uint32{authDesc.Hash}, nil)
	cs := &connectionService{broker: b, serverLabel: defaultServerLabel, clientLabel: defaultClientLabel}
	responses, err := cs.handleConnect(req)
	if err != nil {
		t.Fatalf("handleConnect: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("expected exactly one response, got %d", len(responses))
	}

	resp := responses[0]
	bindRespVal, ok := resp.Get("BindResponse")
	if !ok {
		t.Fatal("response missing BindResponse")
	}
	bindResp := bindRespVal.(*schema.MessageValue)
	ids := bindResp.GetRepeated("ImportedServices")
	if len(ids) != 1 {
		t.Fatalf("ImportedServices length = %d, want 1", len(ids))
	}
	if ids[0].(uint64) != uint64(authExport.Id) {
		t.Errorf("ImportedServices[0] = %v, want %d", ids[0], authExport.Id)
	}
}

func TestBindHandshakeUnknownImportGetsPlaceholder(t *testing.T) {
	sink := &recordingSink{}
	b := New(zap.NewNop(), sink)

	const unknownHash1 = 0x1111
	const unknownHash2 = 0x2222

	req := buildConnectRequest(t, []uint32{unknownHash1, unknownHash2}, nil)
	cs := &connectionService{broker: b, serverLabel: defaultServerLabel, clientLabel: defaultClientLabel}
	responses, err := cs.handleConnect(req)
	if err != nil {
		t.Fatalf("handleConnect: %v", err)
	}

	bindRespVal, _ := responses[0].Get("BindResponse")
	ids := bindRespVal.(*schema.MessageValue).GetRepeated("ImportedServices")
	if len(ids) != 2 {
		t.Fatalf("ImportedServices length = %d, want 2 (bind response invariant)", len(ids))
	}

	exp1, ok := b.GetExportByHash(unknownHash1)
	if !ok || exp1.Descriptor.Name != "unknown" {
		t.Fatalf("expected placeholder export for hash1, got %+v ok=%v", exp1, ok)
	}
	exp2, ok := b.GetExportByHash(unknownHash2)
	if !ok || exp2 == exp1 {
		t.Fatalf("expected a distinct placeholder export for hash2")
	}

	// Invoking the placeholder must not stall the caller: it has to
	// answer with an empty, token-matched response instead of silently
	// dropping the request.
	sink.frames = nil
	header := newHeader(uint32(exp1.Id), 3, 55)
	if err := b.HandlePacket(header, nil); err != nil {
		t.Fatalf("HandlePacket against placeholder: %v", err)
	}
	if len(sink.frames) != 1 {
		t.Fatalf("expected the placeholder to emit one response, got %d", len(sink.frames))
	}
	respHeader, respBody := decodeSent(t, sink.frames[0])
	if headerUint32(respHeader, "ServiceId") != responseServiceID {
		t.Errorf("ServiceId = %d, want %d", headerUint32(respHeader, "ServiceId"), responseServiceID)
	}
	if headerUint32(respHeader, "Token") != 55 {
		t.Errorf("Token = %d, want 55", headerUint32(respHeader, "Token"))
	}
	if len(respBody) != 0 {
		t.Errorf("expected an empty response body, got %d bytes", len(respBody))
	}
}

func TestBindHandshakeBindsClientExport(t *testing.T) {
	sink := &recordingSink{}
	b := New(zap.NewNop(), sink)

	gameUtilDesc, _ := rpcsvc.Catalogue.LookupByName("bnet.protocol.game_utilities.GameUtilities")
	imp := b.AddImport(gameUtilDesc)
	if imp.Id != -1 {
		t.Fatalf("new import should start unbound, got id %d", imp.Id)
	}

	req := buildConnectRequest(t, nil, []struct {
		Hash uint32
		Id   uint32
	}{{Hash: gameUtilDesc.Hash, Id: 9}})

	cs := &connectionService{broker: b, serverLabel: defaultServerLabel, clientLabel: defaultClientLabel}
	if _, err := cs.handleConnect(req); err != nil {
		t.Fatalf("handleConnect: %v", err)
	}

	if imp.Id != 9 {
		t.Errorf("import id = %d, want 9", imp.Id)
	}
}

func TestProcessIDRoundTrips(t *testing.T) {
	v := processID(42, 1000)
	label, _ := v.Get("Label")
	epoch, _ := v.Get("Epoch")
	if label.(uint64) != 42 || epoch.(uint64) != 1000 {
		t.Errorf("processID(42, 1000) = %+v", v)
	}
}
