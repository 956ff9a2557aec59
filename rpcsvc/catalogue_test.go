package rpcsvc

import "testing"

func TestCatalogueConnectionServiceBindable(t *testing.T) {
	desc, ok := Catalogue.LookupByName("bnet.protocol.connection.ConnectionService")
	if !ok {
		t.Fatal("ConnectionService not registered")
	}
	connect, ok := desc.MethodByName("Connect")
	if !ok {
		t.Fatal("Connect method missing")
	}
	if connect.RespKind != RespMessage || connect.Resp == nil {
		t.Errorf("Connect = %+v, want a concrete response type", connect)
	}
	if connect.Req == nil {
		t.Error("Connect.Req should be a registered request type")
	}
}

func TestCatalogueBrokenServicesAreNotImplemented(t *testing.T) {
	cases := []struct {
		service, method string
	}{
		{"bnet.protocol.channel_invitation.ChannelInvitationService", "subscribe"},
		{"bnet.protocol.resources.Resources", "get_content_handle"},
		{"bnet.protocol.account.AccountService", "get_account_state"},
	}
	for _, c := range cases {
		desc, ok := Catalogue.LookupByName(c.service)
		if !ok {
			t.Fatalf("%s not registered", c.service)
		}
		m, ok := desc.MethodByName(c.method)
		if !ok {
			t.Fatalf("%s.%s missing", c.service, c.method)
		}
		if m.RespKind != RespNotImplemented {
			t.Errorf("%s.%s RespKind = %v, want RespNotImplemented", c.service, c.method, m.RespKind)
		}
	}
}

func TestCatalogueGameUtilitiesHashable(t *testing.T) {
	want := HashServiceName("bnet.protocol.game_utilities.GameUtilities")
	desc, ok := Catalogue.LookupByHash(want)
	if !ok || desc.Name != "bnet.protocol.game_utilities.GameUtilities" {
		t.Fatalf("LookupByHash(%#x) = %+v, ok=%v", want, desc, ok)
	}
}
