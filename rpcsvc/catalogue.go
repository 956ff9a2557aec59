package rpcsvc

import (
	"github.com/hearthy-oss/hearthproxy/messages"
	"github.com/hearthy-oss/hearthproxy/schema"
)

// Catalogue is the process-wide registry of every service this proxy
// serves or calls, built once at package init from the same method
// tables as hearthy.bnet.rpcdef.
//
// Three services there (ChannelInvitationService, Resources,
// AccountService) call mtypes.SubscribeChannelInvitationRequest,
// mtypes.ContentHandleRequest, and mtypes.GetAccountStateRequest /
// mtypes.GetAccountStateResponse — names that mtypes.py never actually
// defines. Importing the original module as-is would fail with an
// AttributeError before ever being exercised. Rather than invent
// schema types with no grounding, those three methods are registered
// here as RespNotImplemented / ungrounded-Req (the same way the
// source's own genuinely NOT_IMPLEMENTED methods are), so the service
// still resolves by hash instead of panicking at init. A request
// against one of them is not decoded and, with no response type
// declared, gets no response frame.
var Catalogue = NewRegistry()

func lookupMessage(name string) *schema.MessageType {
	t, ok := messages.Registry.Lookup(name)
	if !ok {
		panic("rpcsvc: message type " + name + " not registered")
	}
	return t
}

func init() {
	Catalogue.Define("bnet.protocol.notification.NotificationListener", []MethodSpec{
		{ID: 1, Name: "on_notification_received", Req: lookupMessage("BnetNotification"), RespKind: RespNone},
	})

	Catalogue.Define("bnet.protocol.friends.FriendsService", []MethodSpec{
		{ID: 1, Name: "subscribe_to_friends", Req: lookupMessage("SubscribeToFriendsRequest"), RespKind: RespMessage, Resp: lookupMessage("SubscribeToFriendsResponse")},
	})

	Catalogue.Define("bnet.protocol.channel_invitation.ChannelInvitationService", []MethodSpec{
		{ID: 1, Name: "subscribe", RespKind: RespNotImplemented},
	})

	Catalogue.Define("bnet.protocol.resources.Resources", []MethodSpec{
		{ID: 1, Name: "get_content_handle", RespKind: RespNotImplemented},
	})

	Catalogue.Define("bnet.protocol.account.AccountService", []MethodSpec{
		{ID: 30, Name: "get_account_state", RespKind: RespNotImplemented},
	})

	Catalogue.Define("bnet.protocol.presence.PresenceService", []MethodSpec{
		{ID: 1, Name: "subscribe", Req: lookupMessage("BnetPresenceSubscribeRequest"), RespKind: RespMessage, Resp: lookupMessage("BnetNoData")},
		{ID: 2, Name: "Unsubscribe", Req: lookupMessage("BnetPresenceUnsubscribeRequest"), RespKind: RespMessage, Resp: lookupMessage("BnetNoData")},
		{ID: 3, Name: "Update", Req: lookupMessage("BnetPresenceUpdateRequest"), RespKind: RespMessage, Resp: lookupMessage("BnetNoData")},
		{ID: 4, Name: "Query", Req: lookupMessage("BnetPresenceQueryRequest"), RespKind: RespMessage, Resp: lookupMessage("BnetPresenceQueryResponse")},
	})

	Catalogue.Define("bnet.protocol.authentication.AuthenticationServer", []MethodSpec{
		{ID: 1, Name: "Logon", Req: lookupMessage("BnetLogonRequest"), RespKind: RespMessage, Resp: lookupMessage("BnetNoData")},
		{ID: 2, Name: "ModuleNotify", Req: lookupMessage("BnetModuleNotification"), RespKind: RespMessage, Resp: lookupMessage("BnetNoData")},
		{ID: 3, Name: "ModuleMessage", Req: lookupMessage("BnetModuleMessageRequest"), RespKind: RespMessage, Resp: lookupMessage("BnetNoData")},
		{ID: 4, Name: "SelectGameAccount_DEPRECATED", Req: lookupMessage("EntityId"), RespKind: RespMessage, Resp: lookupMessage("BnetNoData")},
		{ID: 5, Name: "GenerateTempCookie", RespKind: RespNotImplemented},
		{ID: 6, Name: "SelectGameAccount", RespKind: RespMessage, Resp: lookupMessage("BnetNoData")},
		{ID: 7, Name: "VerifyWebCredentials", RespKind: RespMessage, Resp: lookupMessage("BnetNoData")},
	})

	Catalogue.Define("bnet.protocol.connection.ConnectionService", []MethodSpec{
		{ID: 1, Name: "Connect", Req: lookupMessage("BnetConnectRequest"), RespKind: RespMessage, Resp: lookupMessage("BnetConnectResponse")},
		{ID: 2, Name: "Bind", RespKind: RespNotImplemented},
		{ID: 3, Name: "Echo", Req: lookupMessage("BnetEchoRequest"), RespKind: RespMessage, Resp: lookupMessage("BnetEchoResponse")},
		{ID: 4, Name: "ForceDisconnect", RespKind: RespNone},
		{ID: 5, Name: "KeepAlive", Req: lookupMessage("BnetNoData"), RespKind: RespNone},
		{ID: 6, Name: "Encrypt", Req: lookupMessage("BnetEncryptRequest"), RespKind: RespMessage, Resp: lookupMessage("BnetNoData")},
		{ID: 7, Name: "RequestDisconnect", Req: lookupMessage("BnetDisconnectRequest"), RespKind: RespNone},
	})

	Catalogue.Define("bnet.protocol.authentication.AuthenticationClient", []MethodSpec{
		{ID: 1, Name: "ModuleLoad", Req: lookupMessage("BnetModuleLoadRequest"), RespKind: RespNone},
		{ID: 2, Name: "ModuleMessage", Req: lookupMessage("BnetModuleMessageRequest"), RespKind: RespMessage, Resp: lookupMessage("BnetNoData")},
		{ID: 3, Name: "AccountSettings", RespKind: RespNotImplemented},
		{ID: 4, Name: "ServerStateChange", RespKind: RespNotImplemented},
		{ID: 5, Name: "LogonComplete", Req: lookupMessage("BnetLogonResult"), RespKind: RespNotImplemented},
		{ID: 6, Name: "MemModuleLoad", RespKind: RespNotImplemented},
		{ID: 10, Name: "LogonUpdate", Req: lookupMessage("BnetLogonUpdateRequest"), RespKind: RespNotImplemented},
		{ID: 11, Name: "VesionInfoUpdated", RespKind: RespNotImplemented},
		{ID: 12, Name: "LogonQueueUpdate", Req: lookupMessage("BnetLogonQueueUpdateRequest"), RespKind: RespNotImplemented},
		{ID: 13, Name: "LogonQueueEnd", Req: lookupMessage("BnetNoData"), RespKind: RespNotImplemented},
		{ID: 14, Name: "GameAccountSelected", RespKind: RespNotImplemented},
	})

	Catalogue.Define("bnet.protocol.game_utilities.GameUtilities", []MethodSpec{
		{ID: 1, Name: "process_client_request", Req: lookupMessage("ClientRequest"), RespKind: RespMessage, Resp: lookupMessage("ClientResponse")},
		{ID: 2, Name: "presence_channel_created", RespKind: RespNotImplemented},
		{ID: 3, Name: "get_player_variables", RespKind: RespNotImplemented},
		{ID: 5, Name: "get_load", RespKind: RespNotImplemented},
		{ID: 6, Name: "process_server_request", RespKind: RespNotImplemented},
		{ID: 7, Name: "notify_game_account_online", RespKind: RespNotImplemented},
		{ID: 8, Name: "notify_game_account_offline", RespKind: RespNotImplemented},
	})
}
