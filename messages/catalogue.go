// Package messages holds the process-wide message-type registry for
// every Aurora (in-game) and Bnet (RPC) message this proxy understands,
// plus the packet-type table that ties Aurora wire type ids to those
// message types.
//
// Grounded on hearthy.protocol.mtypes (the concrete field tables below
// are a direct transliteration of its _deftype calls) and
// hearthy.protocol.game_utilities / hearthy.protocol.account (the two
// modules that built anonymous types with type_builder.Builder instead
// of mtypes' module-level _deftype).
package messages

import "github.com/hearthy-oss/hearthproxy/schema"

// Registry is the single, process-wide message-type registry. It is
// built once, in init, and is read-only for the lifetime of the
// process — exactly the role hearthy.protocol.mtypes' module globals
// played once type_builder.Builder populated them at import time.
var Registry = schema.NewRegistry()

func init() {
	defineAuroraTypes(Registry)
	defineBnetTypes(Registry)
	defineGameUtilitiesTypes(Registry)
	defineAccountTypes(Registry)
	if err := Registry.Build(); err != nil {
		panic(err)
	}
}

func defineAuroraTypes(r *schema.Registry) {
	r.Define("PowerHistory", []schema.FieldSpec{
		{Number: 1, Name: "List", Type: "PowerHistoryData[]"},
	})
	r.Define("PowerHistoryData", []schema.FieldSpec{
		{Number: 1, Name: "FullEntity", Type: "PowerHistoryEntity"},
		{Number: 2, Name: "ShowEntity", Type: "PowerHistoryEntity"},
		{Number: 3, Name: "HideEntity", Type: "PowerHistoryHide"},
		{Number: 4, Name: "TagChange", Type: "PowerHistoryTagChange"},
		{Number: 5, Name: "CreateGame", Type: "PowerHistoryCreateGame"},
		{Number: 6, Name: "PowerStart", Type: "PowerHistoryStart"},
		{Number: 7, Name: "PowerEnd", Type: "PowerHistoryEnd"},
		{Number: 8, Name: "MetaData", Type: "PowerHistoryMetaData"},
	})
	r.Define("PowerHistoryStart", []schema.FieldSpec{
		{Number: 1, Name: "Type", Type: "enum"},
		{Number: 2, Name: "Index", Type: "int32"},
		{Number: 3, Name: "Source", Type: "int32"},
		{Number: 4, Name: "Target", Type: "int32"},
	})
	r.Define("PowerHistoryEnd", nil)
	r.Define("PowerHistoryMetaData", []schema.FieldSpec{
		{Number: 2, Name: "Info", Type: "int[]"},
		{Number: 3, Name: "MetaType", Type: "int"},
		{Number: 4, Name: "Data", Type: "int"},
	})
	r.Define("ClientPacket", []schema.FieldSpec{
		{Number: 1, Name: "Packet", Type: "bytes"},
	})
	r.Define("DebugMessage", []schema.FieldSpec{
		{Number: 1, Name: "Message", Type: "string"},
	})
	r.Define("Entity", []schema.FieldSpec{
		{Number: 1, Name: "Id", Type: "int32"},
		{Number: 2, Name: "Tags", Type: "Tag[]"},
	})
	r.Define("EntityChoice", []schema.FieldSpec{
		{Number: 1, Name: "Id", Type: "int32"},
		{Number: 2, Name: "ChoiceType", Type: "int32"},
		{Number: 3, Name: "Cancelable", Type: "bool"},
		{Number: 4, Name: "CountMin", Type: "int32"},
		{Number: 5, Name: "CountMax", Type: "int32"},
		{Number: 6, Name: "Entities", Type: "int32[]"},
		{Number: 7, Name: "SourceField", Type: "int32"},
	})
	r.Define("PowerHistoryCreateGame", []schema.FieldSpec{
		{Number: 1, Name: "GameEntity", Type: "Entity"},
		{Number: 2, Name: "Players", Type: "Player[]"},
	})
	r.Define("BeginPlaying", []schema.FieldSpec{
		{Number: 1, Name: "Mode", Type: "enum"},
	})
	r.Define("Platform", []schema.FieldSpec{
		{Number: 1, Name: "OS", Type: "int32"},
		{Number: 2, Name: "Screen", Type: "int32"},
		{Number: 3, Name: "Name", Type: "string"},
	})
	r.Define("AuroraHandshake", []schema.FieldSpec{
		{Number: 1, Name: "GameHandle", Type: "int32"},
		{Number: 2, Name: "Password", Type: "string"},
		{Number: 3, Name: "ClientHandle", Type: "int64"},
		{Number: 4, Name: "Mission", Type: "int32"},
		{Number: 5, Name: "Version", Type: "string"},
		{Number: 6, Name: "OldPlatform", Type: "int32"},
		{Number: 7, Name: "Platform", Type: "Platform"},
	})
	r.Define("AutoLogin", []schema.FieldSpec{
		{Number: 1, Name: "User", Type: "string"},
		{Number: 2, Name: "Pwd", Type: "string"},
		{Number: 3, Name: "BuildId", Type: "int32"},
		{Number: 4, Name: "DebugName", Type: "string"},
		{Number: 5, Name: "Source", Type: "int32"},
	})
	r.Define("BnetId", []schema.FieldSpec{
		{Number: 1, Name: "Lo", Type: "uint64"},
		{Number: 2, Name: "Hi", Type: "uint64"},
	})
	r.Define("Player", []schema.FieldSpec{
		{Number: 1, Name: "Id", Type: "int32"},
		{Number: 2, Name: "GameAccountId", Type: "BnetId"},
		{Number: 3, Name: "CardBack", Type: "int32"},
		{Number: 4, Name: "Entity", Type: "Entity"},
	})
	r.Define("PowerHistoryHide", []schema.FieldSpec{
		{Number: 1, Name: "Entity", Type: "int32"},
		{Number: 2, Name: "Zone", Type: "int32"},
	})
	r.Define("PowerHistoryTagChange", []schema.FieldSpec{
		{Number: 1, Name: "Entity", Type: "int"},
		{Number: 2, Name: "Tag", Type: "int"},
		{Number: 3, Name: "Value", Type: "int"},
	})
	r.Define("PowerHistoryEntity", []schema.FieldSpec{
		{Number: 1, Name: "Entity", Type: "int32"},
		{Number: 2, Name: "Name", Type: "string"},
		{Number: 3, Name: "Tags", Type: "Tag[]"},
	})
	r.Define("Tag", []schema.FieldSpec{
		{Number: 1, Name: "Name", Type: "int"},
		{Number: 2, Name: "Value", Type: "int"},
	})
	r.Define("MouseInfo", []schema.FieldSpec{
		{Number: 1, Name: "ArrowOrigin", Type: "int"},
		{Number: 2, Name: "HeldCard", Type: "int"},
		{Number: 3, Name: "OverCard", Type: "int"},
		{Number: 4, Name: "X", Type: "int"},
		{Number: 5, Name: "Y", Type: "int"},
	})
	r.Define("UserUI", []schema.FieldSpec{
		{Number: 1, Name: "MouseInfo", Type: "MouseInfo"},
		{Number: 2, Name: "Emote", Type: "int"},
	})
	r.Define("TurnTimer", []schema.FieldSpec{
		{Number: 1, Name: "Seconds", Type: "int"},
		{Number: 2, Name: "Turn", Type: "int"},
		{Number: 3, Name: "Show", Type: "bool"},
	})
	r.Define("Option", []schema.FieldSpec{
		{Number: 1, Name: "Type", Type: "enum"},
		{Number: 2, Name: "MainOption", Type: "SubOption"},
		{Number: 3, Name: "SubOptions", Type: "SubOption[]"},
	})
	r.Define("SpectatorHandshake", []schema.FieldSpec{
		{Number: 1, Name: "GameHandle", Type: "uint32"},
		{Number: 2, Name: "Password", Type: "string"},
		{Number: 3, Name: "Version", Type: "string"},
		{Number: 4, Name: "Platform", Type: "Platform"},
		{Number: 5, Name: "GameAccountId", Type: "BnetId"},
	})
	r.Define("SpectatorChange", []schema.FieldSpec{
		{Number: 1, Name: "GameAccountId", Type: "BnetId"},
		{Number: 2, Name: "IsRemoved", Type: "bool"},
	})
	r.Define("SpectatorRemoved", []schema.FieldSpec{
		{Number: 1, Name: "ReasonCode", Type: "int32"},
	})
	r.Define("SpectatorNotify", []schema.FieldSpec{
		{Number: 1, Name: "PlayerId", Type: "int32"},
		{Number: 2, Name: "ChooseOption", Type: "ChooseOption"},
		{Number: 3, Name: "ChooseEntities", Type: "ChooseEntities"},
		{Number: 4, Name: "SpectatorChange", Type: "SpectatorChange[]"},
		{Number: 5, Name: "SpectatorPasswordUpdate", Type: "string"},
		{Number: 6, Name: "SpectatorRemoved", Type: "SpectatorRemoved"},
	})
	r.Define("InviteToSpectate", []schema.FieldSpec{
		{Number: 1, Name: "BnetAccountId", Type: "BnetId"},
		{Number: 2, Name: "GameAccountId", Type: "BnetId"},
	})
	r.Define("ForcedEntityChoice", []schema.FieldSpec{
		{Number: 1, Name: "Id", Type: "int32"},
		{Number: 2, Name: "Entities", Type: "int32"},
	})
	r.Define("AllOptions", []schema.FieldSpec{
		{Number: 1, Name: "Id", Type: "int32"},
		{Number: 2, Name: "Options", Type: "Option[]"},
	})
	r.Define("ChooseEntities", []schema.FieldSpec{
		{Number: 1, Name: "Id", Type: "int32"},
		{Number: 2, Name: "Entities", Type: "int32[]"},
	})
	r.Define("ChooseOption", []schema.FieldSpec{
		{Number: 1, Name: "Id", Type: "int32"},
		{Number: 2, Name: "Index", Type: "int32"},
		{Number: 3, Name: "Target", Type: "int32"},
		{Number: 4, Name: "SubOption", Type: "int32"},
		{Number: 5, Name: "Position", Type: "int32"},
		{Number: 6, Name: "OldPlatform", Type: "int32"},
		{Number: 7, Name: "Platform", Type: "Platform"},
	})
	r.Define("ServerResult", []schema.FieldSpec{
		{Number: 1, Name: "ResultCode", Type: "int32"},
		{Number: 2, Name: "RetryDelaySeconds", Type: "float"},
	})
	r.Define("Ping", nil)
	r.Define("Pong", nil)
	r.Define("Notification", []schema.FieldSpec{
		{Number: 1, Name: "Type", Type: "int"},
	})
	r.Define("NAckOption", []schema.FieldSpec{
		{Number: 1, Name: "Id", Type: "int"},
	})
	r.Define("GameStarting", []schema.FieldSpec{
		{Number: 1, Name: "GameHandle", Type: "int32"},
	})
	r.Define("FinishGameState", nil)
	r.Define("GameCancelled", []schema.FieldSpec{
		{Number: 1, Name: "Reason", Type: "int"},
	})
	r.Define("GameSetup", []schema.FieldSpec{
		{Number: 1, Name: "Board", Type: "int32"},
		{Number: 2, Name: "MaxSecretsPerPlayer", Type: "int32"},
		{Number: 3, Name: "MaxFriendlyMinionPerPlayer", Type: "int32"},
		{Number: 4, Name: "KeepAliveFrequency", Type: "int32"},
	})
	r.Define("GetGameState", nil)
	r.Define("GiveUp", []schema.FieldSpec{
		{Number: 1, Name: "OldPlatform", Type: "int32"},
		{Number: 2, Name: "Platform", Type: "Platform"},
	})
	r.Define("SubOption", []schema.FieldSpec{
		{Number: 1, Name: "Id", Type: "int32"},
		{Number: 3, Name: "Targets", Type: "int32[]"},
	})
	r.Define("StartGameState", []schema.FieldSpec{
		{Number: 1, Name: "GameEntity", Type: "Entity"},
		{Number: 2, Name: "Players", Type: "Player[]"},
	})
	r.Define("PreLoad", []schema.FieldSpec{
		{Number: 1, Name: "Cards", Type: "int[]"},
	})
	r.Define("PreCast", []schema.FieldSpec{
		{Number: 1, Name: "Entity", Type: "int"},
	})
	r.Define("DebugConsoleCommand", []schema.FieldSpec{
		{Number: 1, Name: "Command", Type: "string"},
	})
	r.Define("DebugConsoleResponse", []schema.FieldSpec{
		{Number: 1, Name: "Response", Type: "string"},
		{Number: 2, Name: "ResponseType", Type: "enum"},
	})
}

func defineBnetTypes(r *schema.Registry) {
	r.Define("BnetBoundService", []schema.FieldSpec{
		{Number: 1, Name: "Hash", Type: "fixed32"},
		{Number: 2, Name: "Id", Type: "uint32"},
	})
	r.Define("BnetBindRequest", []schema.FieldSpec{
		{Number: 1, Name: "ImportedServiceHash", Type: "fixed32[]"},
		{Number: 2, Name: "ExportedService", Type: "BnetBoundService[]"},
	})
	r.Define("BnetConnectRequest", []schema.FieldSpec{
		{Number: 1, Name: "ClientId", Type: "BnetProcessId"},
		{Number: 2, Name: "BindRequest", Type: "BnetBindRequest"},
	})
	r.Define("BnetContentHandle", []schema.FieldSpec{
		{Number: 1, Name: "region", Type: "fixed32"},
		{Number: 2, Name: "usage", Type: "fixed32"},
		{Number: 3, Name: "hash", Type: "bytes"},
		{Number: 4, Name: "proto_url", Type: "string"},
	})
	r.Define("BnetContentMeteringContentHandles", []schema.FieldSpec{
		{Number: 1, Name: "List", Type: "BnetContentHandle[]"},
	})
	r.Define("BnetBindResponse", []schema.FieldSpec{
		{Number: 1, Name: "ImportedServices", Type: "uint32[]"},
	})
	r.Define("BnetConnectResponse", []schema.FieldSpec{
		{Number: 1, Name: "ServerId", Type: "BnetProcessId"},
		{Number: 2, Name: "ClientId", Type: "BnetProcessId"},
		{Number: 3, Name: "BindResult", Type: "uint32"},
		{Number: 4, Name: "BindResponse", Type: "BnetBindResponse"},
		{Number: 5, Name: "ContentHandleArray", Type: "BnetContentMeteringContentHandles"},
		{Number: 6, Name: "ServerTime", Type: "uint64"},
	})
	r.Define("BnetNoData", nil)
	r.Define("BnetLogonRequest", []schema.FieldSpec{
		{Number: 1, Name: "program", Type: "string"},
		{Number: 2, Name: "platform", Type: "string"},
		{Number: 3, Name: "locale", Type: "string"},
		{Number: 4, Name: "email", Type: "string"},
		{Number: 5, Name: "version", Type: "string"},
		{Number: 6, Name: "application_version", Type: "int32"},
		{Number: 7, Name: "public_computer", Type: "bool"},
		{Number: 8, Name: "sso_id", Type: "bytes"},
		{Number: 9, Name: "disconnect_on_cookie_fail", Type: "bool"},
		{Number: 10, Name: "allow_logon_queue_notifications", Type: "bool"},
		{Number: 11, Name: "web_client_verification", Type: "bool"},
		{Number: 12, Name: "cached_web_credentials", Type: "bytes"},
		{Number: 14, Name: "user_agent", Type: "string"},
	})
	r.Define("EntityId", []schema.FieldSpec{
		{Number: 1, Name: "high", Type: "fixed64"},
		{Number: 2, Name: "low", Type: "fixed64"},
	})
	r.Define("Attribute", []schema.FieldSpec{
		{Number: 1, Name: "name", Type: "string"},
		{Number: 2, Name: "value", Type: "BnetVariant"},
	})
	r.Define("Friend", []schema.FieldSpec{
		{Number: 1, Name: "id", Type: "EntityId"},
		{Number: 2, Name: "atttribute", Type: "Attribute[]"},
		{Number: 3, Name: "role", Type: "uint32[]"},
		{Number: 4, Name: "privileges", Type: "uint64"},
		{Number: 5, Name: "attributes_epoch", Type: "uint64"},
		{Number: 6, Name: "full_name", Type: "string"},
		{Number: 7, Name: "battle_tag", Type: "string"},
	})
	r.Define("Identity", []schema.FieldSpec{
		{Number: 1, Name: "account_id", Type: "EntityId"},
		{Number: 2, Name: "game_account_id", Type: "EntityId"},
	})
	r.Define("Role", []schema.FieldSpec{
		{Number: 1, Name: "id", Type: "uint32"},
		{Number: 2, Name: "name", Type: "string"},
		{Number: 3, Name: "priviledge", Type: "string[]"},
		{Number: 4, Name: "assignable_role", Type: "uint32[]"},
		{Number: 5, Name: "required", Type: "bool"},
		{Number: 6, Name: "unique", Type: "bool"},
		{Number: 7, Name: "relegation_role", Type: "uint32"},
		{Number: 8, Name: "attribute", Type: "Attribute[]"},
	})
	r.Define("Invitation", []schema.FieldSpec{
		{Number: 1, Name: "id", Type: "fixed64"},
		{Number: 2, Name: "inviter_identity", Type: "Identity"},
		{Number: 3, Name: "invitee_identity", Type: "Identity"},
		{Number: 4, Name: "inviter_name", Type: "string"},
		{Number: 5, Name: "invitee_name", Type: "string"},
		{Number: 6, Name: "invitation_message", Type: "string"},
		{Number: 7, Name: "creation_time", Type: "uint64"},
		{Number: 8, Name: "expiration_time", Type: "uint64"},
	})
	r.Define("SubscribeToFriendsRequest", []schema.FieldSpec{
		{Number: 1, Name: "agent_id", Type: "EntityId"},
		{Number: 2, Name: "object_id", Type: "uint64"},
	})
	r.Define("SubscribeToFriendsResponse", []schema.FieldSpec{
		{Number: 1, Name: "max_friends", Type: "uint32"},
		{Number: 2, Name: "max_received_invitations", Type: "uint32"},
		{Number: 3, Name: "max_sent_invitations", Type: "uint32"},
		{Number: 4, Name: "role", Type: "Role[]"},
		{Number: 5, Name: "friends", Type: "Friend[]"},
		{Number: 6, Name: "sent_invitations", Type: "Invitation[]"},
		{Number: 7, Name: "received_invitations", Type: "Invitation[]"},
	})
	r.Define("BnetPresenceSubscribeRequest", []schema.FieldSpec{
		{Number: 1, Name: "agent_id", Type: "EntityId"},
		{Number: 2, Name: "entity_id", Type: "EntityId"},
		{Number: 3, Name: "object_id", Type: "uint64"},
		{Number: 4, Name: "program_id", Type: "fixed32[]"},
	})
	r.Define("BnetPresenceUnsubscribeRequest", []schema.FieldSpec{
		{Number: 1, Name: "agent_id", Type: "EntityId"},
		{Number: 2, Name: "entity_id", Type: "EntityId"},
	})
	r.Define("PresenceFieldKey", []schema.FieldSpec{
		{Number: 1, Name: "program", Type: "uint32"},
		{Number: 2, Name: "group", Type: "uint32"},
		{Number: 3, Name: "field", Type: "uint32"},
		{Number: 4, Name: "index", Type: "uint64"},
	})
	r.Define("PresenceField", []schema.FieldSpec{
		{Number: 1, Name: "key", Type: "PresenceFieldKey"},
		{Number: 2, Name: "value", Type: "BnetVariant"},
	})
	r.Define("PresenceFieldOperation", []schema.FieldSpec{
		{Number: 1, Name: "field", Type: "PresenceField"},
		{Number: 2, Name: "operation", Type: "enum"},
	})
	r.Define("BnetPresenceUpdateRequest", []schema.FieldSpec{
		{Number: 1, Name: "entity_id", Type: "EntityId"},
		{Number: 2, Name: "field_operation", Type: "PresenceFieldOperation[]"},
	})
	r.Define("BnetPresenceQueryRequest", []schema.FieldSpec{
		{Number: 1, Name: "entity_id", Type: "EntityId"},
		{Number: 2, Name: "key", Type: "PresenceFieldKey"},
	})
	r.Define("BnetPresenceQueryResponse", []schema.FieldSpec{
		{Number: 2, Name: "field", Type: "PresenceField[]"},
	})
	r.Define("BnetVariant", []schema.FieldSpec{
		{Number: 2, Name: "boolval", Type: "bool"},
		{Number: 3, Name: "intval", Type: "int64"},
		{Number: 4, Name: "floatval", Type: "float"},
		{Number: 5, Name: "stringva", Type: "string"},
		{Number: 6, Name: "blobval", Type: "bytes"},
		{Number: 7, Name: "messageval", Type: "bytes"},
		{Number: 8, Name: "fourccval", Type: "string"},
		{Number: 9, Name: "uintval", Type: "uint64"},
		{Number: 10, Name: "entityidval", Type: "EntityId"},
	})
	r.Define("BnetLogonUpdateRequest", []schema.FieldSpec{
		{Number: 1, Name: "error_code", Type: "uint32"},
	})
	r.Define("BnetLogonResult", []schema.FieldSpec{
		{Number: 1, Name: "error_code", Type: "uint32"},
		{Number: 2, Name: "account", Type: "EntityId"},
		{Number: 3, Name: "game_account", Type: "EntityId[]"},
		{Number: 4, Name: "email", Type: "string"},
		{Number: 5, Name: "available_region", Type: "uint32[]"},
		{Number: 6, Name: "connected_region", Type: "uint32"},
		{Number: 7, Name: "battle_tag", Type: "string"},
		{Number: 8, Name: "geoip_country", Type: "string"},
	})
	r.Define("BnetEchoRequest", []schema.FieldSpec{
		{Number: 1, Name: "time", Type: "fixed64"},
		{Number: 2, Name: "network_only", Type: "bool"},
		{Number: 3, Name: "payload", Type: "bytes"},
	})
	r.Define("BnetEchoResponse", []schema.FieldSpec{
		{Number: 1, Name: "time", Type: "fixed64"},
		{Number: 2, Name: "payload", Type: "bytes"},
	})
	r.Define("BnetProcessId", []schema.FieldSpec{
		{Number: 1, Name: "Label", Type: "uint32"},
		{Number: 2, Name: "Epoch", Type: "uint32"},
	})
	r.Define("BnetObjectAddress", []schema.FieldSpec{
		{Number: 1, Name: "Host", Type: "BnetProcessId"},
		{Number: 2, Name: "ObjectId", Type: "uint64"},
	})
	r.Define("BnetErrorInfo", []schema.FieldSpec{
		{Number: 1, Name: "ObjectAddress", Type: "BnetObjectAddress"},
		{Number: 2, Name: "Status", Type: "uint32"},
		{Number: 3, Name: "ServiceHash", Type: "uint32"},
		{Number: 4, Name: "MethodId", Type: "uint32"},
	})
	r.Define("BnetModuleLoadRequest", []schema.FieldSpec{
		{Number: 1, Name: "ModuleHandle", Type: "BnetContentHandle"},
		{Number: 2, Name: "Message", Type: "bytes"},
	})
	r.Define("BnetEncryptRequest", nil)
	r.Define("BnetModuleMessageRequest", []schema.FieldSpec{
		{Number: 1, Name: "ModuleId", Type: "int32"},
		{Number: 2, Name: "Message", Type: "bytes"},
	})
	r.Define("BnetModuleNotification", []schema.FieldSpec{
		{Number: 2, Name: "ModuleId", Type: "int32"},
		{Number: 3, Name: "Result", Type: "uint32"},
	})
	r.Define("BnetDisconnectRequest", []schema.FieldSpec{
		{Number: 1, Name: "error_code", Type: "uint32"},
	})
	r.Define("BnetLogonQueueUpdateRequest", []schema.FieldSpec{
		{Number: 1, Name: "Position", Type: "uint32"},
		{Number: 2, Name: "EstimatedTime", Type: "uint64"},
		{Number: 3, Name: "EtaDeviationInSec", Type: "uint64"},
	})
	r.Define("BnetPacketHeader", []schema.FieldSpec{
		{Number: 1, Name: "ServiceId", Type: "uint32"},
		{Number: 2, Name: "MethodId", Type: "uint32"},
		{Number: 3, Name: "Token", Type: "uint32"},
		{Number: 4, Name: "ObjectId", Type: "uint32"},
		{Number: 5, Name: "Size", Type: "uint32"},
		{Number: 6, Name: "Status", Type: "uint32"},
		{Number: 7, Name: "Error", Type: "BnetErrorInfo[]"},
		{Number: 8, Name: "Timeout", Type: "uint64"},
	})
	r.Define("BnetNotification", []schema.FieldSpec{
		{Number: 1, Name: "sender_id", Type: "EntityId"},
		{Number: 2, Name: "target_id", Type: "EntityId"},
		{Number: 3, Name: "type", Type: "string"},
		{Number: 4, Name: "attribute", Type: "Attribute[]"},
		{Number: 5, Name: "sender_account_id", Type: "EntityId"},
		{Number: 6, Name: "target_account_id", Type: "EntityId"},
		{Number: 7, Name: "sender_battle_tag", Type: "string"},
	})
}

// defineGameUtilitiesTypes mirrors hearthy.protocol.game_utilities,
// which built these with type_builder.Builder instead of _deftype.
func defineGameUtilitiesTypes(r *schema.Registry) {
	r.Define("GameSessionLocation", []schema.FieldSpec{
		{Number: 1, Name: "ip_address", Type: "string"},
		{Number: 2, Name: "country", Type: "uint32"},
		{Number: 3, Name: "city", Type: "string"},
	})
	r.Define("GameSessionInfo", []schema.FieldSpec{
		{Number: 3, Name: "start_time", Type: "uint32"},
		{Number: 4, Name: "location", Type: "GameSessionLocation"},
		{Number: 5, Name: "has_benefactor", Type: "bool"},
		{Number: 6, Name: "is_using_igr", Type: "bool"},
		{Number: 7, Name: "parental_control_active", Type: "bool"},
	})
	r.Define("GetGameSessionInfoResponse", []schema.FieldSpec{
		{Number: 2, Name: "session_info", Type: "GameSessionInfo"},
	})
	r.Define("GetGameSessionInfoRequest", []schema.FieldSpec{
		{Number: 1, Name: "entity_id", Type: "EntityId"},
	})
}

// defineAccountTypes mirrors hearthy.protocol.account, the other module
// that used type_builder.Builder for anonymous types.
func defineAccountTypes(r *schema.Registry) {
	r.Define("ClientResponse", []schema.FieldSpec{
		{Number: 1, Name: "attributes", Type: "Attribute[]"},
	})
	r.Define("ClientRequest", []schema.FieldSpec{
		{Number: 1, Name: "attributes", Type: "Attribute[]"},
		{Number: 2, Name: "host", Type: "BnetProcessId"},
		{Number: 3, Name: "bnet_account_id", Type: "EntityId"},
		{Number: 4, Name: "game_account_id", Type: "EntityId"},
	})
}
