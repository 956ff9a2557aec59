package messages

import (
	"github.com/hearthy-oss/hearthproxy/herr"
	"github.com/hearthy-oss/hearthproxy/schema"
)

// PacketType identifies an Aurora frame's payload type. Values match
// hearthy.protocol.enums.PacketType exactly, including its unused id 20
// and its gaps between 26 and 103 and between 103 and 113.
type PacketType uint32

const (
	GetGameState        PacketType = 1
	ChooseOption        PacketType = 2
	ChooseEntities       PacketType = 3
	PreCast              PacketType = 4
	DebugMessage         PacketType = 5
	ClientPacket         PacketType = 6
	StartGameState       PacketType = 7
	FinishGameState      PacketType = 8
	TurnTimer            PacketType = 9
	NAckOption           PacketType = 10
	GiveUp               PacketType = 11
	GameCancelled        PacketType = 12
	ForcedEntityChoice   PacketType = 13
	AllOptions           PacketType = 14
	UserUI               PacketType = 15
	GameSetup            PacketType = 16
	EntityChoice         PacketType = 17
	PreLoad              PacketType = 18
	PowerHistory         PacketType = 19
	Notification         PacketType = 21
	SpectatorHandshake   PacketType = 22
	ServerResult         PacketType = 23
	SpectatorNotify      PacketType = 24
	InviteToSpectate     PacketType = 25
	RemoveSpectators     PacketType = 26
	AutoLogin            PacketType = 103
	BeginPlaying         PacketType = 113
	GameStarting         PacketType = 114
	Ping                 PacketType = 115
	Pong                 PacketType = 116
	DebugConsoleCommand  PacketType = 123
	DebugConsoleResponse PacketType = 124
	AuroraHandshake      PacketType = 168
)

// packetTypeNames is the fixed packet-type ↔ message-type table: a
// single-source mapping used both to encode (message type name → wire
// id) and decode (wire id → message type name), matching
// hearthy.protocol.decoder._packet_type_map, which built the same two
// directions from one ordered list of pairs.
//
// RemoveSpectators and AutoLogin have no entry in the source's packet
// type map (they were never observed with a body in capture data); an
// AutoLogin message type is defined in the catalogue but not mapped.
// Both are kept in the id table for round-trip fidelity of PacketType
// itself but have no entry here, so encoding/decoding them returns
// UnknownPacketType like any other unmapped id.
var packetTypeNames = map[PacketType]string{
	PowerHistory:         "PowerHistory",
	UserUI:               "UserUI",
	TurnTimer:            "TurnTimer",
	StartGameState:       "StartGameState",
	PreLoad:              "PreLoad",
	PreCast:              "PreCast",
	Notification:         "Notification",
	NAckOption:           "NAckOption",
	GiveUp:               "GiveUp",
	GetGameState:         "GetGameState",
	GameSetup:            "GameSetup",
	GameCancelled:        "GameCancelled",
	FinishGameState:      "FinishGameState",
	EntityChoice:         "EntityChoice",
	DebugMessage:         "DebugMessage",
	ClientPacket:         "ClientPacket",
	ChooseOption:         "ChooseOption",
	ChooseEntities:       "ChooseEntities",
	AllOptions:           "AllOptions",
	BeginPlaying:         "BeginPlaying",
	AuroraHandshake:      "AuroraHandshake",
	GameStarting:         "GameStarting",
	DebugConsoleCommand:  "DebugConsoleCommand",
	DebugConsoleResponse: "DebugConsoleResponse",
	Ping:                 "Ping",
	Pong:                 "Pong",
	ForcedEntityChoice:   "ForcedEntityChoice",
	ServerResult:         "ServerResult",
	SpectatorNotify:      "SpectatorNotify",
	SpectatorHandshake:   "SpectatorHandshake",
	InviteToSpectate:     "InviteToSpectate",
}

var packetTypeByMessageName = func() map[string]PacketType {
	out := make(map[string]PacketType, len(packetTypeNames))
	for id, name := range packetTypeNames {
		out[name] = id
	}
	return out
}()

// MessageTypeForPacket returns the registered message type for an
// Aurora packet-type id, or UnknownPacketType if it isn't mapped.
func MessageTypeForPacket(packetType PacketType) (*schema.MessageType, error) {
	name, ok := packetTypeNames[packetType]
	if !ok {
		return nil, herr.New(herr.UnknownPacketType, "no message type mapped for packet type %d", packetType)
	}
	t, ok := Registry.Lookup(name)
	if !ok {
		return nil, herr.New(herr.UnknownPacketType, "packet type %d maps to unregistered message type %q", packetType, name)
	}
	return t, nil
}

// PacketTypeForMessage returns the Aurora packet-type id a message
// type's name is registered under.
func PacketTypeForMessage(messageTypeName string) (PacketType, error) {
	id, ok := packetTypeByMessageName[messageTypeName]
	if !ok {
		return 0, herr.New(herr.UnknownPacketType, "message type %q has no registered packet type", messageTypeName)
	}
	return id, nil
}

// DecodePacket decodes an Aurora frame body given its wire packet-type
// id, dispatching through the packet-type table the way
// decoder.decode_packet looked up _packet_type_handlers.
func DecodePacket(packetType PacketType, body []byte) (*schema.MessageValue, error) {
	t, err := MessageTypeForPacket(packetType)
	if err != nil {
		return nil, err
	}
	return schema.Decode(t, body)
}

// EncodePacket serializes v and returns its packet-type id and wire
// body, mirroring decoder.encode_packet's two outputs (it wrote them
// into one buffer with an 8-byte header; the frame writer in package
// frame is responsible for that header here).
func EncodePacket(v *schema.MessageValue) (PacketType, []byte, error) {
	packetType, err := PacketTypeForMessage(v.Type.Name)
	if err != nil {
		return 0, nil, err
	}
	body, err := schema.Encode(v)
	if err != nil {
		return 0, nil, err
	}
	return packetType, body, nil
}
