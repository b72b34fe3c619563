package game

import "encoding/json"

// Client -> server events.
const (
	EventCreateRoom  = "room:create"
	EventJoinRoom    = "room:join"
	EventLeaveRoom   = "room:leave"
	EventStartGame   = "game:start"
	EventStartVoting = "game:start-voting"
	EventCastVote    = "game:vote"
	EventPlayAgain   = "game:play-again"
)

// Server -> client events.
const (
	EventAck           = "ack"
	EventPlayerJoined  = "room:player-joined"
	EventPlayerLeft    = "room:player-left"
	EventStateChanged  = "room:state-changed"
	EventGameStarted   = "game:started"
	EventVotingStarted = "game:voting-started"
	EventVoteCast      = "game:vote-cast"
	EventResults       = "game:results"
)

// Packet is the wire envelope in both directions. Requests carry a
// client-chosen seq that the matching ack echoes back; fire-and-forget
// events leave it at zero.
type Packet struct {
	Event string          `json:"event"`
	Seq   int             `json:"seq,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type CreateRoomData struct {
	Nickname string `json:"nickname"`
	Password string `json:"password,omitempty"`
}

type JoinRoomData struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`
	Password string `json:"password,omitempty"`
}

type StartGameData struct {
	RoundDuration int `json:"roundDuration,omitempty"`
}

type VoteData struct {
	TargetID string `json:"targetId"`
}

type Ack struct {
	Seq     int         `json:"seq"`
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Room    *PublicRoom `json:"room,omitempty"`
}

func marshalPacket(event string, data any) []byte {
	var raw json.RawMessage
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	b, _ := json.Marshal(Packet{Event: event, Data: raw})
	return b
}
