package game

import "time"

type RoomState string

const (
	StateLobby   RoomState = "lobby"
	StatePlaying RoomState = "playing"
	StateVoting  RoomState = "voting"
	StateResults RoomState = "results"
)

// MinPlayers is the minimum room size for a round to make sense.
const MinPlayers = 3

// DefaultRoundDuration is the advisory countdown length in seconds.
// The server never enforces it; it only feeds the client display.
const DefaultRoundDuration = 480

type Player struct {
	ID          string `json:"id"`
	Nickname    string `json:"nickname"`
	IsHost      bool   `json:"isHost"`
	IsConnected bool   `json:"isConnected"`
}

// gameData exists only while a room is in playing, voting or results state.
type gameData struct {
	spyID          string
	location       string
	roundDuration  int
	roundStartedAt int64
	votes          map[string]string // voterID -> targetID
}

type room struct {
	code      string
	password  string
	hostID    string
	players   map[string]*Player
	order     []string // join order, keeps the display list stable
	state     RoomState
	createdAt time.Time
	game      *gameData
}

// PublicRoom is the projection safe to broadcast to every member.
// It never carries the password or any game secret.
type PublicRoom struct {
	Code        string    `json:"code"`
	HasPassword bool      `json:"hasPassword"`
	Players     []Player  `json:"players"`
	State       RoomState `json:"state"`
	HostID      string    `json:"hostId"`
}

type PlayerGameState struct {
	Player
	HasVoted bool `json:"hasVoted"`
}

// GameView is computed per recipient: the spy gets a nil location,
// everyone else the real one. It must never be broadcast as one
// shared object.
type GameView struct {
	Location       *string           `json:"location"`
	IsSpy          bool              `json:"isSpy"`
	RoundDuration  int               `json:"roundDuration"`
	RoundStartedAt int64             `json:"roundStartedAt"`
	Players        []PlayerGameState `json:"players"`
}

type VoteRecord struct {
	VoterID      string `json:"voterId"`
	VotedFor     string `json:"votedFor"`
	VoterName    string `json:"voterName"`
	VotedForName string `json:"votedForName"`
}

type VoteResults struct {
	Votes     []VoteRecord `json:"votes"`
	SpyID     string       `json:"spyId"`
	SpyName   string       `json:"spyName"`
	SpyCaught bool         `json:"spyCaught"`
	Location  string       `json:"location"`
}

// RemoveResult reports what happened when a player was removed. Room is
// nil when the player was not in any room or the room got deleted with
// them. AllVoted flags that the departure completed a pending vote.
type RemoveResult struct {
	Code     string
	Room     *PublicRoom
	WasHost  bool
	AllVoted bool
}
