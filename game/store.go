package game

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Store is the single authoritative registry of rooms and the
// player-to-room index. Websocket handlers run on parallel goroutines,
// so every operation takes the store lock and works as one synchronous
// read-modify-write; nothing here blocks on I/O or timers.
//
// Operations return value snapshots (PublicRoom, GameView, ...), never
// a live *room, so callers can't race the lock.
type Store struct {
	mu           sync.RWMutex
	rooms        map[string]*room
	playerToRoom map[string]string
	codes        CodeGenerator
	catalog      LocationCatalog
}

func NewStore(codes CodeGenerator, catalog LocationCatalog) *Store {
	return &Store{
		rooms:        make(map[string]*room),
		playerToRoom: make(map[string]string),
		codes:        codes,
		catalog:      catalog,
	}
}

// CreateRoom opens a single-member lobby room with the caller as host.
// Nickname validity is the caller's job; this never fails.
func (s *Store) CreateRoom(hostID, nickname, password string) PublicRoom {
	s.mu.Lock()
	defer s.mu.Unlock()

	var code string
	for {
		code = s.codes.Generate()
		if _, taken := s.rooms[code]; !taken {
			break
		}
	}

	r := &room{
		code:     code,
		password: password,
		hostID:   hostID,
		players: map[string]*Player{
			hostID: {ID: hostID, Nickname: nickname, IsHost: true, IsConnected: true},
		},
		order:     []string{hostID},
		state:     StateLobby,
		createdAt: time.Now(),
	}

	s.rooms[code] = r
	s.playerToRoom[hostID] = code

	return r.public()
}

func (s *Store) PublicRoom(code string) (PublicRoom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[code]
	if !ok {
		return PublicRoom{}, false
	}
	return r.public(), true
}

// CodeForPlayer resolves which room a connection currently sits in.
func (s *Store) CodeForPlayer(playerID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code, ok := s.playerToRoom[playerID]
	return code, ok
}

func (s *Store) JoinRoom(code, playerID, nickname, password string) (PublicRoom, Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[code]
	if !ok {
		return PublicRoom{}, Player{}, ErrRoomNotFound
	}
	if r.password != "" && r.password != password {
		return PublicRoom{}, Player{}, ErrInvalidPassword
	}
	if r.state != StateLobby {
		return PublicRoom{}, Player{}, ErrGameInProgress
	}
	if _, member := r.players[playerID]; member {
		return PublicRoom{}, Player{}, ErrAlreadyInRoom
	}
	for _, p := range r.players {
		if strings.EqualFold(p.Nickname, nickname) {
			return PublicRoom{}, Player{}, ErrNicknameTaken
		}
	}

	player := &Player{ID: playerID, Nickname: nickname, IsConnected: true}
	r.players[playerID] = player
	r.order = append(r.order, playerID)
	s.playerToRoom[playerID] = code

	return r.public(), *player, nil
}

// RemovePlayer takes a player out of whatever room they are in. It never
// fails: removing an unknown id is a no-op. The last member leaving
// deletes the room; a leaving host hands the role to the earliest
// remaining joiner. A departure mid-vote can complete the vote for the
// players left behind, which RemoveResult.AllVoted reports.
func (s *Store) RemovePlayer(playerID string) RemoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.playerToRoom[playerID]
	if !ok {
		return RemoveResult{}
	}
	r, ok := s.rooms[code]
	if !ok {
		delete(s.playerToRoom, playerID)
		return RemoveResult{}
	}

	wasHost := false
	if p, member := r.players[playerID]; member {
		wasHost = p.IsHost
	}

	delete(r.players, playerID)
	delete(s.playerToRoom, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.game != nil {
		delete(r.game.votes, playerID)
	}

	if len(r.players) == 0 {
		delete(s.rooms, code)
		return RemoveResult{Code: code, WasHost: wasHost}
	}

	if wasHost {
		newHost := r.players[r.order[0]]
		newHost.IsHost = true
		r.hostID = newHost.ID
	}

	pub := r.public()
	return RemoveResult{
		Code:     code,
		Room:     &pub,
		WasHost:  wasHost,
		AllVoted: r.state == StateVoting && r.allVoted(),
	}
}

func (s *Store) StartGame(code, requesterID string, roundDuration int) (PublicRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[code]
	if !ok {
		return PublicRoom{}, ErrRoomNotFound
	}
	if r.hostID != requesterID {
		return PublicRoom{}, ErrNotHost
	}
	if r.state != StateLobby {
		return PublicRoom{}, ErrGameInProgress
	}
	if len(r.players) < MinPlayers {
		return PublicRoom{}, ErrNotEnoughPlayers
	}

	if roundDuration <= 0 {
		roundDuration = DefaultRoundDuration
	}

	r.game = &gameData{
		spyID:          r.order[rand.Intn(len(r.order))],
		location:       s.catalog.Pick(),
		roundDuration:  roundDuration,
		roundStartedAt: time.Now().UnixMilli(),
		votes:          make(map[string]string),
	}
	r.state = StatePlaying

	return r.public(), nil
}

// GameStateForPlayer builds the view one recipient is allowed to see.
// The spy gets a nil location; everyone else the real one.
func (s *Store) GameStateForPlayer(code, playerID string) (GameView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[code]
	if !ok || r.game == nil {
		return GameView{}, false
	}

	isSpy := r.game.spyID == playerID
	players := make([]PlayerGameState, 0, len(r.order))
	for _, id := range r.order {
		_, voted := r.game.votes[id]
		players = append(players, PlayerGameState{Player: *r.players[id], HasVoted: voted})
	}

	view := GameView{
		IsSpy:          isSpy,
		RoundDuration:  r.game.roundDuration,
		RoundStartedAt: r.game.roundStartedAt,
		Players:        players,
	}
	if !isSpy {
		location := r.game.location
		view.Location = &location
	}
	return view, true
}

func (s *Store) StartVoting(code, requesterID string) (PublicRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[code]
	if !ok {
		return PublicRoom{}, ErrRoomNotFound
	}
	if r.hostID != requesterID {
		return PublicRoom{}, ErrNotHost
	}
	if r.state != StatePlaying {
		return PublicRoom{}, ErrWrongState
	}

	r.state = StateVoting
	return r.public(), nil
}

// CastVote records or overwrites the voter's choice. Re-voting before
// everyone has voted is allowed, last write wins.
func (s *Store) CastVote(code, voterID, targetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[code]
	if !ok {
		return false, ErrRoomNotFound
	}
	if r.state != StateVoting {
		return false, ErrWrongState
	}
	if r.game == nil {
		return false, ErrNoActiveGame
	}
	if _, member := r.players[voterID]; !member {
		return false, ErrNotAMember
	}
	if _, member := r.players[targetID]; !member {
		return false, ErrInvalidTarget
	}
	if voterID == targetID {
		return false, ErrSelfVote
	}

	r.game.votes[voterID] = targetID
	return r.allVoted(), nil
}

// VoteResults resolves the recorded votes into the reveal payload.
// The spy is caught only when they are the unique strict maximum of the
// tally; on a tie nobody is unmasked.
func (s *Store) VoteResults(code string) (VoteResults, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[code]
	if !ok || r.game == nil {
		return VoteResults{}, false
	}

	nickname := func(id string) string {
		if p, ok := r.players[id]; ok {
			return p.Nickname
		}
		return "Unknown"
	}

	votes := make([]VoteRecord, 0, len(r.game.votes))
	counts := make(map[string]int)
	for _, voterID := range r.order {
		targetID, voted := r.game.votes[voterID]
		if !voted {
			continue
		}
		votes = append(votes, VoteRecord{
			VoterID:      voterID,
			VotedFor:     targetID,
			VoterName:    nickname(voterID),
			VotedForName: nickname(targetID),
		})
		counts[targetID]++
	}

	maxVotes, leaders := 0, 0
	accused := ""
	for targetID, count := range counts {
		switch {
		case count > maxVotes:
			maxVotes, leaders, accused = count, 1, targetID
		case count == maxVotes:
			leaders++
		}
	}

	spyID := r.game.spyID
	return VoteResults{
		Votes:     votes,
		SpyID:     spyID,
		SpyName:   nickname(spyID),
		SpyCaught: leaders == 1 && accused == spyID,
		Location:  r.game.location,
	}, true
}

// EndGame moves the room to results unconditionally. It is triggered by
// the vote completing, not by a user action, so there is no host check.
func (s *Store) EndGame(code string) (PublicRoom, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[code]
	if !ok {
		return PublicRoom{}, false
	}

	r.state = StateResults
	return r.public(), true
}

func (s *Store) ResetToLobby(code, requesterID string) (PublicRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[code]
	if !ok {
		return PublicRoom{}, ErrRoomNotFound
	}
	if r.hostID != requesterID {
		return PublicRoom{}, ErrNotHost
	}

	r.state = StateLobby
	r.game = nil
	return r.public(), nil
}

func (r *room) public() PublicRoom {
	players := make([]Player, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, *r.players[id])
	}
	return PublicRoom{
		Code:        r.code,
		HasPassword: r.password != "",
		Players:     players,
		State:       r.state,
		HostID:      r.hostID,
	}
}

// allVoted counts only votes by current members, so a departure can
// flip it to true without anyone re-voting.
func (r *room) allVoted() bool {
	if r.game == nil {
		return false
	}
	voted := 0
	for voterID := range r.game.votes {
		if _, member := r.players[voterID]; member {
			voted++
		}
	}
	return voted == len(r.players)
}
