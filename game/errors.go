package game

import "errors"

var (
	ErrRoomNotFound     = errors.New("Room not found")
	ErrInvalidPassword  = errors.New("Invalid password")
	ErrGameInProgress   = errors.New("Game already in progress")
	ErrAlreadyInRoom    = errors.New("Already in room")
	ErrNicknameTaken    = errors.New("Nickname already taken")
	ErrNotHost          = errors.New("Only the host can do that")
	ErrNotEnoughPlayers = errors.New("Need at least 3 players to start")
	ErrWrongState       = errors.New("Wrong game state")
	ErrNoActiveGame     = errors.New("No game data")
	ErrNotAMember       = errors.New("You are not in this room")
	ErrInvalidTarget    = errors.New("Invalid target")
	ErrSelfVote         = errors.New("Cannot vote for yourself")
)
