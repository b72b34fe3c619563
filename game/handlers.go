package game

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"
)

const maxNicknameLength = 20

// Handler glues the transport to the store: inbound packets become
// store calls, store results become acks and room broadcasts. It holds
// no game state of its own.
type Handler struct {
	store     *Store
	hub       *Hub
	publicURL string
	upgrader  websocket.Upgrader
}

func NewHandler(store *Store, hub *Hub, publicURL string) *Handler {
	return &Handler{
		store:     store,
		hub:       hub,
		publicURL: publicURL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is checked by the server middleware before upgrade.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) WebsocketHandler(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(uuid.NewString(), NewWebsocketConn(conn))
	h.hub.Register(client)
	log.Info().Str("client", client.ID).Msg("client connected")

	go client.WritePump()
	client.ReadPump(h.Dispatch)

	h.handleDisconnect(client)
	h.hub.Unregister(client.ID)
	client.Shutdown()
	log.Info().Str("client", client.ID).Msg("client disconnected")
}

// RoomQRHandler renders a QR code of the join link for sharing a room
// across the table.
func (h *Handler) RoomQRHandler(ctx *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(ctx.Param("code")))
	if _, ok := h.store.PublicRoom(code); !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": ErrRoomNotFound.Error()})
		return
	}

	png, err := qrcode.Encode(h.publicURL+"/room/"+code, qrcode.Medium, 256)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not render qr code"})
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}

// Dispatch routes one inbound packet. It runs on the client's read
// goroutine; the store does its own locking.
func (h *Handler) Dispatch(c *Client, pkt Packet) {
	switch pkt.Event {
	case EventCreateRoom:
		h.handleCreateRoom(c, pkt)
	case EventJoinRoom:
		h.handleJoinRoom(c, pkt)
	case EventLeaveRoom:
		h.handleLeaveRoom(c)
	case EventStartGame:
		h.handleStartGame(c, pkt)
	case EventStartVoting:
		h.handleStartVoting(c)
	case EventCastVote:
		h.handleCastVote(c, pkt)
	case EventPlayAgain:
		h.handlePlayAgain(c)
	default:
		log.Debug().Str("client", c.ID).Str("event", pkt.Event).Msg("unknown event")
	}
}

func (h *Handler) handleCreateRoom(c *Client, pkt Packet) {
	var data CreateRoomData
	json.Unmarshal(pkt.Data, &data)

	nickname, errMsg := cleanNickname(data.Nickname)
	if errMsg != "" {
		h.ack(c, Ack{Seq: pkt.Seq, Error: errMsg})
		return
	}

	pub := h.store.CreateRoom(c.ID, nickname, data.Password)
	h.hub.JoinRoom(pub.Code, c.ID)

	log.Info().Str("room", pub.Code).Str("nickname", nickname).Msg("room created")
	h.ack(c, Ack{Seq: pkt.Seq, Success: true, Code: pub.Code, Room: &pub})
}

func (h *Handler) handleJoinRoom(c *Client, pkt Packet) {
	var data JoinRoomData
	json.Unmarshal(pkt.Data, &data)

	nickname, errMsg := cleanNickname(data.Nickname)
	if errMsg != "" {
		h.ack(c, Ack{Seq: pkt.Seq, Error: errMsg})
		return
	}
	code := strings.ToUpper(strings.TrimSpace(data.Code))
	if code == "" {
		h.ack(c, Ack{Seq: pkt.Seq, Error: "Room code is required"})
		return
	}

	pub, player, err := h.store.JoinRoom(code, c.ID, nickname, data.Password)
	if err != nil {
		h.ack(c, Ack{Seq: pkt.Seq, Error: err.Error()})
		return
	}

	h.hub.JoinRoom(code, c.ID)
	h.hub.BroadcastExcept(code, c.ID, marshalPacket(EventPlayerJoined, player))

	log.Info().Str("room", code).Str("nickname", nickname).Msg("player joined")
	h.ack(c, Ack{Seq: pkt.Seq, Success: true, Room: &pub})
}

func (h *Handler) handleLeaveRoom(c *Client) {
	res := h.store.RemovePlayer(c.ID)
	if res.Code == "" {
		return
	}

	h.hub.LeaveRoom(res.Code, c.ID)
	if res.Room != nil {
		h.hub.Broadcast(res.Code, marshalPacket(EventPlayerLeft, c.ID))
		h.hub.Broadcast(res.Code, marshalPacket(EventStateChanged, res.Room))
		if res.AllVoted {
			h.finishVote(res.Code)
		}
	}
	log.Info().Str("room", res.Code).Str("client", c.ID).Msg("player left")
}

func (h *Handler) handleStartGame(c *Client, pkt Packet) {
	var data StartGameData
	json.Unmarshal(pkt.Data, &data)

	code, ok := h.store.CodeForPlayer(c.ID)
	if !ok {
		h.ack(c, Ack{Seq: pkt.Seq, Error: "Not in a room"})
		return
	}

	pub, err := h.store.StartGame(code, c.ID, data.RoundDuration)
	if err != nil {
		h.ack(c, Ack{Seq: pkt.Seq, Error: err.Error()})
		return
	}

	// Each member sees a different view, so this is unicast per player,
	// never one shared broadcast.
	for _, p := range pub.Players {
		if view, ok := h.store.GameStateForPlayer(code, p.ID); ok {
			h.hub.Send(p.ID, marshalPacket(EventGameStarted, view))
		}
	}
	h.hub.Broadcast(code, marshalPacket(EventStateChanged, pub))

	log.Info().Str("room", code).Msg("game started")
	h.ack(c, Ack{Seq: pkt.Seq, Success: true})
}

func (h *Handler) handleStartVoting(c *Client) {
	code, ok := h.store.CodeForPlayer(c.ID)
	if !ok {
		return
	}

	pub, err := h.store.StartVoting(code, c.ID)
	if err != nil {
		log.Debug().Str("room", code).Err(err).Msg("start voting rejected")
		return
	}

	h.hub.Broadcast(code, marshalPacket(EventVotingStarted, nil))
	h.hub.Broadcast(code, marshalPacket(EventStateChanged, pub))
	log.Info().Str("room", code).Msg("voting started")
}

func (h *Handler) handleCastVote(c *Client, pkt Packet) {
	var data VoteData
	json.Unmarshal(pkt.Data, &data)

	code, ok := h.store.CodeForPlayer(c.ID)
	if !ok {
		h.ack(c, Ack{Seq: pkt.Seq, Error: "Not in a room"})
		return
	}

	allVoted, err := h.store.CastVote(code, c.ID, data.TargetID)
	if err != nil {
		h.ack(c, Ack{Seq: pkt.Seq, Error: err.Error()})
		return
	}

	h.hub.Broadcast(code, marshalPacket(EventVoteCast, c.ID))
	if allVoted {
		h.finishVote(code)
	}
	h.ack(c, Ack{Seq: pkt.Seq, Success: true})
}

func (h *Handler) handlePlayAgain(c *Client) {
	code, ok := h.store.CodeForPlayer(c.ID)
	if !ok {
		return
	}

	pub, err := h.store.ResetToLobby(code, c.ID)
	if err != nil {
		log.Debug().Str("room", code).Err(err).Msg("reset rejected")
		return
	}

	h.hub.Broadcast(code, marshalPacket(EventStateChanged, pub))
	log.Info().Str("room", code).Msg("room reset to lobby")
}

// finishVote closes the round once the last vote is in: reveal first,
// then the state change that flips clients to the results screen.
func (h *Handler) finishVote(code string) {
	pub, ok := h.store.EndGame(code)
	if !ok {
		return
	}
	if results, ok := h.store.VoteResults(code); ok {
		h.hub.Broadcast(code, marshalPacket(EventResults, results))
	}
	h.hub.Broadcast(code, marshalPacket(EventStateChanged, pub))
	log.Info().Str("room", code).Msg("voting complete")
}

// handleDisconnect mirrors an explicit leave for a dropped connection.
func (h *Handler) handleDisconnect(c *Client) {
	h.handleLeaveRoom(c)
}

func (h *Handler) ack(c *Client, ack Ack) {
	c.Send(marshalPacket(EventAck, ack))
}

func cleanNickname(nickname string) (string, string) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return "", "Nickname is required"
	}
	if len([]rune(nickname)) > maxNicknameLength {
		return "", "Nickname is too long"
	}
	return nickname, ""
}
