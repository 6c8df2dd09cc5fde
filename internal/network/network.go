package network

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"brawl/internal/config"
	"brawl/internal/match"
	"brawl/internal/protocol"
	"brawl/internal/room"
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	rooms *room.Manager
	log   *slog.Logger
}

type createRoomPayload struct {
	Difficulty string `json:"difficulty"`
}

// NewRouter wires the HTTP API and the websocket endpoint.
func NewRouter(m *room.Manager, log *slog.Logger) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{rooms: m, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), h.requestLog)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api := r.Group("/api")
	api.GET("/rooms", h.ListRooms)
	api.POST("/rooms", h.CreateRoom)
	r.GET("/ws", h.ServeWS)
	return r
}

func (h *Handler) requestLog(c *gin.Context) {
	c.Next()
	h.log.Debug("http", "method", c.Request.Method, "path", c.FullPath(), "status", c.Writer.Status())
}

func (h *Handler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.rooms.ListRooms()})
}

// CreateRoom starts a new match. An empty body uses the default difficulty.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomPayload
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}
	code, err := h.rooms.CreateRoom(config.Difficulty(req.Difficulty))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, config.ErrInvalidConfiguration) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": code})
}

func (h *Handler) ServeWS(c *gin.Context) {
	rm, err := h.rooms.Get(c.Query("room"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("upgrade", "err", err)
		return
	}
	client := newClient(conn)
	defer client.Close()
	go client.writePump()

	reply := make(chan room.JoinResult, 1)
	select {
	case rm.Inbox <- room.Join{Surface: client, Reply: reply}:
	case <-rm.Done():
		return
	}
	var viewerID string
	select {
	case res := <-reply:
		viewerID = res.ViewerID
	case <-rm.Done():
		return
	}

	h.readPump(rm, client, viewerID)

	select {
	case rm.Inbox <- room.Leave{ViewerID: viewerID}:
	case <-rm.Done():
	}
}

func (h *Handler) readPump(rm *room.Room, client *wsClient, viewerID string) {
	for {
		_, msg, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("read", "viewer", viewerID, "err", err)
			}
			return
		}
		a, err := decodeInput(msg)
		if err != nil {
			if b, encErr := protocol.Encode(protocol.MsgError, protocol.Error{Message: err.Error()}); encErr == nil {
				_ = client.Send(b)
			}
			continue
		}
		select {
		case rm.Inbox <- room.Act{ViewerID: viewerID, Action: a}:
		case <-rm.Done():
			return
		}
	}
}

func decodeInput(msg []byte) (match.Action, error) {
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return match.Action{}, err
	}
	switch env.T {
	case protocol.MsgAction:
		p, err := protocol.DecodePayload[protocol.Action](env)
		if err != nil {
			return match.Action{}, err
		}
		return p.ToMatch()
	case protocol.MsgKey:
		p, err := protocol.DecodePayload[protocol.Key](env)
		if err != nil {
			return match.Action{}, err
		}
		return p.ToMatch()
	}
	return match.Action{}, fmt.Errorf("%w: message %q", protocol.ErrUnknownInput, env.T)
}
