package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/wizard"
)

const (
	wsReadLimit    = 1 << 20
	wsPongWait     = 60 * time.Second
	wsPingInterval = 30 * time.Second
	wsWriteWait    = 10 * time.Second
)

// Client message types on the preview socket.
const (
	msgInit        = "init"
	msgStep        = "step"
	msgAddSkill    = "add_skill"
	msgRemoveSkill = "remove_skill"
	msgAddHobby    = "add_hobby"
	msgRemoveHobby = "remove_hobby"
)

type WSHandler struct {
	upgrader websocket.Upgrader
	log      *logrus.Logger
}

// NewWSHandler accepts browser connections from allowedOrigins only; an
// empty list accepts any origin.
func NewWSHandler(allowedOrigins []string, log *logrus.Logger) *WSHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	allow := map[string]bool{}
	for _, o := range allowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			allow[strings.ToLower(o)] = true
		}
	}
	return &WSHandler{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allow) == 0 || origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return allow[strings.ToLower(u.Scheme+"://"+u.Host)]
			},
		},
	}
}

type wsClientMsg struct {
	Type  string          `json:"type"`
	Step  string          `json:"step,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Value string          `json:"value,omitempty"`
}

type wsServerMsg struct {
	Type     string            `json:"type"`
	Step     wizard.Step       `json:"step,omitempty"`
	HTML     string            `json:"html,omitempty"`
	Template models.TemplateID `json:"template,omitempty"`
	Density  string            `json:"density,omitempty"`
	Message  string            `json:"message,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.c.WriteJSON(v)
}

func (w *wsConn) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.c.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
}

// Preview holds one wizard state per connection and answers every edit with
// a freshly rendered document.
func (h *WSHandler) Preview(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	go func() {
		t := time.NewTicker(wsPingInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := wc.ping(); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	state := wizard.New(models.Resume{})
	if err := wc.writeJSON(previewMsg(state)); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.WithError(err).Debug("preview socket closed")
			}
			return
		}

		reply := handlePreviewMsg(state, data)
		if err := wc.writeJSON(reply); err != nil {
			return
		}
	}
}

func handlePreviewMsg(state *wizard.State, data []byte) wsServerMsg {
	var msg wsClientMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return errorMsg("invalid json")
	}

	switch msg.Type {
	case msgInit:
		var r models.Resume
		if err := json.Unmarshal(msg.Data, &r); err != nil {
			return errorMsg("invalid resume data")
		}
		*state = *wizard.New(r)
	case msgStep:
		step, ok := wizard.ParseStep(msg.Step)
		if !ok {
			return errorMsg("unknown step")
		}
		if err := state.Apply(step, msg.Data); err != nil {
			return errorMsg(err.Error())
		}
	case msgAddSkill:
		state.AddSkill(msg.Value)
	case msgRemoveSkill:
		state.RemoveSkill(msg.Value)
	case msgAddHobby:
		state.AddHobby(msg.Value)
	case msgRemoveHobby:
		state.RemoveHobby(msg.Value)
	default:
		return errorMsg("unknown message type")
	}
	return previewMsg(state)
}

func previewMsg(state *wizard.State) wsServerMsg {
	res := state.Preview()
	return wsServerMsg{
		Type:     "preview",
		Step:     state.CurrentStep,
		HTML:     res.HTML,
		Template: res.Template,
		Density:  string(res.Density),
	}
}

func errorMsg(m string) wsServerMsg {
	return wsServerMsg{Type: "error", Message: m}
}
