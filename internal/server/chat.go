package server

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"BuyOrWait/internal/assistant"
	"BuyOrWait/internal/logger"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Chat frame types.
const (
	FrameSelect   = "select"
	FrameAsk      = "ask"
	FrameHistory  = "history"
	FrameSelected = "selected"
	FrameAnswer   = "answer"
	FrameError    = "error"
)

const (
	chatReadLimit = 4096
	chatWriteWait = 10 * time.Second
)

type clientFrame struct {
	Type      string `json:"type"`
	State     string `json:"state,omitempty"`
	Commodity string `json:"commodity,omitempty"`
	Question  string `json:"question,omitempty"`
}

type serverFrame struct {
	Type      string        `json:"type"`
	SessionID string        `json:"session_id"`
	Analysis  *analysisView `json:"analysis,omitempty"`
	Answer    string        `json:"answer,omitempty"`
	History   []messageView `json:"history,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// handleChat serves one chat session per connection. The session and its
// conversation live only as long as the connection.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warnf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(chatReadLimit)

	sess := assistant.NewSession(uuid.NewString())
	logger.Log.Infof("chat session %s opened from %s", sess.ID, r.RemoteAddr)
	defer logger.Log.Infof("chat session %s closed", sess.ID)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-s.done:
			if err := conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second)); err != nil {
				logger.Log.Debugf("chat session %s close: %v", sess.ID, err)
			}
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && !errors.Is(err, net.ErrClosed) {
				logger.Log.Debugf("chat session %s read: %v", sess.ID, err)
			}
			return
		}

		var in clientFrame
		if err := json.Unmarshal(data, &in); err != nil {
			if err := s.writeFrame(conn, serverFrame{Type: FrameError, SessionID: sess.ID, Error: "invalid frame"}); err != nil {
				logger.Log.Debugf("chat session %s write: %v", sess.ID, err)
				return
			}
			continue
		}
		out, ok := s.chatReply(sess, in)
		if !ok {
			continue
		}
		if err := s.writeFrame(conn, out); err != nil {
			logger.Log.Debugf("chat session %s write: %v", sess.ID, err)
			return
		}
	}
}

// chatReply applies one client frame to the session. ok is false when there is
// nothing to send back.
func (s *Server) chatReply(sess *assistant.Session, in clientFrame) (out serverFrame, ok bool) {
	out.SessionID = sess.ID
	switch in.Type {
	case FrameSelect:
		in.State, in.Commodity = strings.TrimSpace(in.State), strings.TrimSpace(in.Commodity)
		if err := s.validate.Struct(selectionQuery{State: in.State, Commodity: in.Commodity}); err != nil {
			out.Type, out.Error = FrameError, "state and commodity are required"
			return out, true
		}
		a, err := s.Advisor.Analyze(in.State, in.Commodity)
		if err != nil {
			sess.Select(nil)
			_, msg := statusFor(err)
			out.Type, out.Error = FrameError, msg
			return out, true
		}
		sess.Select(a)
		out.Type, out.Analysis = FrameSelected, newAnalysisView(a)
		return out, true
	case FrameAsk:
		if !sess.Selected() {
			out.Type, out.Error = FrameError, assistant.NoSelectionText
			return out, true
		}
		answer := s.Responder.Answer(&sess.Log, in.Question, sess.Context())
		if answer == "" {
			return out, false
		}
		out.Type, out.Answer = FrameAnswer, answer
		return out, true
	case FrameHistory:
		out.Type, out.History = FrameHistory, newHistoryView(sess.Recent())
		return out, true
	default:
		out.Type, out.Error = FrameError, "unknown frame type "+in.Type
		return out, true
	}
}

func (s *Server) writeFrame(conn *websocket.Conn, f serverFrame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
