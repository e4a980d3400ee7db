package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"caret/editor"
	"caret/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage covers both directions of the socket protocol. Clients send
// type, block and variant; the server replies with type plus html, document
// or error.
type wsMessage struct {
	Type     string           `json:"type"`
	Block    string           `json:"block,omitempty"`
	Variant  string           `json:"variant,omitempty"`
	HTML     string           `json:"html,omitempty"`
	Document *editor.Document `json:"document,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := h.st.Document(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		h.log.Error("Unable to load document", zap.String("id", id), zap.Error(err))
		http.Error(w, "unable to load document", http.StatusInternalServerError)
		return
	}

	ed := editor.New(h.env.Cfg, h.log)
	if err := ed.Load(*doc); err != nil {
		h.log.Error("Unable to load document", zap.String("id", id), zap.Error(err))
		http.Error(w, "unable to load document", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s := &session{st: h.st, conn: conn, ed: ed, log: h.log.With(zap.String("document", ed.DocumentID()))}
	s.log.Info("Editing session opened")
	defer s.log.Info("Editing session closed")
	s.loop(r.Context())
}

// session drives one editor over one connection. The read loop is the only
// goroutine touching the editor and the only websocket writer, gorilla
// forbids concurrent writes.
type session struct {
	st   *store.Store
	conn *websocket.Conn
	ed   *editor.Editor
	log  *zap.Logger
}

func (s *session) loop(ctx context.Context) {
	if !s.pushDocument() {
		return
	}
	for {
		var msg wsMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			// client went away, or the message was not even JSON
			return
		}

		var ok bool
		switch msg.Type {
		case "click":
			ok = s.handleClick(ctx, msg)
		case "settings":
			ok = s.handleSettings(msg)
		case "save":
			ok = s.handleSave(ctx)
		default:
			ok = s.reject(fmt.Sprintf("unknown message type %q", msg.Type))
		}
		if !ok {
			return
		}
	}
}

func (s *session) send(msg wsMessage) bool {
	if err := s.conn.WriteJSON(msg); err != nil {
		s.log.Debug("Unable to write to websocket", zap.Error(err))
		return false
	}
	return true
}

func (s *session) reject(text string) bool {
	s.log.Debug("Rejecting client message", zap.String("error", text))
	return s.send(wsMessage{Type: "error", Error: text})
}

func (s *session) pushDocument() bool {
	html, err := s.ed.HTML()
	if err != nil {
		s.log.Error("Unable to serialize document", zap.Error(err))
		return s.reject("unable to serialize document")
	}
	return s.send(wsMessage{Type: "document", HTML: html})
}

// handleClick feeds the pointer event into the kernel. A click that resolves
// to a state change persists the document and pushes a fresh render, one that
// does not is over with the dispatch.
func (s *session) handleClick(ctx context.Context, msg wsMessage) bool {
	id, err := uuid.Parse(msg.Block)
	if err != nil {
		return s.reject(fmt.Sprintf("invalid block ID %q", msg.Block))
	}

	before := s.ed.Changes()
	if err := s.ed.Click(id, msg.Variant); err != nil {
		return s.reject(err.Error())
	}
	if s.ed.Changes() == before {
		return true
	}

	if _, err := s.st.SaveDocument(ctx, s.ed.Save()); err != nil {
		s.log.Error("Unable to persist document", zap.Error(err))
		return s.reject("unable to persist document")
	}
	return s.pushDocument()
}

func (s *session) handleSettings(msg wsMessage) bool {
	id, err := uuid.Parse(msg.Block)
	if err != nil {
		return s.reject(fmt.Sprintf("invalid block ID %q", msg.Block))
	}
	panel, err := s.ed.Settings(id)
	if err != nil {
		return s.reject(err.Error())
	}
	html, err := panel.HTML()
	if err != nil {
		s.log.Error("Unable to serialize settings", zap.Error(err))
		return s.reject("unable to serialize settings")
	}
	return s.send(wsMessage{Type: "settings", Block: msg.Block, HTML: html})
}

func (s *session) handleSave(ctx context.Context) bool {
	saved, err := s.st.SaveDocument(ctx, s.ed.Save())
	if err != nil {
		s.log.Error("Unable to persist document", zap.Error(err))
		return s.reject("unable to persist document")
	}
	return s.send(wsMessage{Type: "saved", Document: &saved})
}
