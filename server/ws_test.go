package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialWS(t *testing.T, srv *httptest.Server, path string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	return websocket.DefaultDialer.Dial(wsURL, nil)
}

func readMsg(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func sendMsg(t *testing.T, conn *websocket.Conn, msg wsMessage) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
}

func TestWSUnknownDocument(t *testing.T) {
	registerFixtures(t)
	srv, _ := newTestServer(t)

	_, resp, err := dialWS(t, srv, "/api/documents/0193d4b2-3a1e-7c55-bd09-7a37f4a1dfff/ws")
	if err == nil {
		t.Fatal("expected handshake failure for unknown document")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("handshake response = %v, want 404", resp)
	}
}

func TestWSSession(t *testing.T) {
	registerFixtures(t)
	srv, h := newTestServer(t)
	doc := seedDocument(t, h)

	paragraph := doc.Blocks[0].ID
	quote := doc.Blocks[1].ID

	conn, _, err := dialWS(t, srv, "/api/documents/"+doc.ID+"/ws")
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	defer conn.Close()

	// the session opens with a full document render
	msg := readMsg(t, conn)
	if msg.Type != "document" {
		t.Fatalf("first message type = %q, want document", msg.Type)
	}
	if !strings.Contains(msg.HTML, "ce-editor") || !strings.Contains(msg.HTML, "variant--citation") {
		t.Fatalf("initial render unexpected:\n%s", msg.HTML)
	}

	t.Run("settings panel", func(t *testing.T) {
		sendMsg(t, conn, wsMessage{Type: "settings", Block: paragraph})
		msg := readMsg(t, conn)
		if msg.Type != "settings" || msg.Block != paragraph {
			t.Fatalf("reply = %+v, want settings for %s", msg, paragraph)
		}
		if !strings.Contains(msg.HTML, "cdx-variants") {
			t.Errorf("panel misses the variants row:\n%s", msg.HTML)
		}
		if got := strings.Count(msg.HTML, "data-variant="); got != 8 {
			t.Errorf("panel has %d toggles, want 8", got)
		}
	})

	t.Run("toggle on", func(t *testing.T) {
		sendMsg(t, conn, wsMessage{Type: "click", Block: paragraph, Variant: "call-out"})
		msg := readMsg(t, conn)
		if msg.Type != "document" {
			t.Fatalf("reply type = %q, want document", msg.Type)
		}
		if !strings.Contains(msg.HTML, "variant--call-out") {
			t.Errorf("render misses variant--call-out:\n%s", msg.HTML)
		}

		stored, err := h.st.Document(context.Background(), doc.ID)
		if err != nil {
			t.Fatalf("Document() error = %v", err)
		}
		if got := stored.Blocks[0].Tunes["variant"]; got != "call-out" {
			t.Errorf("persisted variant = %q, want call-out", got)
		}
	})

	t.Run("toggle off", func(t *testing.T) {
		sendMsg(t, conn, wsMessage{Type: "click", Block: paragraph, Variant: "call-out"})
		msg := readMsg(t, conn)
		if msg.Type != "document" {
			t.Fatalf("reply type = %q, want document", msg.Type)
		}
		if strings.Contains(msg.HTML, "variant--call-out") {
			t.Errorf("variant--call-out must be gone:\n%s", msg.HTML)
		}

		stored, err := h.st.Document(context.Background(), doc.ID)
		if err != nil {
			t.Fatalf("Document() error = %v", err)
		}
		if got, ok := stored.Blocks[0].Tunes["variant"]; ok {
			t.Errorf("persisted variant = %q, want none", got)
		}
	})

	t.Run("background click is silent", func(t *testing.T) {
		// a click outside any toggle changes nothing and pushes nothing, the
		// next reply on the wire belongs to the save that follows
		sendMsg(t, conn, wsMessage{Type: "click", Block: quote, Variant: ""})
		sendMsg(t, conn, wsMessage{Type: "save"})

		msg := readMsg(t, conn)
		if msg.Type != "saved" {
			t.Fatalf("reply type = %q, want saved", msg.Type)
		}
		if msg.Document == nil || msg.Document.ID != doc.ID {
			t.Fatalf("saved document = %+v, want ID %s", msg.Document, doc.ID)
		}
		if got := msg.Document.Blocks[1].Tunes["variant"]; got != "citation" {
			t.Errorf("quote variant = %q, want citation untouched", got)
		}
	})

	t.Run("replace instead of stack", func(t *testing.T) {
		sendMsg(t, conn, wsMessage{Type: "click", Block: quote, Variant: "text-lg"})
		msg := readMsg(t, conn)
		if msg.Type != "document" {
			t.Fatalf("reply type = %q, want document", msg.Type)
		}
		if strings.Contains(msg.HTML, "variant--citation") {
			t.Errorf("citation must be replaced:\n%s", msg.HTML)
		}
		if !strings.Contains(msg.HTML, "variant--text-lg") {
			t.Errorf("render misses variant--text-lg:\n%s", msg.HTML)
		}
	})
}

func TestWSInvalidBlock(t *testing.T) {
	registerFixtures(t)
	srv, h := newTestServer(t)
	doc := seedDocument(t, h)

	conn, _, err := dialWS(t, srv, "/api/documents/"+doc.ID+"/ws")
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	defer conn.Close()
	readMsg(t, conn) // initial document

	sendMsg(t, conn, wsMessage{Type: "click", Block: "not-a-uuid", Variant: "call-out"})
	msg := readMsg(t, conn)
	if msg.Type != "error" || !strings.Contains(msg.Error, "invalid block ID") {
		t.Fatalf("reply = %+v, want invalid block ID error", msg)
	}

	// an unknown but well-formed ID is a kernel error, connection stays up
	sendMsg(t, conn, wsMessage{Type: "click", Block: "0193d4b2-3a1e-7c55-bd09-7a37f4a1dfff", Variant: "call-out"})
	msg = readMsg(t, conn)
	if msg.Type != "error" || !strings.Contains(msg.Error, "no block with ID") {
		t.Fatalf("reply = %+v, want no block error", msg)
	}
}

func TestWSUnknownMessageType(t *testing.T) {
	registerFixtures(t)
	srv, h := newTestServer(t)
	doc := seedDocument(t, h)

	conn, _, err := dialWS(t, srv, "/api/documents/"+doc.ID+"/ws")
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	defer conn.Close()
	readMsg(t, conn) // initial document

	sendMsg(t, conn, wsMessage{Type: "nonsense"})
	msg := readMsg(t, conn)
	if msg.Type != "error" || !strings.Contains(msg.Error, "unknown message type") {
		t.Fatalf("reply = %+v, want unknown message type error", msg)
	}
}

func TestWSQueryToken(t *testing.T) {
	registerFixtures(t)
	h := newTestHandler(t)
	h.env.Cfg.Server.AuthToken = "sekrit"
	srv := httptest.NewServer(newRouter(h))
	t.Cleanup(srv.Close)
	doc := seedDocument(t, h)

	if _, resp, err := dialWS(t, srv, "/api/documents/"+doc.ID+"/ws"); err == nil {
		t.Fatal("expected handshake failure without token")
	} else if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("handshake response = %v, want 401", resp)
	}

	conn, _, err := dialWS(t, srv, "/api/documents/"+doc.ID+"/ws?token=sekrit")
	if err != nil {
		t.Fatalf("WS dial with token: %v", err)
	}
	defer conn.Close()

	if msg := readMsg(t, conn); msg.Type != "document" {
		t.Fatalf("first message type = %q, want document", msg.Type)
	}
}
