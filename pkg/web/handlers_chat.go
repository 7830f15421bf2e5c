package web

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jpillora/eventsource"
	"github.com/marcsv/go-binder/binder"

	"github.com/ghost2804/finhub/pkg/models/chat"
	"github.com/ghost2804/finhub/pkg/services/advisor"
	"github.com/ghost2804/finhub/pkg/settings"
)

const (
	sessionCookie = "finhub_sess"
	esDone        = "[DONE]"
)

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
	Stream         bool   `json:"stream,omitempty"`
}

type chatReply struct {
	Response       string                 `json:"response"`
	ConversationID string                 `json:"conversation_id"`
	History        []chat.HistoryChatItem `json:"history,omitempty"`
}

// conversationID resolves the caller's conversation: an explicit id wins,
// then the session cookie; otherwise a fresh id is minted and set.
func (s *server) conversationID(w http.ResponseWriter, r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, perr := uuid.Parse(c.Value); perr == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(settings.Current.HistoryTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *server) getChatHistory(w http.ResponseWriter, r *http.Request) {
	cid := s.conversationID(w, r, r.URL.Query().Get("cid"))
	data, err := s.sto.Conversation(cid).ListHistory(r.Context())
	if err != nil {
		// a fresh page still renders, just without replayed history
		logger().Infow("list history fail", "cid", cid, "err", err)
	}
	render.JSON(w, r, M{"history": data.Pairs()})
}

func (s *server) postChat(w http.ResponseWriter, r *http.Request) {
	var param chatRequest
	if err := binder.BindBody(r, &param); err != nil {
		apiFail(w, r, 400, "Invalid request format")
		return
	}
	message := strings.TrimSpace(param.Message)
	if message == "" {
		apiFail(w, r, 400, "Message cannot be empty")
		return
	}

	cid := s.conversationID(w, r, param.ConversationID)
	cs := s.sto.Conversation(cid)
	hist, err := cs.ListHistory(r.Context())
	if err != nil {
		logger().Infow("list history fail", "cid", cid, "err", err)
	}

	isSSE := param.Stream || strings.HasSuffix(r.URL.Path, "-sse")
	logger().Infow("chat", "cid", cid, "len", len(message), "sse", isSSE, "ip", r.RemoteAddr)

	reply := s.askAdvisor(r, hist, message)

	item := &chat.HistoryItem{
		Time:     time.Now().Unix(),
		ChatItem: &chat.HistoryChatItem{User: message, Bot: reply},
	}
	if err = cs.AddHistory(r.Context(), item); err != nil {
		logger().Infow("add history fail", "cid", cid, "err", err)
	}

	if isSSE {
		s.chatStreamResponse(w, cid, reply)
		return
	}
	render.JSON(w, r, chatReply{
		Response:       reply,
		ConversationID: cid,
		History:        append(hist, *item).Pairs(),
	})
}

// askAdvisor never fails the request: provider trouble degrades to the
// standing apology, which is also what gets recorded in history.
func (s *server) askAdvisor(r *http.Request, hist chat.HistoryItems, message string) string {
	if s.adv == nil {
		return advisor.ApologyReply
	}
	reply, err := s.adv.Ask(r.Context(), hist, message)
	if err != nil {
		logger().Infow("advisor fail", "err", err)
		return advisor.ApologyReply
	}
	return reply
}

// chatStreamResponse replays the reply over SSE, line by line, closing
// with the done marker.
func (s *server) chatStreamResponse(w http.ResponseWriter, cid, reply string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Add("Conversation-ID", cid)

	var idx int
	for _, line := range strings.SplitAfter(reply, "\n") {
		if line == "" {
			continue
		}
		idx++
		if !writeEvent(w, strconv.Itoa(idx), M{"delta": line, "conversation_id": cid}) {
			return
		}
		flusher.Flush()
	}
	_ = writeEvent(w, strconv.Itoa(idx+1), esDone)
	flusher.Flush()
}

// writeEvent write and auto flush
func writeEvent(w io.Writer, id string, m any) bool {
	var b []byte
	var err error
	if s, ok := m.(string); ok {
		b = []byte(s)
	} else {
		b, err = json.Marshal(m)
		if err != nil {
			logger().Infow("json marshal fail", "m", m, "err", err)
			return false
		}
	}

	if err = eventsource.WriteEvent(w, eventsource.Event{
		ID:   id,
		Data: b,
	}); err != nil {
		logger().Infow("eventsource write fail", "err", err)
		return false
	}

	return true
}

func (s *server) getWelcome(w http.ResponseWriter, r *http.Request) {
	msg := new(chat.Message)
	if s.preset.Welcome != nil {
		msg.Content = s.preset.Welcome.Content
	} else {
		msg.Content = "Hi, I'm your finance advisor. How can I help today?"
	}
	msg.ID = s.sto.Conversation("").GetID()
	apiOk(w, r, msg)
}
