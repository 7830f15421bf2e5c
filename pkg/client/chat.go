package client

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// submitFallback is shown when a request fails without a server-provided
// error text.
const submitFallback = "Sorry, I encountered an error. Please try again."

// Chat is the session chat client. Start replays the stored history once;
// after that every submitted line becomes exactly one request and a pair of
// rendered messages.
type Chat struct {
	api ChatAPI
	sfc Surface

	mu sync.Mutex // serializes surface access
}

// NewChat returns a chat client rendering onto sfc.
func NewChat(api ChatAPI, sfc Surface) *Chat {
	return &Chat{api: api, sfc: sfc}
}

// Start loads and renders the stored history, oldest first, user line then
// bot line per pair. A failed load only logs: the surface stays empty and
// the session is still usable, so Start reports nil.
func (c *Chat) Start(ctx context.Context) error {
	pairs, err := c.api.History(ctx)
	if err != nil {
		logger().Infow("load history fail", "err", err)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range pairs {
		c.sfc.Push(ClassUser, p.User)
		c.sfc.Push(ClassBot, p.Bot)
	}
	return nil
}

// Submit sends one message. Empty or whitespace-only input does nothing at
// all: no message, no request, no pending marker. Otherwise the lifecycle
// is strictly ordered: the user message lands, a pending marker lands, one
// request goes out. On success that pending marker goes away and the reply
// lands as a bot message; on any failure it goes away and exactly one error
// message lands instead. Either way the client accepts further submits, and
// overlapping submits each own their pending marker.
func (c *Chat) Submit(ctx context.Context, text string) {
	message := strings.TrimSpace(text)
	if message == "" {
		return
	}

	c.mu.Lock()
	c.sfc.Push(ClassUser, message)
	pending := c.sfc.Push(ClassPending, "…")
	c.mu.Unlock()

	reply, err := c.api.Send(ctx, message)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sfc.Remove(pending)
	if err != nil {
		logger().Infow("submit fail", "len", len(message), "err", err)
		c.sfc.Push(ClassError, submitError(err))
		return
	}
	c.sfc.Push(ClassBot, reply)
}

// submitError prefers the server's own error text when it sent one.
func submitError(err error) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return submitFallback
}
