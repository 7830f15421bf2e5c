package client

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatAPI struct {
	mu      sync.Mutex
	history []HistoryPair
	histErr error
	sendErr error
	sends   int
	release chan struct{} // when set, Send blocks until it closes
}

func (f *fakeChatAPI) History(context.Context) ([]HistoryPair, error) {
	return f.history, f.histErr
}

func (f *fakeChatAPI) Send(_ context.Context, message string) (string, error) {
	f.mu.Lock()
	f.sends++
	release := f.release
	err := f.sendErr
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	if err != nil {
		return "", err
	}
	return "re: " + message, nil
}

func (f *fakeChatAPI) sent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sends
}

func (f *fakeChatAPI) failWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendErr = err
}

func TestChatIgnoresBlankSubmit(t *testing.T) {
	api := &fakeChatAPI{}
	sfc := &fakeSurface{}
	c := NewChat(api, sfc)

	c.Submit(context.Background(), "")
	c.Submit(context.Background(), "   \t\n")

	assert.Empty(t, sfc.dump())
	assert.Zero(t, api.sent())
}

func TestChatSubmitRendersPair(t *testing.T) {
	api := &fakeChatAPI{}
	sfc := &fakeSurface{}
	c := NewChat(api, sfc)

	c.Submit(context.Background(), "what is an EMI?")

	assert.Equal(t, []string{
		"user: what is an EMI?",
		"bot: re: what is an EMI?",
	}, sfc.dump())
	assert.Zero(t, sfc.count(ClassPending))
	assert.Equal(t, 1, api.sent())
}

func TestChatSubmitTrimsBeforeSending(t *testing.T) {
	api := &fakeChatAPI{}
	sfc := &fakeSurface{}
	c := NewChat(api, sfc)

	c.Submit(context.Background(), "  spaced out  \n")
	assert.Equal(t, "user: spaced out", sfc.dump()[0])
}

func TestChatSubmitFailureLeavesNothingStuck(t *testing.T) {
	api := &fakeChatAPI{}
	api.failWith(&StatusError{StatusCode: 400, Path: "/chat", Message: "Message cannot be empty"})
	sfc := &fakeSurface{}
	c := NewChat(api, sfc)

	// the server's own error text is shown when it sent one
	c.Submit(context.Background(), "hello")
	assert.Equal(t, []string{
		"user: hello",
		"error: Message cannot be empty",
	}, sfc.dump())
	assert.Zero(t, sfc.count(ClassPending))

	// a bare transport error falls back to the canned text
	api.failWith(fmt.Errorf("dial tcp: connection refused"))
	c.Submit(context.Background(), "again")
	dump := sfc.dump()
	require.Len(t, dump, 4)
	assert.Equal(t, "error: "+submitFallback, dump[3])
	assert.Zero(t, sfc.count(ClassPending))

	// and the client stays usable
	api.failWith(nil)
	c.Submit(context.Background(), "still there?")
	dump = sfc.dump()
	assert.Equal(t, "bot: re: still there?", dump[len(dump)-1])
	assert.Zero(t, sfc.count(ClassPending))
}

func TestChatHistoryReplayOrder(t *testing.T) {
	api := &fakeChatAPI{history: []HistoryPair{
		{User: "a", Bot: "b"},
		{User: "c", Bot: "d"},
	}}
	sfc := &fakeSurface{}
	c := NewChat(api, sfc)

	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, []string{"user: a", "bot: b", "user: c", "bot: d"}, sfc.dump())
}

func TestChatHistoryLoadFailureIsSilent(t *testing.T) {
	api := &fakeChatAPI{histErr: fmt.Errorf("server warming up")}
	sfc := &fakeSurface{}
	c := NewChat(api, sfc)

	require.NoError(t, c.Start(context.Background()))
	assert.Empty(t, sfc.dump())

	// the degraded start does not impair later submits
	c.Submit(context.Background(), "hi")
	assert.Equal(t, 1, api.sent())
	assert.Equal(t, 1, sfc.count(ClassBot))
}

func TestChatOverlappingSubmitsOwnTheirPending(t *testing.T) {
	release := make(chan struct{})
	api := &fakeChatAPI{release: release}
	sfc := &fakeSurface{}
	c := NewChat(api, sfc)

	var wg sync.WaitGroup
	for _, msg := range []string{"first", "second"} {
		wg.Add(1)
		go func(msg string) {
			defer wg.Done()
			c.Submit(context.Background(), msg)
		}(msg)
	}

	// both submissions show their own pending marker while in flight
	require.Eventually(t, func() bool { return sfc.count(ClassPending) == 2 },
		time.Second, 5*time.Millisecond)

	close(release)
	wg.Wait()

	assert.Zero(t, sfc.count(ClassPending))
	assert.Equal(t, 2, sfc.count(ClassUser))
	assert.Equal(t, 2, sfc.count(ClassBot))
}
