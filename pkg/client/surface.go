// Package client implements the two poll-and-render components the terminal
// hosts are built on: a session chat client that replays stored history and
// turns submitted lines into request/response message pairs, and a market
// ticker that keeps a display surface synchronized with a polled quote
// snapshot. Both talk to a running finhub server through the API type and
// draw onto a Surface.
package client

// Style classes a surface element can carry.
const (
	ClassUser     = "user"
	ClassBot      = "bot"
	ClassPending  = "pending"
	ClassError    = "error"
	ClassPositive = "positive"
	ClassNegative = "negative"
)

// Handle names one pushed element so exactly that element can be removed
// later.
type Handle int64

// Surface is an appendable, clearable container of styled elements.
// Implementations need not be safe for concurrent use; the clients
// serialize their surface access.
type Surface interface {
	// Push appends an element with a style class and returns its handle.
	Push(class, text string) Handle

	// Remove deletes the element the handle names. A handle that was
	// already removed, or never issued, is ignored.
	Remove(h Handle)

	// Clear drops every element.
	Clear()
}
