package stores

import (
	"sync"
)

// Storage is the facade over everything finhub keeps in redis.
type Storage interface {
	Conversation(id string) Conversation
	Watchlist() Watchlist
}

// vars ...
var (
	_ Storage = (*Wrap)(nil)

	stoOnce sync.Once
	stoW    *Wrap
)

// Wrap implements Storage
type Wrap struct {
	rc RedisClient

	watchlist *watchlist
}

// NewWithRC return new instance of Wrap
func NewWithRC(rc RedisClient) *Wrap {
	w := &Wrap{rc: rc}
	w.watchlist = &watchlist{rc: rc}
	// more member stores
	return w
}

// Sgt start and return a singleton instance of Storage
func Sgt() *Wrap {
	stoOnce.Do(func() {
		stoW = NewWithRC(SgtRC())
	})
	return stoW
}

func (w *Wrap) Conversation(id string) Conversation {
	cid := parseOrNewID(id)
	return &conversation{id: cid, rc: w.rc}
}

func (w *Wrap) Watchlist() Watchlist { return w.watchlist }
