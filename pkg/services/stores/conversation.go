package stores

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghost2804/finhub/pkg/models/chat"
	"github.com/ghost2804/finhub/pkg/settings"
)

type Conversation interface {
	GetID() string
	AddHistory(ctx context.Context, item *chat.HistoryItem) error
	ListHistory(ctx context.Context) (chat.HistoryItems, error)
	ClearHistory(ctx context.Context) error
}

// NewConversation binds a conversation to id, minting a fresh id when the
// given one is empty or unparseable.
func NewConversation(id string) Conversation {
	return &conversation{id: parseOrNewID(id), rc: SgtRC()}
}

func parseOrNewID(id string) uuid.UUID {
	cid, err := uuid.Parse(id)
	if err != nil {
		cid = uuid.New()
	}
	return cid
}

type conversation struct {
	id uuid.UUID
	rc RedisClient
}

func (s *conversation) GetID() string {
	return s.id.String()
}

func (s *conversation) AddHistory(ctx context.Context, item *chat.HistoryItem) error {
	if item.Time == 0 {
		item.Time = time.Now().Unix()
	}
	key := s.getKey()
	b, err := item.MarshalBinary()
	if err != nil {
		return err
	}
	res := s.rc.RPush(ctx, key, b)
	err = res.Err()
	if err == nil {
		logger().Debugw("add history ok", "item", item)
		count, _ := res.Result()
		if err = s.rc.Expire(ctx, key, settings.Current.HistoryTTL).Err(); err != nil {
			return err
		}
		if count > int64(settings.Current.HistoryMax) {
			logger().Infow("history length overflow", "count", count)
			err = s.rc.LPop(ctx, key).Err()
		}
	}
	if err != nil {
		logger().Infow("add history fail", "key", key, "err", err)
	}
	return err
}

func (s *conversation) ListHistory(ctx context.Context) (data chat.HistoryItems, err error) {
	key := s.getKey()
	ss := s.rc.LRange(ctx, key, 0, -1)
	err = ss.ScanSlice(&data)
	return
}

func (s *conversation) ClearHistory(ctx context.Context) error {
	return s.rc.Del(ctx, s.getKey()).Err()
}

func (s *conversation) getKey() string {
	return "convs-" + s.GetID()
}
