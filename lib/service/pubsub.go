package service

import (
	"sync"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/google/uuid"
)

// AllAccountsTopic receives every ledger event regardless of account.
const AllAccountsTopic int64 = 0

// Pubsub fans committed ledger events out to in-process subscribers keyed by account id.
type Pubsub struct {
	mu   sync.RWMutex
	subs map[int64]map[string]chan models.LedgerEvent
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[int64]map[string]chan models.LedgerEvent)
	return ps
}

func (ps *Pubsub) Subscribe(topic int64, ch chan models.LedgerEvent) (subId string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan models.LedgerEvent)
	}
	subId = uuid.NewString()
	ps.subs[topic][subId] = ch
	return subId
}

func (ps *Pubsub) Unsubscribe(id string, topic int64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
	if len(ps.subs[topic]) == 0 {
		delete(ps.subs, topic)
	}
}

// Publish delivers the event to the subscribers of every account it touched
// and to AllAccountsTopic. Slow subscribers miss events instead of blocking
// the writer.
func (ps *Pubsub) Publish(event models.LedgerEvent) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	topics := append([]int64{AllAccountsTopic}, event.AccountIDs...)
	seen := make(map[string]struct{})
	for _, topic := range topics {
		for id, ch := range ps.subs[topic] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			select {
			case ch <- event:
			default:
			}
		}
	}
}

func (ps *Pubsub) SubscriberCount(topic int64) int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.subs[topic])
}
