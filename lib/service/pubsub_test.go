package service

import (
	"testing"

	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubsubRoutesByAccount(t *testing.T) {
	ps := NewPubsub()
	all := make(chan models.LedgerEvent, 4)
	cash := make(chan models.LedgerEvent, 4)
	bank := make(chan models.LedgerEvent, 4)
	allID := ps.Subscribe(AllAccountsTopic, all)
	ps.Subscribe(1, cash)
	ps.Subscribe(2, bank)

	ps.Publish(models.NewLedgerEvent(common.EventTransactionCreated, []int64{10}, []int64{1}))
	ps.Publish(models.NewLedgerEvent(common.EventTransactionCreated, []int64{11, 12}, []int64{1, 2}))

	assert.Len(t, all, 2)
	assert.Len(t, cash, 2)
	assert.Len(t, bank, 1)
	event := <-bank
	assert.Equal(t, []int64{11, 12}, event.TransactionIDs)

	ps.Unsubscribe(allID, AllAccountsTopic)
	assert.Equal(t, 0, ps.SubscriberCount(AllAccountsTopic))
	_, open := <-drain(all)
	assert.False(t, open)

	// unknown ids are ignored
	ps.Unsubscribe(allID, AllAccountsTopic)
	ps.Unsubscribe("missing", 1)
	assert.Equal(t, 1, ps.SubscriberCount(1))
}

func TestPubsubDropsForSlowSubscribers(t *testing.T) {
	ps := NewPubsub()
	slow := make(chan models.LedgerEvent, 1)
	ps.Subscribe(1, slow)

	for i := 0; i < 3; i++ {
		ps.Publish(models.NewLedgerEvent(common.EventTransactionUpdated, []int64{int64(i)}, []int64{1}))
	}
	require.Len(t, slow, 1)
	event := <-slow
	assert.Equal(t, []int64{0}, event.TransactionIDs)
}

func TestPubsubDeliversOncePerSubscriber(t *testing.T) {
	ps := NewPubsub()
	ch := make(chan models.LedgerEvent, 4)
	ps.Subscribe(1, ch)
	ps.Publish(models.NewLedgerEvent(common.EventTransactionDeleted, []int64{1}, []int64{1, 1}))
	assert.Len(t, ch, 1)
}

func drain(ch chan models.LedgerEvent) chan models.LedgerEvent {
	for len(ch) > 0 {
		<-ch
	}
	return ch
}
