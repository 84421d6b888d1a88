package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	var got []Event
	hub.Subscribe(TopicBookings, func(e Event) {
		got = append(got, e)
	})

	hub.Publish(Event{Topic: TopicBookings, Action: "created", RecordID: "bkg-1"})

	assert.Len(t, got, 1)
	assert.Equal(t, "created", got[0].Action)
	assert.Equal(t, "bkg-1", got[0].RecordID)
}

func TestPublishOtherTopicIgnored(t *testing.T) {
	hub := NewHub()
	called := false
	hub.Subscribe(TopicInvoices, func(e Event) { called = true })

	hub.Publish(Event{Topic: TopicBookings, Action: "created", RecordID: "bkg-1"})
	assert.False(t, called)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	count := 0
	unsub := hub.Subscribe(TopicCoverage, func(e Event) { count++ })

	hub.Publish(Event{Topic: TopicCoverage, Action: "updated", RecordID: "10001"})
	unsub()
	hub.Publish(Event{Topic: TopicCoverage, Action: "updated", RecordID: "10001"})

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, hub.SubscriberCount(TopicCoverage))
}

func TestMultipleSubscribers(t *testing.T) {
	hub := NewHub()
	a, b := 0, 0
	hub.Subscribe(TopicBookings, func(e Event) { a++ })
	hub.Subscribe(TopicBookings, func(e Event) { b++ })

	hub.Publish(Event{Topic: TopicBookings, Action: "updated", RecordID: "x"})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, 2, hub.SubscriberCount(TopicBookings))
}
