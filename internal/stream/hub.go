package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Update is the payload pushed to consoles watching a trip whenever a
// group's attendance for a tour changes. Count 0 means the group withdrew.
type Update struct {
	GroupID string `json:"group_id"`
	TourID  string `json:"tour_id"`
	Count   int    `json:"count"`
}

// Hub fans attendance updates out to websocket subscribers, keyed by trip.
// With redis configured, updates also cross process boundaries over
// pub/sub.
type Hub struct {
	redis       *redis.Client
	subscribers map[string]map[*Subscriber]struct{}
	mu          sync.RWMutex
}

type Subscriber struct {
	TripID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:       redisClient,
		subscribers: map[string]map[*Subscriber]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Subscribe(tripID string) *Subscriber {
	sub := &Subscriber{
		TripID: tripID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[tripID] == nil {
		h.subscribers[tripID] = map[*Subscriber]struct{}{}
	}
	h.subscribers[tripID][sub] = struct{}{}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if tripSubs, ok := h.subscribers[sub.TripID]; ok {
		delete(tripSubs, sub)
		if len(tripSubs) == 0 {
			delete(h.subscribers, sub.TripID)
		}
	}
	close(sub.Send)
}

func (h *Hub) Broadcast(tripID string, payload []byte) {
	h.mu.RLock()
	subs := h.subscribers[tripID]
	h.mu.RUnlock()

	for sub := range subs {
		select {
		case sub.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(tripID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.Subscribe(ctx, "attendance:*:updates")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		tripID := tripIDFromChannel(msg.Channel)
		h.mu.RLock()
		subs := h.subscribers[tripID]
		h.mu.RUnlock()
		for sub := range subs {
			select {
			case sub.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(tripID string) string {
	return "attendance:" + tripID + ":updates"
}

func tripIDFromChannel(ch string) string {
	// attendance:{trip}:updates
	const prefix = "attendance:"
	const suffix = ":updates"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
