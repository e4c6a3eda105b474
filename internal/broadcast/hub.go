// Package broadcast рассылает события хранилища подключенным браузерам
// по принципу fire-and-forget: доставка и порядок не гарантируются,
// отключенный клиент просто пропускает события.
package broadcast

import "sync"

// Типы событий, которые публикуют обработчики после успешной записи
const (
	EventNewMessage     = "new_message"
	EventNewComment     = "new_comment"
	EventReactionUpdate = "reaction_update"
)

// Размер буфера подписчика. Переполненный буфер означает медленного
// клиента — событие для него отбрасывается
const subscriberBuffer = 16

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe регистрирует нового подписчика
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	return ch
}

// Unsubscribe снимает подписчика и закрывает его канал
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Publish рассылает событие всем подписчикам. Никогда не блокируется:
// событие для подписчика с полным буфером отбрасывается.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			// Медленный подписчик — пропускаем
		}
	}
}

// SubscriberCount возвращает число активных подписчиков
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
