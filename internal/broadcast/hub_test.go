package broadcast

import (
	"testing"
	"time"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe()
	second := hub.Subscribe()

	hub.Publish(Event{Type: EventNewMessage, Payload: "привет"})

	for _, ch := range []chan Event{first, second} {
		select {
		case event := <-ch:
			if event.Type != EventNewMessage {
				t.Errorf("неверный тип события: %q", event.Type)
			}
			if event.Payload != "привет" {
				t.Errorf("неверная полезная нагрузка: %v", event.Payload)
			}
		case <-time.After(time.Second):
			t.Fatal("подписчик не получил событие")
		}
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()

	// Не должно блокироваться и паниковать
	hub.Publish(Event{Type: EventNewComment})

	if got := hub.SubscriberCount(); got != 0 {
		t.Errorf("ожидалось 0 подписчиков, получено %d", got)
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()
	slow := hub.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Publish(Event{Type: EventReactionUpdate, Payload: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish заблокировался на медленном подписчике")
	}

	// Буфер заполнен, лишние события отброшены
	if got := len(slow); got != subscriberBuffer {
		t.Errorf("ожидалось %d событий в буфере, получено %d", subscriberBuffer, got)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe()

	hub.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("канал не закрыт после Unsubscribe")
	}
	if got := hub.SubscriberCount(); got != 0 {
		t.Errorf("ожидалось 0 подписчиков, получено %d", got)
	}

	// Повторный Unsubscribe безопасен
	hub.Unsubscribe(ch)
}
