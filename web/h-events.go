package web

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// events отдает поток событий (новые посты, комментарии, реакции)
// как Server-Sent Events. Доставка негарантированная: отставший или
// отключившийся клиент просто пропускает события.
func (app *app) events(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		app.ClientError(w, http.StatusNotImplemented)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := app.Hub.Subscribe()
	defer app.Hub.Unsubscribe(ch)

	app.infoLog.Printf("Event stream client connected, %d total", app.Hub.SubscriberCount())

	for {
		select {
		case <-r.Context().Done():
			app.infoLog.Println("Event stream client disconnected")
			return
		case event, ok := <-ch:
			if !ok {
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				app.errorLog.Printf("Failed to marshal event: %v", err)
				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			flusher.Flush()
		}
	}
}
