package web

import (
	"net/http"
	"strconv"

	"beesociety/internal/database"
)

// notifications показывает уведомления текущего пользователя
func (app *app) notifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	user := app.getCurrentUser(r)

	notifications, err := app.NotificationService.GetUserNotifications(user.ID)
	if err != nil {
		app.ServerError(w, err)
		return
	}

	data := &HTMLData{
		Title:         "Уведомления",
		Path:          r.URL.Path,
		CurrentUser:   user,
		Notifications: notifications,
	}

	app.RenderHTML(w, r, "notifications.page.html", data)
}

// markNotificationsRead помечает уведомления прочитанными:
// одно (по id из формы) или все сразу
func (app *app) markNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, []string{"POST"})
		return
	}

	user := app.getCurrentUser(r)

	idStr := r.FormValue("id")
	if idStr == "" {
		if err := app.NotificationService.MarkAllRead(user.ID); err != nil {
			app.ServerError(w, err)
			return
		}
		http.Redirect(w, r, "/notifications", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		app.ClientError(w, http.StatusBadRequest)
		return
	}

	if err := app.NotificationService.MarkRead(id, user.ID); err != nil {
		if err == database.ErrNotificationNotFound {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	http.Redirect(w, r, "/notifications", http.StatusSeeOther)
}
