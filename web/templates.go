package web

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"
	"time"
	"unicode"

	"beesociety/internal/models"
)

type HTMLData struct {
	Title         string
	Path          string
	FormError     string
	FormData      map[string]string // для хранения введённых значений в форму
	CurrentUser   *models.User
	Post          *models.Post
	Posts         []*models.Post
	Page          int  // Текущая страница ленты
	HasPrev       bool // Есть ли предыдущая страница
	HasNext       bool // Есть ли следующая страница
	ProfileUser   *models.User
	IsFollowing   bool
	FollowCounts  *models.FollowCounts
	Notifications []*models.Notification
	UnreadCount   int
	Categories    []*models.Category
	Category      *models.Category
	SearchQuery   string
	SearchResults *models.SearchResults
}

var functions = template.FuncMap{
	"cap": func(str string) string {
		if str == "" {
			return ""
		}
		runes := []rune(str)
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes)
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	// Встроенное изображение поста. html/template вырезает data: из src,
	// поэтому собираем URI сами из уже провалидированного base64
	"imageSrc": func(data string) template.URL {
		return template.URL("data:image/png;base64," + data)
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

func (app *app) RenderHTML(w http.ResponseWriter, r *http.Request, pageFile string, data *HTMLData) {
	if data == nil {
		data = &HTMLData{}
	}

	data.Path = r.URL.Path

	// Добавляем текущего пользователя, если он не установлен
	if data.CurrentUser == nil {
		data.CurrentUser = app.getCurrentUser(r)
	}

	// Счетчик непрочитанных уведомлений для шапки
	if data.CurrentUser != nil && data.UnreadCount == 0 {
		count, err := app.NotificationService.CountUnread(data.CurrentUser.ID)
		if err != nil {
			app.errorLog.Printf("Failed to count unread notifications: %v", err)
		} else {
			data.UnreadCount = count
		}
	}

	layoutFile := "base.layout.html"

	files := []string{
		filepath.Join(app.HTMLDir, layoutFile),
		filepath.Join(app.HTMLDir, pageFile),
	}

	ts, err := template.New("").Funcs(functions).ParseFiles(files...)
	if err != nil {
		app.ServerError(w, err)
		return
	}

	ts, err = ts.ParseGlob(filepath.Join(app.HTMLDir, "*.partial.html"))
	if err != nil {
		app.ServerError(w, err)
		return
	}

	// Рендерим во временный буфер, чтобы не отдать клиенту полстраницы
	// при ошибке шаблона
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		app.ServerError(w, err)
		return
	}

	buf.WriteTo(w)
}
