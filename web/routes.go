package web

import (
	"net/http"
	"regexp"
)

var (
	postViewPattern    = regexp.MustCompile(`^/post/(\d+)$`)
	postCommentPattern = regexp.MustCompile(`^/post/(\d+)/comment$`)
	postReactPattern   = regexp.MustCompile(`^/post/(\d+)/react$`)
	userPattern        = regexp.MustCompile(`^/user/([a-zA-Z0-9_-]+)$`)
	userFollowPattern  = regexp.MustCompile(`^/user/([a-zA-Z0-9_-]+)/follow$`)
	userUnfollowPat    = regexp.MustCompile(`^/user/([a-zA-Z0-9_-]+)/unfollow$`)
)

func (app *app) routes() http.Handler {
	mux := http.NewServeMux()

	fileServer := http.FileServer(http.Dir(app.StaticDir))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	mux.HandleFunc("/", app.home)
	mux.HandleFunc("/search", app.search)
	mux.HandleFunc("/events", app.events)

	// Маршруты только для гостей (неавторизованных)
	mux.HandleFunc("/register", app.requireGuest(app.register))
	mux.HandleFunc("/login", app.requireGuest(app.login))

	// Маршруты только для авторизованных пользователей
	mux.HandleFunc("/logout", app.requireAuth(app.logout))
	mux.HandleFunc("/post/create", app.requireAuth(app.createPost))
	mux.HandleFunc("/notifications", app.requireAuth(app.notifications))
	mux.HandleFunc("/notifications/read", app.requireAuth(app.markNotificationsRead))

	mux.HandleFunc("/post/", app.handlePostRoutes)
	mux.HandleFunc("/user/", app.handleUserRoutes)

	mux.HandleFunc("/categories", app.categories)
	mux.HandleFunc("/category/", app.viewCategory)

	return mux
}

// handlePostRoutes обрабатывает динамические маршруты постов
func (app *app) handlePostRoutes(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	// /post/{id}
	if postViewPattern.MatchString(path) {
		app.viewPost(w, r)
		return
	}

	// /post/{id}/comment
	if postCommentPattern.MatchString(path) {
		app.requireAuth(app.createComment)(w, r)
		return
	}

	// /post/{id}/react
	if postReactPattern.MatchString(path) {
		app.requireAuth(app.react)(w, r)
		return
	}

	app.NotFound(w)
}

// handleUserRoutes обрабатывает динамические маршруты профилей
func (app *app) handleUserRoutes(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	// /user/{username}
	if userPattern.MatchString(path) {
		app.profile(w, r)
		return
	}

	// /user/{username}/follow
	if userFollowPattern.MatchString(path) {
		app.requireAuth(app.follow)(w, r)
		return
	}

	// /user/{username}/unfollow
	if userUnfollowPat.MatchString(path) {
		app.requireAuth(app.unfollow)(w, r)
		return
	}

	app.NotFound(w)
}
