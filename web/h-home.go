package web

import (
	"net/http"
	"strconv"

	"beesociety/internal/models"
)

// Размер страницы ленты
const feedPageSize = 20

func (app *app) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		app.NotFound(w)
		return
	}
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 1 {
		page = p
	}

	// Лента: посты по убыванию даты, с комментариями и реакциями
	posts, err := app.PostService.GetFeed(feedPageSize, (page-1)*feedPageSize)
	if err != nil {
		app.errorLog.Printf("Failed to get feed: %v", err)
		posts = []*models.Post{} // пустой слайс при ошибке
	}

	total, err := app.PostService.GetPostsCount()
	if err != nil {
		app.errorLog.Printf("Failed to count posts: %v", err)
	}

	data := &HTMLData{
		Title:   "Главная",
		Path:    r.URL.Path,
		Posts:   posts,
		Page:    page,
		HasPrev: page > 1,
		HasNext: page*feedPageSize < total,
	}

	app.RenderHTML(w, r, "home.page.html", data)
}

func (app *app) search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	query := r.URL.Query().Get("q")

	results, err := app.SearchService.Search(query)
	if err != nil {
		app.ServerError(w, err)
		return
	}

	data := &HTMLData{
		Title:         "Поиск",
		Path:          r.URL.Path,
		SearchQuery:   query,
		SearchResults: results,
	}

	app.RenderHTML(w, r, "search.page.html", data)
}
