package web

import (
	"net/http"
	"strconv"
	"strings"

	"beesociety/internal/broadcast"
	"beesociety/internal/database"
	"beesociety/internal/models"
)

// createPost создает новый пост. Сначала генерируется иллюстрация:
// если генерация не удалась, пост не создается и пользователь видит
// причину отказа.
func (app *app) createPost(w http.ResponseWriter, r *http.Request) {
	user := app.getCurrentUser(r)

	if r.Method != http.MethodPost {
		categories, err := app.CategoryService.GetAllCategories()
		if err != nil {
			app.errorLog.Printf("Failed to get categories: %v", err)
		}
		data := &HTMLData{
			Title:       "Создать пост",
			Path:        r.URL.Path,
			CurrentUser: user,
			Categories:  categories,
		}
		app.RenderHTML(w, r, "create-post.page.html", data)
		return
	}

	content := strings.TrimSpace(r.FormValue("content"))
	if content == "" {
		app.renderCreatePostError(w, r, user, content, database.ErrEmptyContent.Error())
		return
	}
	if len(content) > 10000 {
		app.renderCreatePostError(w, r, user, content, database.ErrLongContent.Error())
		return
	}

	categoryIDs := app.parseCategoryIDs(r)

	app.infoLog.Printf("Generating image for post by %q: %q", user.Username, content)

	imageData, err := app.ImageClient.Generate(r.Context(), content)
	if err != nil {
		// Неудачная генерация блокирует создание поста
		app.errorLog.Printf("Image generation failed for user %q: %v", user.Username, err)
		app.renderCreatePostError(w, r, user, content, "Ошибка генерации изображения: "+err.Error())
		return
	}

	post, err := app.PostService.CreatePost(content, imageData, user.ID, categoryIDs)
	if err != nil {
		app.renderCreatePostError(w, r, user, content, err.Error())
		return
	}

	app.infoLog.Printf("Post created: ID=%d, Author=%q", post.ID, user.Username)

	// Рассылаем событие подключенным клиентам (fire-and-forget)
	app.Hub.Publish(broadcast.Event{
		Type: broadcast.EventNewMessage,
		Payload: map[string]interface{}{
			"id":         post.ID,
			"content":    post.Content,
			"image_data": post.ImageData,
			"timestamp":  post.Created,
			"username":   user.Username,
			"avatar":     user.Avatar,
			"reactions":  map[string]int{},
		},
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *app) renderCreatePostError(w http.ResponseWriter, r *http.Request, user *models.User, content, formError string) {
	categories, err := app.CategoryService.GetAllCategories()
	if err != nil {
		app.errorLog.Printf("Failed to get categories: %v", err)
	}
	data := &HTMLData{
		Title:       "Создать пост",
		Path:        r.URL.Path,
		FormError:   formError,
		CurrentUser: user,
		Categories:  categories,
		FormData: map[string]string{
			"content": content,
		},
	}
	app.RenderHTML(w, r, "create-post.page.html", data)
}

// parseCategoryIDs читает выбранные категории из формы
func (app *app) parseCategoryIDs(r *http.Request) []int {
	var ids []int
	for _, value := range r.Form["category"] {
		id, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// viewPost показывает отдельный пост с комментариями и реакциями
func (app *app) viewPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	id, ok := app.postIDFromPath(w, r.URL.Path, "")
	if !ok {
		return
	}

	post, err := app.PostService.GetPost(id)
	if err != nil {
		if err == database.ErrPostNotFound {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	categories, err := app.CategoryService.GetPostCategories(id)
	if err != nil {
		app.errorLog.Printf("Failed to get post categories: %v", err)
	}
	post.Categories = categories

	data := &HTMLData{
		Title: "Пост",
		Path:  r.URL.Path,
		Post:  post,
	}

	app.RenderHTML(w, r, "view-post.page.html", data)
}

// createComment добавляет комментарий к посту
func (app *app) createComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, []string{"POST"})
		return
	}

	id, ok := app.postIDFromPath(w, r.URL.Path, "/comment")
	if !ok {
		return
	}

	user := app.getCurrentUser(r)
	content := strings.TrimSpace(r.FormValue("content"))

	comment, err := app.CommentService.CreateComment(content, id, user.ID)
	if err != nil {
		if err == database.ErrPostNotFound {
			app.NotFound(w)
			return
		}
		if err == database.ErrEmptyCommentContent || err == database.ErrLongCommentContent {
			http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
			return
		}
		app.ServerError(w, err)
		return
	}

	app.infoLog.Printf("Comment created: ID=%d, Post=%d, Author=%q", comment.ID, id, user.Username)

	commentsCount, err := app.CommentService.GetCommentsCount(id)
	if err != nil {
		app.errorLog.Printf("Failed to count comments: %v", err)
	}

	app.Hub.Publish(broadcast.Event{
		Type: broadcast.EventNewComment,
		Payload: map[string]interface{}{
			"message_id":     id,
			"content":        comment.Content,
			"timestamp":      comment.Created,
			"username":       user.Username,
			"avatar":         user.Avatar,
			"comments_count": commentsCount,
		},
	})

	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
}

// react переключает реакцию текущего пользователя на пост
func (app *app) react(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, []string{"POST"})
		return
	}

	id, ok := app.postIDFromPath(w, r.URL.Path, "/react")
	if !ok {
		return
	}

	user := app.getCurrentUser(r)
	kind := r.FormValue("kind")

	counts, err := app.ReactionService.Toggle(id, user.ID, kind)
	if err != nil {
		if err == database.ErrPostNotFound {
			app.NotFound(w)
			return
		}
		if err == database.ErrEmptyReactionKind || err == database.ErrLongReactionKind {
			app.ClientError(w, http.StatusBadRequest)
			return
		}
		app.ServerError(w, err)
		return
	}

	app.Hub.Publish(broadcast.Event{
		Type: broadcast.EventReactionUpdate,
		Payload: map[string]interface{}{
			"message_id": id,
			"reactions":  counts,
		},
	})

	// Возвращаем туда, откуда реагировали
	referer := r.Header.Get("Referer")
	if referer == "" {
		referer = "/post/" + strconv.Itoa(id)
	}
	http.Redirect(w, r, referer, http.StatusSeeOther)
}

// postIDFromPath извлекает ID поста из пути вида /post/{id}{suffix}
func (app *app) postIDFromPath(w http.ResponseWriter, path, suffix string) (int, bool) {
	idStr := strings.TrimPrefix(path, "/post/")
	idStr = strings.TrimSuffix(idStr, suffix)
	id, err := strconv.Atoi(idStr)
	if err != nil {
		app.NotFound(w)
		return 0, false
	}
	return id, true
}
