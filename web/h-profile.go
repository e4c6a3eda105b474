package web

import (
	"net/http"
	"strings"

	"beesociety/internal/database"
	"beesociety/internal/models"
)

// profile показывает профиль пользователя с его постами
// и счетчиками подписок
func (app *app) profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	username := strings.TrimPrefix(r.URL.Path, "/user/")

	profileUser, err := app.UserService.GetUserByUsername(username)
	if err != nil {
		if err == database.ErrUserNotFound {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	posts, err := app.PostService.GetUserPosts(profileUser.ID)
	if err != nil {
		app.errorLog.Printf("Failed to get user posts: %v", err)
		posts = []*models.Post{}
	}

	counts, err := app.FollowService.GetFollowCounts(profileUser.ID)
	if err != nil {
		app.errorLog.Printf("Failed to get follow counts: %v", err)
		counts = &models.FollowCounts{}
	}

	currentUser := app.getCurrentUser(r)
	isFollowing := false
	if currentUser != nil && currentUser.ID != profileUser.ID {
		isFollowing, err = app.FollowService.IsFollowing(currentUser.ID, profileUser.ID)
		if err != nil {
			app.errorLog.Printf("Failed to check follow state: %v", err)
		}
	}

	data := &HTMLData{
		Title:        profileUser.Username,
		Path:         r.URL.Path,
		CurrentUser:  currentUser,
		ProfileUser:  profileUser,
		Posts:        posts,
		FollowCounts: counts,
		IsFollowing:  isFollowing,
	}

	app.RenderHTML(w, r, "profile.page.html", data)
}

// follow подписывает текущего пользователя на другого
func (app *app) follow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, []string{"POST"})
		return
	}

	username := strings.TrimPrefix(r.URL.Path, "/user/")
	username = strings.TrimSuffix(username, "/follow")

	user := app.getCurrentUser(r)

	followee, err := app.UserService.GetUserByUsername(username)
	if err != nil {
		if err == database.ErrUserNotFound {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	if err := app.FollowService.Follow(user.ID, followee.ID); err != nil {
		if err == database.ErrSelfFollow {
			app.ClientError(w, http.StatusBadRequest)
			return
		}
		if err == database.ErrUserNotFound {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	app.infoLog.Printf("User %q followed %q", user.Username, followee.Username)

	http.Redirect(w, r, "/user/"+followee.Username, http.StatusSeeOther)
}

// unfollow отписывает текущего пользователя от другого
func (app *app) unfollow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, []string{"POST"})
		return
	}

	username := strings.TrimPrefix(r.URL.Path, "/user/")
	username = strings.TrimSuffix(username, "/unfollow")

	user := app.getCurrentUser(r)

	followee, err := app.UserService.GetUserByUsername(username)
	if err != nil {
		if err == database.ErrUserNotFound {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	if err := app.FollowService.Unfollow(user.ID, followee.ID); err != nil {
		app.ServerError(w, err)
		return
	}

	app.infoLog.Printf("User %q unfollowed %q", user.Username, followee.Username)

	http.Redirect(w, r, "/user/"+followee.Username, http.StatusSeeOther)
}
