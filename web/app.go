package web

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"beesociety/internal/broadcast"
	"beesociety/internal/database"
	"beesociety/internal/stability"

	"github.com/joho/godotenv"
)

// Config собирается один раз при старте процесса и передается
// в конструкторы — сервисы не читают окружение сами
type Config struct {
	Addr            string
	HTMLDir         string
	StaticDir       string
	DSN             string
	StabilityAPIKey string
}

type app struct {
	infoLog             *log.Logger
	errorLog            *log.Logger
	HTMLDir             string
	StaticDir           string
	Database            *database.Database
	UserService         *database.UserService
	SessionService      *database.SessionService
	PostService         *database.PostService
	CommentService      *database.CommentService
	ReactionService     *database.ReactionService
	FollowService       *database.FollowService
	NotificationService *database.NotificationService
	CategoryService     *database.CategoryService
	SearchService       *database.SearchService
	ImageClient         *stability.Client
	Hub                 *broadcast.Hub
}

func RunApp() {
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	// .env не обязателен — в проде переменные приходят из окружения
	godotenv.Load()

	addr := flag.String("addr", ":4000", "HTTP network address")
	htmlDir := flag.String("html-dir", "./ui/html", "Path to HTML templates")
	staticDir := flag.String("static-dir", "./ui/static", "Path to static assets")
	dsn := flag.String("dsn", envOr("DSN", "./beesociety.db"), "Path to SQLite3 database file")

	flag.Parse()

	cfg := &Config{
		Addr:            *addr,
		HTMLDir:         *htmlDir,
		StaticDir:       *staticDir,
		DSN:             *dsn,
		StabilityAPIKey: os.Getenv("STABILITY_API_KEY"),
	}

	if cfg.StabilityAPIKey == "" {
		infoLog.Println("Warning: STABILITY_API_KEY is not set, post creation will fail")
	}

	db, err := database.NewDatabase(cfg.DSN)
	if err != nil {
		errorLog.Fatal("Failed to open SQLite DB:", err)
	}
	defer db.Close()

	infoLog.Println("SQLite DB connected:", cfg.DSN)

	app := &app{
		errorLog:            errorLog,
		infoLog:             infoLog,
		HTMLDir:             cfg.HTMLDir,
		StaticDir:           cfg.StaticDir,
		Database:            db,
		UserService:         database.NewUserService(db),
		SessionService:      database.NewSessionService(db),
		PostService:         database.NewPostService(db),
		CommentService:      database.NewCommentService(db),
		ReactionService:     database.NewReactionService(db),
		NotificationService: database.NewNotificationService(db),
		CategoryService:     database.NewCategoryService(db),
		SearchService:       database.NewSearchService(db),
		ImageClient:         stability.NewClient(cfg.StabilityAPIKey),
		Hub:                 broadcast.NewHub(),
	}
	app.FollowService = database.NewFollowService(db, app.NotificationService)

	if err := app.SessionService.CleanupExpiredSessions(); err != nil {
		app.infoLog.Printf("Warning: failed to cleanup expired sessions: %v", err)
	}

	srv := &http.Server{
		Addr:     cfg.Addr,
		ErrorLog: app.errorLog,
		Handler:  app.routes(),

		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		// Генерация изображения — медленный внешний вызов
		WriteTimeout: 2 * time.Minute,
	}

	infoLog.Printf("Starting server on http://localhost%s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		errorLog.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
