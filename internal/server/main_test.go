package server

import (
	"testing"
	"time"

	"nocturne/internal/config"
	"nocturne/internal/models"
	"nocturne/internal/repository"
	"nocturne/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.PostStat{},
		&models.PostView{},
		&models.Like{},
		&models.Comment{},
		&models.Tag{},
		&models.PostTag{},
		&models.UserTagVote{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// newTestServer wires a Server against in-memory SQLite, without the
// Prometheus middleware (its collectors register globally).
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	db := setupHandlerTestDB(t)
	s := &Server{
		config: &config.Config{
			JWTSecret:  "test-secret",
			CronSecret: "test-cron-key",
		},
		db:          db,
		statRepo:    repository.NewStatRepository(db),
		likeRepo:    repository.NewLikeRepository(db),
		tagRepo:     repository.NewTagRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		userRepo:    repository.NewUserRepository(db),
	}
	s.viewService = service.NewViewService(s.statRepo)
	s.statsService = service.NewStatsService(s.statRepo)
	s.likeService = service.NewLikeService(s.likeRepo)
	s.tagService = service.NewTagService(s.tagRepo)
	s.commentService = service.NewCommentService(s.commentRepo)
	s.userService = service.NewUserService(s.userRepo)

	return s, db
}

// newTestApp builds a Fiber app that injects the given user identity, the way
// the auth middleware would after validating a token.
func newTestApp(userID uint) *fiber.App {
	app := fiber.New()
	if userID != 0 {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", userID)
			return c.Next()
		})
	}
	return app
}

func createHandlerTestUser(t *testing.T, db *gorm.DB, id uint, name string) {
	t.Helper()

	if err := db.Create(&models.User{ID: id, Name: name}).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
}

// signTestToken issues a token the way the identity gateway does.
func signTestToken(t *testing.T, secret, subject string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
