package app

import (
	"context"
	"embed"
	"fmt"
	"log"
	"time"

	"Todo/internal/cache"
	"Todo/internal/config"
	"Todo/internal/middleware"
	"Todo/internal/repo"
	"Todo/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type App struct {
	cfg    config.Config
	db     *pgxpool.Pool
	redis  *redis.Client
	router *gin.Engine

	storage string
	cache   string
}

func New(cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	var taskRepo repo.TaskRepo
	if cfg.PG.Enabled() {
		if err := runMigrations(cfg.PG.DSN); err != nil {
			return nil, err
		}
		db, err := newPostgres(cfg.PG.DSN)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.storage = "postgres"
		taskRepo = repo.NewPGTaskRepo(db)
	} else {
		log.Printf("PG_DSN not set, tasks are kept in memory")
		a.storage = "memory"
		taskRepo = repo.NewMemTaskRepo()
	}

	var taskCache *cache.TaskCache
	a.cache = "off"
	if cfg.Redis.Enabled() {
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			a.closeDB()
			return nil, err
		}
		a.redis = rdb
		a.cache = fmt.Sprintf("redis %s db=%d ttl=%s", cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.DefaultTTL.Duration())
		taskCache = cache.NewTaskCache(rdb, cfg.Redis.DefaultTTL.Duration())
	}

	a.router = NewRouter(cfg, service.NewTaskService(taskRepo, taskCache))
	return a, nil
}

// Backends names the task store and list cache New chose, for startup logs.
func (a *App) Backends() (storage, cache string) {
	return a.storage, a.cache
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.redis != nil {
		_ = a.redis.Close()
	}
	a.closeDB()
	return nil
}

func (a *App) closeDB() {
	if a.db != nil {
		a.db.Close()
	}
}

func newPostgres(dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func runMigrations(dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// NewRouter builds the gin engine with CORS and every route registered.
func NewRouter(cfg config.Config, svc *service.TaskService) *gin.Engine {
	r := gin.Default()

	// Browser clients are served from other origins.
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", "Content-Type", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}))

	r.Use(middleware.RequestID())

	Setup(r, cfg, svc)
	return r
}
