package main

import (
	"log"
	"os"

	v1 "go_vpnadmin/api/v1"
	"go_vpnadmin/internal/auth"
	"go_vpnadmin/internal/cache"
	"go_vpnadmin/internal/config"
	"go_vpnadmin/internal/db"
	"go_vpnadmin/internal/orchestrator"
	"go_vpnadmin/internal/remnawave"
	"go_vpnadmin/internal/repository"
	"go_vpnadmin/internal/sweep"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load configuration (INI file if CONFIG_INI is set, env otherwise)
	var cfg *config.Config
	var err error
	if iniPath := os.Getenv("CONFIG_INI"); iniPath != "" {
		cfg, err = config.LoadFromINI(iniPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("✓ Configuration loaded")

	// 2. Initialize MySQL
	if err := db.InitMySQL(cfg.MySQL.DSN); err != nil {
		log.Fatalf("Failed to initialize MySQL: %v", err)
	}
	defer db.Close()

	if cfg.Migrate {
		if err := db.Migrate(db.DB); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	auth.InitJWT(cfg.JWT.Secret)
	if err := db.EnsureAdminUser(db.DB, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// 3. Initialize Redis
	if err := cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer cache.Close()

	// 4. Wire the orchestrator: one panel client for the whole process
	gateway := remnawave.NewClient(cfg.Remnawave.BaseURL, cfg.Remnawave.APIToken)
	store := repository.NewStore(db.DB)
	svc := orchestrator.NewService(store, gateway)

	// 5. Start the expiry sweep worker
	if cfg.Sweep.Enabled {
		worker := sweep.NewWorker(&sweep.Config{
			Service:     svc,
			Redis:       cache.Client,
			Logger:      logrus.NewEntry(logrus.StandardLogger()),
			IntervalSec: cfg.Sweep.IntervalSec,
			LockTTLSec:  cfg.Sweep.LockTTLSec,
		})
		worker.Start()
		defer worker.Stop()
	}

	// 6. Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	v1.SetupRouter(r, db.DB, cfg, svc)

	log.Printf("✓ Server starting on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
