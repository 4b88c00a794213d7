package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/RentalDrive/RentalDrive/internal/booking"
	"github.com/RentalDrive/RentalDrive/internal/common/config"
	"github.com/RentalDrive/RentalDrive/internal/common/db"
	"github.com/RentalDrive/RentalDrive/internal/common/logger"
	"github.com/RentalDrive/RentalDrive/internal/common/server"
	"github.com/RentalDrive/RentalDrive/internal/common/tracing"
	"github.com/RentalDrive/RentalDrive/internal/company"
	"github.com/RentalDrive/RentalDrive/internal/customer"
	"github.com/RentalDrive/RentalDrive/internal/session"
	"github.com/RentalDrive/RentalDrive/internal/upload"
	"github.com/RentalDrive/RentalDrive/internal/user"
	"github.com/RentalDrive/RentalDrive/internal/vehicle"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "configs/rental-api.json", "path to config file")
	flag.Parse()

	// .env 缺失属正常情况（生产走部署注入）
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	_, closer, err := tracing.InitTracer(cfg.Server.Name, cfg.Jaeger)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}

	gormDB, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&user.User{},
		&customer.Customer{},
		&vehicle.Vehicle{},
		&booking.Booking{},
		&company.Company{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	rdb := session.NewRedisClient(cfg.Redis)
	sessions := session.NewStore(rdb, log)

	uploads, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxSizeMB)
	if err != nil {
		log.Fatalf("failed to init upload store: %v", err)
	}

	userRepo := user.NewRepo(gormDB)
	customerRepo := customer.NewRepo(gormDB)
	vehicleRepo := vehicle.NewRepo(gormDB)
	bookingRepo := booking.NewRepo(gormDB)
	companyRepo := company.NewRepo(gormDB)

	userSvc := user.NewService(userRepo, bookingRepo, cfg.Auth)
	customerSvc := customer.NewService(customerRepo)
	vehicleSvc := vehicle.NewService(vehicleRepo)
	bookingSvc := booking.NewService(bookingRepo, vehicleRepo, log)
	companySvc := company.NewService(companyRepo)
	pdfSvc := booking.NewPDFService(bookingRepo, vehicleRepo, userRepo, companyRepo)

	userHandler := user.NewHandler(userSvc, sessions, cfg.Auth, log)
	customerHandler := customer.NewHandler(customerSvc, uploads, log)
	vehicleHandler := vehicle.NewHandler(vehicleSvc, uploads, log)
	bookingHandler := booking.NewHandler(bookingSvc, pdfSvc, log)
	companyHandler := company.NewHandler(companySvc, log)

	vehicle.RegisterValidations()

	authn := server.AuthMiddleware(cfg.Auth, sessions, log)
	adminOnly := server.RequireRoles(string(user.RoleAdmin))
	staffOnly := server.RequireRoles(string(user.RoleAdmin), string(user.RoleSecretary))

	err = server.RunHTTPServer(cfg, log, func(r *gin.Engine) error {
		api := r.Group("/api")
		userHandler.Register(api, authn, adminOnly)
		customerHandler.Register(api, authn, staffOnly)
		vehicleHandler.Register(api, authn, staffOnly)
		bookingHandler.Register(api, authn, staffOnly)
		companyHandler.Register(api, authn, adminOnly)
		r.Static("/uploads", cfg.Upload.Dir)
		return nil
	})
	if err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// loadConfig 优先从 Consul KV 取配置（CONFIG_CONSUL_KEY 指定 key），否则读本地文件。
func loadConfig(configPath string) (*config.Config, error) {
	if key := os.Getenv("CONFIG_CONSUL_KEY"); key != "" {
		host := os.Getenv("CONSUL_HOST")
		if host == "" {
			host = "localhost"
		}
		port := 8500
		if v := os.Getenv("CONSUL_PORT"); v != "" {
			if p, err := strconv.Atoi(v); err == nil && p > 0 {
				port = p
			}
		}
		return config.LoadConfigFromConsulKV(host, port, key)
	}
	return config.LoadConfig(configPath)
}
