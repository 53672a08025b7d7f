package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/fittrack/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - Store Driver: %s\n", cfg.Store.Driver)
	fmt.Printf("  - Store Namespace: %q\n", cfg.Store.Namespace)

	switch cfg.Store.Driver {
	case config.DriverRedis:
		fmt.Printf("  - Redis Addr: %s\n", cfg.Redis.Addr())
		fmt.Printf("  - Redis Password: %s\n", maskToken(cfg.Redis.Password))
		fmt.Printf("  - Redis DB: %d\n", cfg.Redis.DB)
		fmt.Printf("  - Redis Timeout: %s\n", cfg.Redis.Timeout)
	case config.DriverPostgres:
		fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
		fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Password: %s\n", maskToken(cfg.DB.Password))
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	case config.DriverSQLite:
		fmt.Printf("  - SQLite Path: %s\n", cfg.DB.SQLitePath)
	}

	fmt.Printf("  - Log Level: %v\n", config.ParseLogLevel(cfg.Logger.Level))
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
