package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zickles/tanzanite/internal/bot"
	"github.com/Zickles/tanzanite/internal/commands"
	"github.com/Zickles/tanzanite/internal/config"
	"github.com/Zickles/tanzanite/internal/correlation"
	"github.com/Zickles/tanzanite/internal/database"
	"github.com/Zickles/tanzanite/internal/dispatcher"
	"github.com/Zickles/tanzanite/internal/logging"
	"github.com/Zickles/tanzanite/internal/modlog"
)

func main() {
	fmt.Println("Starting Tanzanite moderation bot")

	cfg := loadConfig()

	if err := initializeLogging(cfg); err != nil {
		panic(err)
	}

	if err := initializeDatabase(cfg); err != nil {
		panic(err)
	}

	if err := run(cfg); err != nil {
		panic(err)
	}

	waitForShutdown()

	database.Close()
	bot.GetSession().Close()
	logging.Info("Shutdown complete")
}

func loadConfig() *config.Config {
	cfg := config.LoadOrDefault("config.json")

	if cfg.Bot.Token == "" {
		fmt.Println("Warning: no bot token in config.json or DISCORD_TOKEN")
	}

	return cfg
}

func initializeLogging(cfg *config.Config) error {
	return logging.InitGlobalLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Path)
}

func initializeDatabase(cfg *config.Config) error {
	fmt.Println("Initializing SQLite database...")

	if err := database.Initialize(cfg.Database.Path); err != nil {
		return err
	}

	if database.IsConnected() {
		fmt.Println("Database initialized and connection verified ✓")
	}
	return nil
}

func run(cfg *config.Config) error {
	fmt.Println("Initializing Discord bot...")

	if err := bot.Initialize(cfg.Bot.Token); err != nil {
		return err
	}

	session := bot.GetSession()
	db := database.GetDB()

	httpPool := dispatcher.NewHTTPPool(4)
	httpPool.Warmup()
	rateLimiter := dispatcher.NewRateLimitMonitor()
	executor := dispatcher.NewActionExecutor(httpPool, rateLimiter, cfg.Bot.Token)

	publisher := modlog.NewPublisher(db, session.GetDiscord())
	auditReader := bot.NewAuditReader(session.GetDiscord(), session.BotID, cfg.Moderation.AuditFetchLimit)

	engine := correlation.NewEngine(correlation.Options{
		BotID:          session.BotID,
		GraceDelay:     time.Duration(cfg.Moderation.GraceDelayMS) * time.Millisecond,
		MatchTolerance: time.Duration(cfg.Moderation.MatchToleranceS) * time.Second,
	}, auditReader, db, db, publisher)

	// Handlers go in before the websocket opens so the Ready burst is not missed.
	session.SetupEventHandlers(engine, db)

	if err := session.Connect(); err != nil {
		return err
	}

	if err := session.SyncGuildConfigs(db); err != nil {
		logging.Warn("Guild sync failed: %v", err)
	}

	if err := commands.Initialize(session, executor, publisher); err != nil {
		return err
	}

	logging.Info("All components started successfully")
	fmt.Println("Discord bot connected and commands registered")
	return nil
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutdown signal received")
}
