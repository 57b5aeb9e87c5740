package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adamski234/yttrium-bot/internal/bot"
	"github.com/adamski234/yttrium-bot/internal/commands"
	"github.com/adamski234/yttrium-bot/internal/config"
	"github.com/adamski234/yttrium-bot/internal/database"
	"github.com/adamski234/yttrium-bot/internal/logging"
	"github.com/adamski234/yttrium-bot/internal/renderer"
	"github.com/adamski234/yttrium-bot/internal/router"
	"github.com/adamski234/yttrium-bot/internal/script"
	"github.com/adamski234/yttrium-bot/internal/web"
)

func main() {
	cfg := loadConfig()

	if err := initializeLogging(cfg); err != nil {
		panic(err)
	}

	if err := initializeDatabase(cfg); err != nil {
		panic(err)
	}

	engine, keys, err := script.DefaultEngine()
	if err != nil {
		panic(fmt.Sprintf("script engine missing: %v (link an engine adapter that calls script.RegisterEngine)", err))
	}
	logging.Info("Key registry loaded with %d keys", keys.Len())

	if err := startBot(cfg, engine, keys); err != nil {
		panic(err)
	}

	logging.Info("All components started successfully")

	waitForShutdown()

	bot.GetSession().Close()
	database.Close()

	logging.Info("Shutdown complete")
}

func loadConfig() *config.Config {
	cfg, err := config.Load("config.json")
	if err != nil {
		fmt.Printf("Config load failed, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if cfg.Bot.Token == "" {
		cfg.Bot.Token = os.Getenv("DISCORD_TOKEN")
	}

	return cfg
}

func initializeLogging(cfg *config.Config) error {
	return logging.InitGlobalLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Path)
}

func initializeDatabase(cfg *config.Config) error {
	logging.Info("Initializing SQLite database at %s", cfg.Database.Path)

	if err := database.Initialize(cfg.Database.Path); err != nil {
		return err
	}

	if database.IsConnected() {
		logging.Info("Database initialized and connection verified")
	} else {
		logging.Warn("Database initialized but connection verification failed")
	}

	return nil
}

func startBot(cfg *config.Config, engine script.Engine, keys *script.Registry) error {
	logging.Info("Initializing Discord bot...")

	if err := bot.Initialize(cfg.Bot.Token); err != nil {
		return err
	}

	session := bot.GetSession()
	discord := session.GetDiscord()
	db := database.GetDB()

	rend := renderer.New(discord)
	routerInst := router.New(db, engine, keys, rend)
	commandHandler := commands.New(db, engine, keys, rend, routerInst)

	// Handlers must be in place before the gateway connection opens.
	routerInst.Register(discord, commandHandler)

	if err := session.Connect(); err != nil {
		return err
	}

	if cfg.Web.Addr != "" {
		statusServer := web.NewServer(cfg.Web.Addr, &routerInst.Stats, discord)
		go statusServer.Start()
	}

	logging.Info("Discord bot initialized successfully")
	return nil
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutdown signal received")
}
