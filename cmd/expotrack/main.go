package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"expotrack/backend"
	"expotrack/catalog"
	"expotrack/config"
	"expotrack/engine"
	"expotrack/messaging"
	"expotrack/store"
	"expotrack/www"
)

var Version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "expotrack.yaml", "path to config file")
	flag.Parse()

	if *showVersion {
		fmt.Println("expotrack", Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Local database (acks, outbox)
	db, err := store.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	log.Printf("expotrack: database open (%s)", cfg.Database.Driver)

	// Redis snapshot cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	var snapCache *catalog.RedisStore
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("expotrack: redis not available (%v), running without cache", err)
	} else {
		log.Printf("expotrack: redis connected (%s)", cfg.Redis.Address)
		snapCache = catalog.NewRedisStore(redisClient)
	}
	cancel()
	defer redisClient.Close()

	// Remote data store
	remote := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.APIKey, cfg.Backend.Timeout)
	if err := remote.Ping(); err == nil {
		log.Printf("expotrack: data store connected (%s)", cfg.Backend.BaseURL)
	} else {
		log.Printf("expotrack: data store not available (%v)", err)
	}

	cat := catalog.NewManager(remote, snapCache)

	// Messaging client
	msgClient := messaging.NewClient(&cfg.Messaging)
	if err := msgClient.Connect(); err != nil {
		log.Printf("expotrack: messaging connect failed (%v)", err)
	} else {
		log.Printf("expotrack: messaging connected (%s)", cfg.Messaging.Backend)
	}
	defer msgClient.Close()

	// Engine
	eng := engine.New(engine.Config{
		AppConfig:  cfg,
		ConfigPath: *configPath,
		DB:         db,
		Backend:    remote,
		Catalog:    cat,
		MsgClient:  msgClient,
	})
	eng.Start()
	defer eng.Stop()

	// Outbox drainer (outbound announcements)
	drainer := messaging.NewOutboxDrainer(db, msgClient, cfg.Messaging.OutboxDrainInterval)
	drainer.Start()
	defer drainer.Stop()

	// Web server
	handler := www.NewRouter(eng)

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		log.Printf("expotrack: web server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("web server: %v", err)
		}
	}()

	log.Printf("expotrack: ready")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Printf("expotrack: shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)

	log.Printf("expotrack: stopped")
}
