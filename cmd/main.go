package main

import (
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"kageo/backend/internal/answers"
	"kageo/backend/internal/api/handler"
	"kageo/backend/internal/game"
	"kageo/backend/internal/storage"
	"kageo/backend/internal/telegram"
)

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	log.Println("Starting Kageo 2.0 Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set!")
	}

	// 1. Persistent state and the answer database
	store := storage.NewFileStore(envOrDefault("BOT_DATA_FILE", "bot_data.json"))
	data, err := store.Load()
	if err != nil {
		log.Fatalf("Failed to load bot data: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	answerStore := answers.LoadStore(envOrDefault("LP_DATABASE_FILE", "LPdatabase.json"), rng)
	log.Printf("Answer database loaded: %d keys", answerStore.Len())

	// 2. Telegram transport and the game dispatcher
	botService, err := telegram.NewBotService(botToken)
	if err != nil {
		log.Fatalf("Failed to start the Telegram bot: %v", err)
	}
	dispatcher := game.NewDispatcher(botService, store, answerStore, data)
	botService.AttachDispatcher(dispatcher)

	go botService.Run()
	log.Println("Kageo 2.0 is ready!")

	// 3. Read-only status API
	r := gin.Default()
	h := handler.NewHandler(dispatcher)

	r.GET("/health", h.Health)
	r.GET("/moderators", h.Moderators)
	r.GET("/challengers", h.Challengers)
	r.GET("/tables", h.Tables)
	r.GET("/speed", h.Speed)

	server := &http.Server{
		Addr:           envOrDefault("STATUS_ADDR", ":8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
