package main

import (
	"context"
	"log"
	"net/http"
	"os"

	ghandlers "github.com/gorilla/handlers"

	"todo-web/config"
	"todo-web/db"
	"todo-web/handlers"
	"todo-web/session"
	"todo-web/utils"
)

func main() {
	cfg := config.Load()

	var store db.Store
	if cfg.DatabaseURL != "" {
		pg, err := db.NewPostgres(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to connect to DB: %v", err)
		}
		store = pg
	} else {
		log.Println("DATABASE_URL not set, using in-memory store")
		store = db.NewMemory()
	}
	defer store.Close()

	app := handlers.New(
		store,
		session.NewManager(cfg.SecretKey),
		utils.NewMailer(cfg.SMTP),
		utils.NewTokenMaker(cfg.SecretKey),
		cfg.BaseURL,
	)

	log.Printf("Server starting at %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, ghandlers.LoggingHandler(os.Stdout, app.Router())))
}
