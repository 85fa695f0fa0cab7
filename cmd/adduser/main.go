// cmd/adduser/main.go
// Creates or updates an API user in the database.
//
// Usage:
//
//	go run ./cmd/adduser -username trainer -password testing
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/padraicbc/umaplan/config"
	bundb "github.com/padraicbc/umaplan/db"
	"github.com/padraicbc/umaplan/handlers"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	hash, err := handlers.HashPasswordForUser(*username, *password)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	cfg := config.Load()
	db := bundb.Setup(cfg.Store, cfg.Debug)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables:", err)
	}
	if err := bundb.NewUsers(db).Upsert(ctx, *username, hash); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("user %q saved\n", *username)
}
