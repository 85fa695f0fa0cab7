// cmd/migrate/main.go
// Copies stored race plans from one plan store into another, e.g. from a
// local SQLite file or a MySQL database into the PostgreSQL store used by
// the API. Plans that no longer decode are skipped and reported.
//
// Usage:
//
//	FROM_DRIVER=sqlite SQLITE_PATH=~/.config/umaplan/umaplan.db \
//	STORE_DRIVER=postgres DB_PASS=pgpass \
//	go run ./cmd/migrate
//
//	FROM_DRIVER=mysql MYSQL_DSN="user:pass@tcp(host:3306)/umaplan" \
//	STORE_DRIVER=postgres DB_PASS=pgpass \
//	go run ./cmd/migrate -prefix user:
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/padraicbc/umaplan/config"
	"github.com/padraicbc/umaplan/planner"
	"github.com/padraicbc/umaplan/store"
)

func main() {
	prefix := flag.String("prefix", "", "only copy keys with this prefix")
	dryRun := flag.Bool("dry-run", false, "decode and count plans without writing")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cfg := config.LoadCLI()

	from := cfg.Store
	from.Driver = strings.ToLower(strings.TrimSpace(os.Getenv("FROM_DRIVER")))
	if from.Driver == "" {
		log.Fatal("FROM_DRIVER required: sqlite, mysql or postgres")
	}
	if err := from.Validate(); err != nil {
		log.Fatalf("source store: %v", err)
	}
	if from.Driver == cfg.Store.Driver {
		log.Fatalf("source and destination are both %s", from.Driver)
	}

	src, err := store.Open(ctx, from, cfg.Debug, nil)
	if err != nil {
		log.Fatalf("open source %s: %v", from.Driver, err)
	}
	defer src.Close()
	log.Printf("connected to source %s", from.Driver)

	dst, err := store.Open(ctx, cfg.Store, cfg.Debug, nil)
	if err != nil {
		log.Fatalf("open destination %s: %v", cfg.Store.Driver, err)
	}
	defer dst.Close()
	log.Printf("connected to destination %s", cfg.Store.Driver)

	keys, err := src.Keys(ctx)
	if err != nil {
		log.Fatalf("list source keys: %v", err)
	}

	var copied, skipped int
	for _, k := range keys {
		if !strings.HasPrefix(k, *prefix) {
			continue
		}
		n, err := migrateKey(ctx, src, dst, k, *dryRun)
		if err != nil {
			var derr *planner.DeserializationError
			if errors.As(err, &derr) {
				log.Printf("skip %-30s  %v", k, err)
				skipped++
				continue
			}
			log.Fatalf("migrate %s: %v", k, err)
		}
		log.Printf("%-30s  %d races", k, n)
		copied++
	}

	log.Printf("migration complete: %d copied, %d skipped", copied, skipped)
}

// migrateKey re-encodes one plan through the codec so only valid state
// reaches the destination. It returns the number of selected races.
func migrateKey(ctx context.Context, src, dst store.Provider, key string, dryRun bool) (int, error) {
	raw, err := src.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	state, err := planner.Load(raw)
	if err != nil {
		return 0, err
	}
	state, err = planner.Reduce(state, planner.ReplaceState{State: state})
	if err != nil {
		return 0, &planner.DeserializationError{Source: key, Err: err}
	}
	if dryRun {
		return len(state.SelectedRaces), nil
	}
	out, err := planner.Save(state)
	if err != nil {
		return 0, err
	}
	return len(state.SelectedRaces), dst.Put(ctx, key, out)
}
