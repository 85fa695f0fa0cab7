package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/padraicbc/umaplan/models"
)

const page = `<!DOCTYPE html><html><head><title>Races</title></head><body>
<div id="__next"></div>
<script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"raceData":[
 {"id":12,"name_en":"Arima Kinen","name_jp":"有馬記念","grade":100,"distance":2500,"terrain":1,"direction":1,"track":10005,"month":12,"half":2,"year":3},
 {"id":3,"name_en":"","name_jp":"謎のレース","grade":550,"distance":1400,"terrain":2,"direction":9,"track":99999,"month":6,"half":1,"year":1}
]}}}</script>
</body></html>`

func TestExtractAndNormalize(t *testing.T) {
	payload, err := ExtractPayload(strings.NewReader(page))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	src, err := DecodeRaces(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	races, stats := Normalize(src)
	if stats.Races != 2 || len(races) != 2 {
		t.Fatalf("expected 2 races, got %d", len(races))
	}

	// sorted by id
	unknownRace, arima := races[0], races[1]
	if arima.Name != "Arima Kinen" || arima.Grade != models.GradeG1 || arima.Track != models.TrackTurf ||
		arima.Location != "Nakayama" || arima.Half != models.HalfLate || arima.CareerPhase != models.PhaseSenior {
		t.Fatalf("unexpected arima %+v", arima)
	}

	if unknownRace.Name != "謎のレース" {
		t.Fatalf("expected JP name fallback, got %q", unknownRace.Name)
	}
	if unknownRace.Grade != "Unknown (550)" || unknownRace.Location != "Unknown (99999)" ||
		unknownRace.Direction != "Unknown (9)" {
		t.Fatalf("unexpected placeholders %+v", unknownRace)
	}
	for _, table := range []string{"grade", "direction", "track"} {
		if stats.Misses[table] != 1 {
			t.Fatalf("expected 1 %s miss, got %d", table, stats.Misses[table])
		}
	}
	if stats.Misses["terrain"] != 0 {
		t.Fatalf("unexpected terrain miss")
	}
}

func TestExtractPayloadMissing(t *testing.T) {
	_, err := ExtractPayload(strings.NewReader("<html><body><p>maintenance</p></body></html>"))
	if !errors.Is(err, ErrPayloadNotFound) {
		t.Fatalf("expected ErrPayloadNotFound, got %v", err)
	}
	if _, err := DecodeRaces([]byte(`{"props":{"pageProps":{}}}`)); !errors.Is(err, ErrPayloadNotFound) {
		t.Fatalf("expected ErrPayloadNotFound for empty list, got %v", err)
	}
}

func TestRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("missing user agent")
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "data", "races.json")
	stats, err := New(5*time.Second, nil).Run(context.Background(), srv.URL, out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Races != 2 {
		t.Fatalf("expected 2 races, got %d", stats.Races)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var c models.Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		t.Fatalf("output is not a catalog: %v", err)
	}
	if len(c.Races) != 2 || c.Races[0].ID != 3 {
		t.Fatalf("unexpected output %+v", c.Races)
	}
}

func TestRunKeepsExistingFileOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "races.json")
	if err := os.WriteFile(out, []byte(`{"races":[]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(5*time.Second, nil).Run(context.Background(), srv.URL, out); err == nil {
		t.Fatal("expected error for 503")
	}
	b, _ := os.ReadFile(out)
	if string(b) != `{"races":[]}` {
		t.Fatalf("existing file was replaced: %s", b)
	}
}
