// Package scraper rebuilds races.json from the public race list page. The
// page embeds its data as a Next.js JSON payload; codes in it are mapped
// to the catalog vocabulary through fixed lookup tables.
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/padraicbc/umaplan/models"
)

// ErrPayloadNotFound means the page had no embedded data script.
var ErrPayloadNotFound = errors.New("embedded race payload not found")

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// payloadSelector locates the Next.js data script.
const payloadSelector = "script#__NEXT_DATA__"

// SourceRace is one entry of the embedded payload.
type SourceRace struct {
	ID        int    `json:"id"`
	NameEN    string `json:"name_en"`
	NameJP    string `json:"name_jp"`
	NameKO    string `json:"name_ko"`
	NameTW    string `json:"name_tw"`
	Grade     int    `json:"grade"`
	Distance  int    `json:"distance"`
	Terrain   int    `json:"terrain"`
	Direction int    `json:"direction"`
	Track     int    `json:"track"`
	Month     int    `json:"month"`
	Half      int    `json:"half"`
	Year      int    `json:"year"`
	Notes     string `json:"notes"`
}

type nextData struct {
	Props struct {
		PageProps struct {
			RaceData []SourceRace `json:"raceData"`
		} `json:"pageProps"`
	} `json:"props"`
}

// Stats counts lookup misses by table during Normalize.
type Stats struct {
	Races  int
	Misses map[string]int
}

// Refresher fetches, converts and writes the catalog.
type Refresher struct {
	client *http.Client
	logger *zap.Logger
}

// New returns a Refresher using an HTTP client with the given timeout.
func New(timeout time.Duration, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Run downloads sourceURL and overwrites outputFile with the normalized
// catalog. Nothing is written unless the whole page converts.
func (r *Refresher) Run(ctx context.Context, sourceURL, outputFile string) (Stats, error) {
	start := time.Now()
	body, err := r.fetch(ctx, sourceURL)
	if err != nil {
		return Stats{}, err
	}
	defer body.Close()

	payload, err := ExtractPayload(body)
	if err != nil {
		return Stats{}, err
	}
	src, err := DecodeRaces(payload)
	if err != nil {
		return Stats{}, err
	}

	races, stats := Normalize(src)
	for table, n := range stats.Misses {
		r.logger.Warn("unmapped codes kept as placeholders", zap.String("table", table), zap.Int("count", n))
	}
	if err := WriteCatalog(outputFile, races); err != nil {
		return stats, err
	}

	r.logger.Info("race data refreshed",
		zap.String("source", sourceURL),
		zap.String("output", outputFile),
		zap.Int("races", stats.Races),
		zap.Duration("took", time.Since(start)),
	)
	return stats, nil
}

func (r *Refresher) fetch(ctx context.Context, sourceURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", sourceURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", sourceURL, resp.Status)
	}
	return resp.Body, nil
}

// ExtractPayload returns the JSON text of the embedded data script.
func ExtractPayload(r io.Reader) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	text := strings.TrimSpace(doc.Find(payloadSelector).First().Text())
	if text == "" {
		return nil, ErrPayloadNotFound
	}
	return []byte(text), nil
}

// DecodeRaces reads the race list out of the payload.
func DecodeRaces(payload []byte) ([]SourceRace, error) {
	var nd nextData
	if err := json.Unmarshal(payload, &nd); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	races := nd.Props.PageProps.RaceData
	if len(races) == 0 {
		return nil, fmt.Errorf("decode payload: %w", ErrPayloadNotFound)
	}
	return races, nil
}

// Normalize converts source entries to catalog races sorted by id. Codes
// missing from a lookup table become "Unknown (<code>)" and are counted.
func Normalize(src []SourceRace) ([]models.Race, Stats) {
	stats := Stats{Misses: make(map[string]int)}
	miss := func(table string, ok bool) {
		if !ok {
			stats.Misses[table]++
		}
	}

	races := make([]models.Race, 0, len(src))
	for _, s := range src {
		grade, ok := lookup(gradeCodes, s.Grade)
		miss("grade", ok)
		track, ok := lookup(terrainCodes, s.Terrain)
		miss("terrain", ok)
		direction, ok := lookup(directionCodes, s.Direction)
		miss("direction", ok)
		half, ok := lookup(halfCodes, s.Half)
		miss("half", ok)
		phase, ok := lookup(yearCodes, s.Year)
		miss("year", ok)
		location, ok := lookup(trackCodes, s.Track)
		miss("track", ok)

		name := s.NameEN
		if name == "" {
			name = s.NameJP
		}

		races = append(races, models.Race{
			ID:          s.ID,
			Name:        name,
			NameJP:      s.NameJP,
			NameEN:      s.NameEN,
			NameKO:      s.NameKO,
			NameTW:      s.NameTW,
			Grade:       grade,
			Distance:    s.Distance,
			Direction:   direction,
			Track:       track,
			Month:       s.Month,
			Half:        half,
			CareerPhase: phase,
			Location:    location,
			Notes:       s.Notes,
		})
	}

	sort.SliceStable(races, func(i, j int) bool { return races[i].ID < races[j].ID })
	stats.Races = len(races)
	return races, stats
}

// WriteCatalog writes races to path via a temp file and rename so readers
// never see a half-written file.
func WriteCatalog(path string, races []models.Race) error {
	data, err := json.MarshalIndent(models.Catalog{Races: races}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
