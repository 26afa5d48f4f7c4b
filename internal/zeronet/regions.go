package zeronet

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"envlogs/internal/config"
	"envlogs/internal/model"
)

// Directory holds one Client per configured region with a usable API key.
// Regions whose key environment variable is unset are skipped with a warning
// at construction time, so a single missing key never blocks the others.
type Directory struct {
	clients map[string]Client
	order   []string
}

// NewDirectory builds a Directory from the configured regions.
func NewDirectory(regions []config.RegionConfig, timeout time.Duration) *Directory {
	d := &Directory{clients: make(map[string]Client)}
	for _, rc := range regions {
		key := os.Getenv(rc.KeyEnv)
		if key == "" {
			logWarn(map[string]any{
				"component": "zeronet",
				"event":     "region_skipped",
				"region":    rc.Name,
				"key_env":   rc.KeyEnv,
				"msg":       "api key env var not set, skipping region",
			})
			continue
		}
		d.clients[rc.Name] = NewHTTPClient(rc.Name, rc.BaseURL, key, timeout)
		d.order = append(d.order, rc.Name)
	}
	return d
}

// Regions returns the names of the usable regions in configuration order.
func (d *Directory) Regions() []string {
	return d.order
}

// ClientFor returns the client for a region, if that region is usable.
func (d *Directory) ClientFor(region string) (Client, bool) {
	c, ok := d.clients[region]
	return c, ok
}

// SearchAll queries every usable region and aggregates the results.
// A failing region contributes nothing; the others still answer.
func (d *Directory) SearchAll(ctx context.Context, name string) []model.Environment {
	var results []model.Environment
	for _, region := range d.order {
		envs, err := d.clients[region].SearchEnvironments(ctx, name)
		if err != nil {
			logWarn(map[string]any{
				"component": "zeronet",
				"event":     "region_search_failed",
				"region":    region,
				"error":     err.Error(),
			})
			continue
		}
		results = append(results, envs...)
	}
	return results
}

func logWarn(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	data["level"] = "warn"
	b, err := json.Marshal(data)
	if err != nil {
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
