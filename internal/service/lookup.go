package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"envlogs/internal/cache"
	"envlogs/internal/model"
	"envlogs/internal/slack"
	"envlogs/internal/zeronet"
)

var (
	ErrTermRequired = errors.New("search term is required")
	ErrIDRequired   = errors.New("id is required")
	ErrNotFound     = errors.New("export not found")
)

// RegionDirectory is the multi-region client lookup the services depend on.
// *zeronet.Directory satisfies it.
type RegionDirectory interface {
	SearchAll(ctx context.Context, name string) []model.Environment
	ClientFor(region string) (zeronet.Client, bool)
}

// LookupResult is the service-level outcome of one slash-command lookup.
type LookupResult struct {
	Environments []model.Environment `json:"environments"`
	Posted       bool                `json:"posted"`
}

// LookupService handles the environment lookup triggered by a slash command:
// search every region, enumerate deployments, and post the Block Kit summary
// to the configured channel.
type LookupService interface {
	Lookup(ctx context.Context, term string) (*LookupResult, error)
}

type lookupService struct {
	dir      RegionDirectory
	cache    *cache.SearchCache
	notifier slack.Notifier
	channel  string
}

// NewLookupService constructs a LookupService. cache may be nil.
func NewLookupService(dir RegionDirectory, c *cache.SearchCache, notifier slack.Notifier, channel string) LookupService {
	return &lookupService{dir: dir, cache: c, notifier: notifier, channel: channel}
}

func (s *lookupService) Lookup(ctx context.Context, term string) (*LookupResult, error) {
	if term == "" {
		return nil, ErrTermRequired
	}

	envs, hit := s.cache.Get(ctx, term)
	if !hit {
		envs = s.dir.SearchAll(ctx, term)
		s.cache.Set(ctx, term, envs)
	}

	logInfo(map[string]any{
		"component": "lookup",
		"event":     "environments_found",
		"term":      term,
		"count":     len(envs),
		"cached":    hit,
	})

	if len(envs) == 0 {
		return &LookupResult{Environments: nil, Posted: false}, nil
	}

	reports := make([]slack.EnvironmentReport, 0, len(envs))
	for _, env := range envs {
		rep := slack.EnvironmentReport{Environment: env}

		client, ok := s.dir.ClientFor(env.Region)
		if !ok {
			rep.Err = fmt.Errorf("region %s is not usable", env.Region)
		} else {
			rep.Deployments, rep.Err = client.ListDeployments(ctx, env.ID)
		}
		reports = append(reports, rep)
	}

	msg := slack.BuildLookupMessage(s.channel, reports)
	if err := s.notifier.Post(ctx, msg); err != nil {
		return nil, fmt.Errorf("post lookup message: %w", err)
	}

	return &LookupResult{Environments: envs, Posted: true}, nil
}

func logInfo(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		data["level"] = "info"
	}
	b, err := json.Marshal(data)
	if err != nil {
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
