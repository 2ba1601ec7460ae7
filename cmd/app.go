package main

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/joblens/joblens/internal/config"
	"github.com/joblens/joblens/internal/dispatch"
	"github.com/joblens/joblens/internal/ratelimit"
	"github.com/joblens/joblens/internal/source"
	"github.com/joblens/joblens/internal/source/blind"
	"github.com/joblens/joblens/internal/source/glassdoor"
	"github.com/joblens/joblens/internal/source/indeed"
	"github.com/joblens/joblens/internal/source/levels"
	"github.com/joblens/joblens/internal/source/linkedin"
	"github.com/joblens/joblens/internal/tool"
)

// buildDispatcher wires the full stack: catalog → rate limiters →
// per-source fetchers → clients → tools → dispatcher. The limiter
// registry is the only state that outlives a request.
func buildDispatcher(cfg *config.Config) (*dispatch.Dispatcher, error) {
	catalog, err := source.LoadCatalog()
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.NewRegistry(cfg.Sources.RateBySource())

	fetcherFor := func(sc config.SourceConfig) *source.Fetcher {
		return source.NewFetcher(limiter, time.Duration(sc.TimeoutSecs)*time.Second)
	}
	entryFor := func(id string) (source.Entry, error) {
		e := catalog.ByID(id)
		if e == nil {
			return source.Entry{}, eris.Errorf("catalog: missing source %s", id)
		}
		return *e, nil
	}

	indeedEntry, err := entryFor(indeed.SourceID)
	if err != nil {
		return nil, err
	}
	glassdoorEntry, err := entryFor(glassdoor.SourceID)
	if err != nil {
		return nil, err
	}
	levelsEntry, err := entryFor(levels.SourceID)
	if err != nil {
		return nil, err
	}
	blindEntry, err := entryFor(blind.SourceID)
	if err != nil {
		return nil, err
	}
	linkedinEntry, err := entryFor(linkedin.SourceID)
	if err != nil {
		return nil, err
	}

	tools := tool.New(
		indeed.New(fetcherFor(cfg.Sources.Indeed), indeedEntry),
		glassdoor.New(fetcherFor(cfg.Sources.Glassdoor), glassdoorEntry),
		levels.New(fetcherFor(cfg.Sources.Levels), levelsEntry),
		blind.New(fetcherFor(cfg.Sources.Blind), blindEntry),
		linkedin.New(fetcherFor(cfg.Sources.LinkedIn), linkedinEntry),
		cfg.Report,
	)

	d := dispatch.NewDispatcher()
	dispatch.RegisterAll(d, tools)
	return d, nil
}
