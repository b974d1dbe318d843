package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/degreeplan/core"
	"github.com/jask/degreeplan/internal/catalog"
	"github.com/jask/degreeplan/internal/config"
	"github.com/jask/degreeplan/internal/database"
	"github.com/jask/degreeplan/internal/database/repository"
	"github.com/jask/degreeplan/internal/planner"
	"github.com/jask/degreeplan/internal/service"
	"github.com/jask/degreeplan/internal/tui"
)

const snapshotsKept = 5

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logFile, err := config.OpenLogFile(cfg.Log)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer logFile.Close()
	logger := config.NewLogger(cfg.Log, logFile)

	if _, err := os.Stat(config.Path()); errors.Is(err, fs.ErrNotExist) {
		if len(cfg.Keys) == 0 {
			cfg.Keys = core.DefaultKeybindingsByAction(core.DefaultKeyBindings())
		}
		if err := config.Save(cfg); err != nil {
			logger.Warn().Err(err).Msg("write starter config")
		}
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db")
	}
	defer db.Close()

	// repositories
	catalogRepo := repository.NewCatalogRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)
	uploadRepo := repository.NewUploadRepo(db)

	client, err := planner.NewClient(cfg.API.BaseURL,
		planner.WithTimeout(cfg.API.Timeout),
		planner.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("planner client")
	}

	form := &service.FormService{
		Catalog: &catalog.CachedSource{
			Primary:   primarySource(cfg, client),
			Snapshots: catalogRepo,
			Keep:      snapshotsKept,
			Log:       logger.With().Str("component", "catalog").Logger(),
		},
		Client:      client,
		Submissions: submissionRepo,
		Uploads:     uploadRepo,
		Limits: service.Limits{
			Majors:    cfg.Form.MaxMajors,
			Minors:    cfg.Form.MaxMinors,
			BlurGrace: cfg.Form.BlurGrace,
		},
		Log: logger.With().Str("component", "form").Logger(),
	}
	maintenance := &service.MaintenanceService{DB: db}

	logger.Info().
		Str("base_url", client.BaseURL()).
		Str("database", cfg.Database.Path).
		Msg("starting degreeplan")

	p := tea.NewProgram(tui.New(ctx, cfg, form, maintenance), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("tui exited")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

func primarySource(cfg config.Config, client *planner.Client) catalog.Source {
	if cfg.Catalog.File != "" {
		return &catalog.FileSource{Path: cfg.Catalog.File}
	}
	return &catalog.RemoteSource{Client: client}
}
