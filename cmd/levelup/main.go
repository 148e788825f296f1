// Package main provides a CLI tool for starting a character's profession and recording level ups.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/proflevels/internal/config"
	"github.com/cory-johannsen/proflevels/internal/game/level"
	"github.com/cory-johannsen/proflevels/internal/game/profession"
	"github.com/cory-johannsen/proflevels/internal/game/progression"
	"github.com/cory-johannsen/proflevels/internal/game/property"
	"github.com/cory-johannsen/proflevels/internal/observability"
	"github.com/cory-johannsen/proflevels/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	action := flag.String("action", "show", "action: begin, levelup, or show")
	characterFlag := flag.String("character", "", "character UUID (required)")
	professionFlag := flag.String("profession", "", "profession for begin: fighter, thief, ranger, wizard, theurgist, priest")
	incrementsFlag := flag.String("increments", "", "increments for levelup, e.g. strength,agility or will=1,charisma=1")
	atFlag := flag.String("at", "", "RFC 3339 level up time (default now)")
	flag.Parse()

	if *characterFlag == "" {
		flag.Usage()
		os.Exit(1)
	}
	characterID, err := uuid.Parse(*characterFlag)
	if err != nil {
		log.Fatalf("invalid character id %q: %v", *characterFlag, err)
	}
	at, err := parseAt(*atFlag)
	if err != nil {
		log.Fatalf("invalid -at: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	professions, err := loadProfessions(cfg.Content)
	if err != nil {
		logger.Fatal("loading professions", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	if err := pool.Health(ctx, 5*time.Second); err != nil {
		logger.Fatal("database health check", zap.Error(err))
	}

	repo := postgres.NewProfessionLevelsRepository(pool.DB(), professions)
	svc := progression.NewService(repo, level.NewFactory(level.SystemClock(), logger), professions, logger)

	summary, err := execute(ctx, svc, request{
		action:      *action,
		characterID: characterID,
		profession:  *professionFlag,
		increments:  *incrementsFlag,
		at:          at,
	})
	if err != nil {
		logger.Fatal("levelup failed",
			zap.String("action", *action),
			zap.String("character_id", characterID.String()),
			zap.Error(err),
		)
	}
	fmt.Fprintf(os.Stdout, "%s [%s]\n", summary, time.Since(start))
}

// request is one parsed invocation of the tool.
type request struct {
	action      string
	characterID uuid.UUID
	profession  string
	increments  string
	at          time.Time
}

// execute performs req.action against svc and returns the character's summary afterwards.
//
// Postcondition: Returns the summary, or the first parse, rule, or store error.
func execute(ctx context.Context, svc *progression.Service, req request) (progression.Summary, error) {
	switch req.action {
	case "begin":
		code, err := profession.ParseCode(req.profession)
		if err != nil {
			return progression.Summary{}, fmt.Errorf("invalid -profession: %w", err)
		}
		if _, err := svc.Begin(ctx, req.characterID, code, req.at); err != nil {
			return progression.Summary{}, fmt.Errorf("starting profession: %w", err)
		}
	case "levelup":
		increments, err := parseIncrements(req.increments)
		if err != nil {
			return progression.Summary{}, fmt.Errorf("invalid -increments: %w", err)
		}
		if _, err := svc.LevelUp(ctx, req.characterID, increments, req.at); err != nil {
			return progression.Summary{}, fmt.Errorf("recording level up: %w", err)
		}
	case "show":
	default:
		return progression.Summary{}, fmt.Errorf("invalid action %q: must be one of begin, levelup, show", req.action)
	}

	summary, err := svc.Summary(ctx, req.characterID)
	if err != nil {
		return progression.Summary{}, fmt.Errorf("reading summary: %w", err)
	}
	return summary, nil
}

func loadProfessions(cfg config.ContentConfig) (*profession.Registry, error) {
	if cfg.ProfessionsDir == "" {
		return profession.DefaultRegistry(), nil
	}
	loaded, err := profession.LoadProfessions(cfg.ProfessionsDir)
	if err != nil {
		return nil, err
	}
	return profession.NewRegistry(loaded...), nil
}

func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

// parseIncrements reads a comma separated list of property codes, each optionally
// followed by =value. A bare code means an increment of 1.
func parseIncrements(s string) (property.Increments, error) {
	var in property.Increments
	if strings.TrimSpace(s) == "" {
		return in, nil
	}
	seen := make(map[property.Code]bool)
	for _, part := range strings.Split(s, ",") {
		name, rawValue, hasValue := strings.Cut(part, "=")
		code, err := property.ParseCode(name)
		if err != nil {
			return property.Increments{}, err
		}
		if seen[code] {
			return property.Increments{}, fmt.Errorf("property %s listed twice", code)
		}
		seen[code] = true
		value := 1
		if hasValue {
			value, err = strconv.Atoi(strings.TrimSpace(rawValue))
			if err != nil {
				return property.Increments{}, fmt.Errorf("increment of %s: %w", code, err)
			}
		}
		in = in.With(code, value)
	}
	return in, nil
}
