package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host      string    `koanf:"host"`
	Frontend  Frontend  `koanf:"frontend"`
	Store     Store     `koanf:"store"`
	Scheduler Scheduler `koanf:"scheduler"`
	Forecast  Forecast  `koanf:"forecast"`
	Database  Database  `koanf:"db"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

// Store describes the retail location the projections belong to. All window
// calculations happen in its local timezone.
type Store struct {
	Timezone     string `koanf:"timezone"`
	WeekStartDay string `koanf:"weekstartday"`
}

type Scheduler struct {
	Enabled bool `koanf:"enabled"`
}

// Forecast selects how the projection query derives a day's amount when no
// override exists: "baseline" uses the weekday baseline as-is, "weighted"
// redistributes the weekly baseline total via the stored day weights.
type Forecast struct {
	Derivation string `koanf:"derivation"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Frontend: Frontend{
			Enabled: true,
		},
		Store: Store{
			Timezone:     "America/New_York",
			WeekStartDay: "Sunday",
		},
		Scheduler: Scheduler{
			Enabled: true,
		},
		Forecast: Forecast{
			Derivation: "baseline",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "storecast",
			Pass:   "",
			Name:   "storecast",
			Schema: "storecast",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "STORECAST_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "STORECAST_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

// Location resolves the store timezone. An unknown zone name is a
// configuration error severe enough to refuse startup.
func (s Store) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// WeekStart maps the configured week start day name to a time.Weekday,
// falling back to Sunday for unrecognized values.
func (s Store) WeekStart() time.Weekday {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s.WeekStartDay) {
			return d
		}
	}
	log.Warnf("unrecognized week start day %q, falling back to Sunday", s.WeekStartDay)
	return time.Sunday
}
