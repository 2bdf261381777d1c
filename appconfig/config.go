// Package appconfig owns the boundary between the engine and the JSON
// config tree an external collaborator persists under <root>/apps/ (spec.md
// §6): root-directory discovery, environment-driven settings, per-app
// identifier minting, and encode/decode of the four file shapes. Grounded
// in the teacher's config.Init/findAppRoot/LoadWithRoot
// (_examples/wwsheng009-yao/config/config.go).
package appconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/sorenxr/xrshadow/internal/telemetry"
)

// markerFiles are the files findAppRoot looks for, in order, to recognize
// an application root directory.
var markerFiles = []string{"xrshadow.json", filepath.Join("apps", "apps.json")}

// Config is the engine's environment-driven settings.
type Config struct {
	Root          string `env:"XRSHADOW_ROOT"`
	LogLevel      string `env:"XRSHADOW_LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"XRSHADOW_LOG_FILE"`
	LogMaxSize    int    `env:"XRSHADOW_LOG_MAX_SIZE_MB" envDefault:"50"`
	LogBackups    int    `env:"XRSHADOW_LOG_BACKUPS" envDefault:"3"`
	LogMaxAgeDays int    `env:"XRSHADOW_LOG_MAX_AGE_DAYS" envDefault:"28"`
}

// Conf is the package-global settings instance, populated by Init.
var Conf Config

func init() {
	Init()
}

// Init determines the application root and loads Config from it, applying
// any .env file found there, mirroring the teacher's two-step
// find-root-then-load sequence.
func Init() {
	root := os.Getenv("XRSHADOW_ROOT")
	if root == "" {
		root = findAppRoot()
	}
	if root == "" {
		root = "."
	}

	envFile, _ := filepath.Abs(filepath.Join(root, ".env"))
	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		Conf = LoadWithRoot(root)
	} else {
		godotenv.Overload(envFile)
		Conf = LoadWithRoot(root)
	}

	telemetry.UseRotatingFile(Conf.LogFile, Conf.LogMaxSize, Conf.LogBackups, Conf.LogMaxAgeDays)
}

// findAppRoot walks upward from the working directory looking for one of
// markerFiles, the way the teacher's findAppRoot looks for app.yao.
func findAppRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, marker := range markerFiles {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load loads Config with XRSHADOW_ROOT as the root, or the current working
// directory if that is unset. It does not walk upward for marker files.
func Load() Config { return LoadWithRoot("") }

// LoadWithRoot loads Config from the environment, with root taking
// precedence over XRSHADOW_ROOT and the default ".".
func LoadWithRoot(root string) Config {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		telemetry.Log.WithError(err).Fatal("appconfig: failed to parse environment configuration")
	}

	if root != "" {
		cfg.Root, _ = filepath.Abs(root)
	} else if cfg.Root != "" {
		cfg.Root, _ = filepath.Abs(cfg.Root)
	} else {
		cfg.Root, _ = filepath.Abs(".")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	return cfg
}

// AppsDir returns <root>/apps.
func (c Config) AppsDir() string { return filepath.Join(c.Root, "apps") }
