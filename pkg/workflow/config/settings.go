package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/observability"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/registry"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// EnvPrefix prefixes every environment variable ApplyEnv reads.
const EnvPrefix = "WORKFLOW_"

// Settings is the typed configuration of a workflow editor process.
type Settings struct {
	Log            LogSettings
	Traversal      TraversalSettings
	Telemetry      TelemetrySettings
	Store          StoreSettings
	PrototypesFile string
}

// LogSettings configures the console logger.
type LogSettings struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=text json logfmt"`
}

// TraversalSettings bounds graph walks.
type TraversalSettings struct {
	// MaxDepth limits ancestor lookups; 0 means unbounded.
	MaxDepth int `validate:"gte=0"`
}

// TelemetrySettings toggles OpenTelemetry metrics and tracing.
type TelemetrySettings struct {
	Metrics bool
	Tracing bool
}

// StoreSettings selects the definition store.
type StoreSettings struct {
	Driver         string        `validate:"oneof=memory sqlite postgres"`
	DSN            string        `validate:"required_unless=Driver memory"`
	ConnectTimeout time.Duration `validate:"gte=0"`
	// ConnectAttempts bounds connection attempts; 0 means one attempt.
	ConnectAttempts int `validate:"gte=0"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		Log:   LogSettings{Level: "info", Format: "text"},
		Store: StoreSettings{Driver: DriverMemory, ConnectTimeout: 5 * time.Second},
	}
}

// FromConfig reads settings from a document, keeping defaults for
// anything it does not set:
//
//	log:
//	  level: debug
//	  format: json
//	traversal:
//	  maxDepth: 64
//	telemetry:
//	  metrics: true
//	  tracing: false
//	store:
//	  driver: sqlite
//	  dsn: workflows.db
//	  connectTimeout: 3s
//	  connectAttempts: 3
//	prototypesFile: prototypes.yaml
func FromConfig(c Config) Settings {
	s := Defaults()

	logCfg := c.Section("log")
	s.Log.Level = strings.ToLower(logCfg.String("level", s.Log.Level))
	s.Log.Format = strings.ToLower(logCfg.String("format", s.Log.Format))

	s.Traversal.MaxDepth = c.Section("traversal").Int("maxDepth", s.Traversal.MaxDepth)

	tel := c.Section("telemetry")
	s.Telemetry.Metrics = tel.Bool("metrics", s.Telemetry.Metrics)
	s.Telemetry.Tracing = tel.Bool("tracing", s.Telemetry.Tracing)

	st := c.Section("store")
	s.Store.Driver = strings.ToLower(st.String("driver", s.Store.Driver))
	s.Store.DSN = st.String("dsn", s.Store.DSN)
	s.Store.ConnectTimeout = st.Duration("connectTimeout", s.Store.ConnectTimeout)
	s.Store.ConnectAttempts = st.Int("connectAttempts", s.Store.ConnectAttempts)

	s.PrototypesFile = c.String("prototypesFile", s.PrototypesFile)
	return s
}

// Load reads settings from a file, applies the environment and validates
// the result. An empty path skips the file.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path != "" {
		c, err := FromFile(path)
		if err != nil {
			return Settings{}, err
		}
		s = FromConfig(c)
	}
	if err := s.ApplyEnv(); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ApplyEnv overrides settings from WORKFLOW_* variables. A .env file in the
// working directory is loaded first when present; variables already set in
// the process environment win.
//
// Variables: WORKFLOW_LOG_LEVEL, WORKFLOW_LOG_FORMAT, WORKFLOW_MAX_DEPTH,
// WORKFLOW_METRICS, WORKFLOW_TRACING, WORKFLOW_STORE_DRIVER,
// WORKFLOW_STORE_DSN, WORKFLOW_STORE_CONNECT_TIMEOUT,
// WORKFLOW_STORE_CONNECT_ATTEMPTS, WORKFLOW_PROTOTYPES_FILE.
func (s *Settings) ApplyEnv() error {
	var errs []error
	// A missing .env file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, fmt.Errorf("load .env: %w", err))
	}

	str := func(key string, dst *string, lower bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			if lower {
				v = strings.ToLower(v)
			}
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	str("LOG_LEVEL", &s.Log.Level, true)
	str("LOG_FORMAT", &s.Log.Format, true)
	integer("MAX_DEPTH", &s.Traversal.MaxDepth)
	boolean("METRICS", &s.Telemetry.Metrics)
	boolean("TRACING", &s.Telemetry.Tracing)
	str("STORE_DRIVER", &s.Store.Driver, true)
	str("STORE_DSN", &s.Store.DSN, false)
	integer("STORE_CONNECT_ATTEMPTS", &s.Store.ConnectAttempts)
	str("PROTOTYPES_FILE", &s.PrototypesFile, false)
	if v, ok := os.LookupEnv(EnvPrefix + "STORE_CONNECT_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSTORE_CONNECT_TIMEOUT: %w", EnvPrefix, err))
		} else {
			s.Store.ConnectTimeout = d
		}
	}
	return errors.Join(errs...)
}

// validate is a singleton validator instance.
var validate = validator.New()

// Validate checks the settings and returns every problem, joined.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	errs := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		errs = append(errs, formatValidationError(e))
	}
	return errors.Join(errs...)
}

func formatValidationError(e validator.FieldError) error {
	field := strings.TrimPrefix(e.Namespace(), "Settings.")
	switch e.Tag() {
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s], got %q", field, e.Param(), e.Value())
	case "required_unless":
		return fmt.Errorf("%s: field is required for this driver", field)
	case "gte":
		return fmt.Errorf("%s: must be at least %s", field, e.Param())
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}

// Registry builds the node type registry, applying the prototypes file
// when one is configured.
func (s Settings) Registry() (*registry.Registry, error) {
	b := registry.DefaultBuilder()
	if s.PrototypesFile != "" {
		overrides, err := registry.LoadPrototypes(s.PrototypesFile)
		if err != nil {
			return nil, err
		}
		b.WithOverrides(overrides)
	}
	return b.Build(), nil
}

// Logger builds the console logger writing to w (stderr when nil).
func (s Settings) Logger(w io.Writer) (*slog.Logger, error) {
	return observability.NewConsoleLogger(observability.ConsoleOptions{
		Level:  s.Log.Level,
		Format: s.Log.Format,
		Writer: w,
	})
}

// EditorOptions converts the settings into options for workflow.NewEditor
// and the stateless workflow functions.
func (s Settings) EditorOptions() ([]workflow.ResolveOption, error) {
	logger, err := s.Logger(nil)
	if err != nil {
		return nil, err
	}
	return []workflow.ResolveOption{
		workflow.WithLogger(logger),
		workflow.WithMaxDepth(s.Traversal.MaxDepth),
		workflow.WithObservability(s.Telemetry.Metrics, s.Telemetry.Tracing),
	}, nil
}
