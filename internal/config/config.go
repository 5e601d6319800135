// Package config builds the command line and resolves process configuration
// from flags, INVENTORY_* environment variables and an optional .env file.
package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erazemk/inventory/internal/logging"
	"github.com/erazemk/inventory/internal/store"
)

// EnvPrefix prefixes every environment variable read by the service.
const EnvPrefix = "INVENTORY"

// DefaultMaxUpload is the default limit for a multipart upload body.
const DefaultMaxUpload = 10 << 20

// envFiles are loaded into the environment before flags are resolved.
// Existing variables are never overridden.
var envFiles = []string{".env"}

// Config holds the resolved service configuration.
type Config struct {
	// Host is the bind address of the HTTP server.
	Host string
	// Port is the bind port of the HTTP server.
	Port int
	// CacheDir holds the backing store and the uploads directory.
	CacheDir string

	Backend   string
	MaxUpload int64
	LogPath   string
	LogLevel  string
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewCommand returns the root command. run receives the validated configuration
// and the command context.
func NewCommand(run func(ctx context.Context, cfg Config) error) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "inventory",
		Short:         "Inventory item registry with photo storage",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolve(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringP("host", "h", "", "server host (env INVENTORY_HOST)")
	flags.StringP("port", "p", "", "server port (env INVENTORY_PORT)")
	flags.StringP("cache", "c", "", "cache directory (env INVENTORY_CACHE)")
	flags.String("backend", store.BackendJSON, "item store backend: json or sqlite")
	flags.Int64("max-upload", DefaultMaxUpload, "maximum upload size in bytes")
	flags.String("log", "", "also append logs to this file")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("binding flags: %v", err))
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

// resolve reads every setting from v and validates it.
func resolve(v *viper.Viper) (Config, error) {
	loadEnvFiles()

	var errs []error
	required := func(key string) string {
		val := strings.TrimSpace(v.GetString(key))
		if val == "" {
			errs = append(errs, fmt.Errorf("required option --%s (or %s_%s) is not set",
				key, EnvPrefix, strings.ToUpper(key)))
		}
		return val
	}

	cfg := Config{
		Host:      required("host"),
		CacheDir:  required("cache"),
		Backend:   v.GetString("backend"),
		MaxUpload: v.GetInt64("max-upload"),
		LogPath:   v.GetString("log"),
		LogLevel:  v.GetString("log-level"),
	}

	if port := required("port"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			errs = append(errs, fmt.Errorf("port must be an integer between 1 and 65535, got %q", port))
		}
		cfg.Port = n
	}

	switch cfg.Backend {
	case store.BackendJSON, store.BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("backend must be %q or %q, got %q", store.BackendJSON, store.BackendSQLite, cfg.Backend))
	}
	if cfg.MaxUpload <= 0 {
		errs = append(errs, fmt.Errorf("max-upload must be positive, got %d", cfg.MaxUpload))
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func loadEnvFiles() {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
}
