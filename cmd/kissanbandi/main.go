package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Skillon-x/kissanbandi/client"
	"github.com/Skillon-x/kissanbandi/client/credentials"
	"github.com/Skillon-x/kissanbandi/internal/config"
	"github.com/Skillon-x/kissanbandi/internal/logger"
)

const requestTimeout = 30 * time.Second

var (
	baseURL           string
	debug             bool
	sessionToken      string
	adminSessionToken string
)

// app is the per-invocation wiring shared by every subcommand.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	keyring *credentials.Keyring
	client  *client.Client
	closers []func() error
	metrics *http.Server
}

type appKey struct{}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kissanbandi",
		Short:         "Command-line client for the KissanBandi storefront API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a, ok := cmd.Context().Value(appKey{}).(*app); ok {
				return a.close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend URL including /api (overrides KISSANBANDI_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output and HTTP dumps")
	rootCmd.PersistentFlags().StringVar(&sessionToken, "session-token", "", "User token for this invocation only (session scope)")
	rootCmd.PersistentFlags().StringVar(&adminSessionToken, "admin-session-token", "", "Admin token for this invocation only (session scope)")

	// Sub-commands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newProductsCmd())
	rootCmd.AddCommand(newOrdersCmd())
	rootCmd.AddCommand(newUsersCmd())

	return rootCmd
}

func setup(cmd *cobra.Command) (*app, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
		if err := cfg.ResolveDefaults(); err != nil {
			return nil, err
		}
	}
	if debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}

	l := logger.New("kissanbandi-cli", cfg.LogLevel, cfg.LogPretty)
	log.Logger = l
	a := &app{cfg: cfg, log: l}

	durable, err := a.durableStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	session := credentials.NewMemoryStore()
	a.keyring = credentials.NewKeyring(durable, session)
	if adminSessionToken != "" {
		if err := a.keyring.Save(cmd.Context(), credentials.Admin, credentials.Session, adminSessionToken); err != nil {
			return nil, fmt.Errorf("store admin session token: %w", err)
		}
	}
	if sessionToken != "" {
		if err := a.keyring.Save(cmd.Context(), credentials.User, credentials.Session, sessionToken); err != nil {
			return nil, fmt.Errorf("store session token: %w", err)
		}
	}

	a.client, err = client.New(cfg.BaseURL,
		client.WithHTTPTimeout(cfg.HTTPTimeout),
		client.WithCredentials(a.keyring),
		client.WithLogger(l),
		client.WithDebugLogging(cfg.Debug),
	)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.client.Close)

	if cfg.MetricsAddr != "" {
		a.serveMetrics(cfg.MetricsAddr)
	}
	return a, nil
}

// durableStore picks Redis when configured, otherwise the credentials file.
func (a *app) durableStore(ctx context.Context) (credentials.Store, error) {
	if !a.cfg.UseRedis() {
		a.log.Debug().Str("path", a.cfg.CredentialsFile).Msg("using file credential store")
		return credentials.NewFileStore(a.cfg.CredentialsFile), nil
	}
	rc, err := credentials.ConnectRedis(ctx, credentials.RedisConfig{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	store := credentials.NewRedisStore(rc, a.cfg.RedisPrefix, a.cfg.RedisTokenTTL)
	a.closers = append(a.closers, store.Close)
	a.log.Debug().Str("addr", a.cfg.RedisAddr).Msg("using redis credential store")
	return store, nil
}

func (a *app) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	a.metrics = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Str("addr", addr).Msg("metrics listener failed")
		}
	}()
	a.log.Info().Str("addr", addr).Msg("serving metrics")
}

func (a *app) close() error {
	var errs []error
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		errs = append(errs, a.metrics.Shutdown(ctx))
	}
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// appFrom returns the wiring installed by PersistentPreRunE.
func appFrom(cmd *cobra.Command) *app {
	return cmd.Context().Value(appKey{}).(*app)
}

// callContext bounds a single API call.
func callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout)
}

// printJSON writes v as indented JSON. Raw backend bodies are re-indented as-is.
func printJSON(w io.Writer, v any) error {
	if raw, ok := v.(json.RawMessage); ok {
		if len(raw) == 0 {
			_, err := fmt.Fprintln(w, "null")
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			// Not JSON; print verbatim.
			_, err = fmt.Fprintln(w, string(raw))
			return err
		}
		_, err := fmt.Fprintln(w, buf.String())
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// readPayload returns the JSON body given by --data or --file.
func readPayload(data, file string) (json.RawMessage, error) {
	var b []byte
	switch {
	case data != "" && file != "":
		return nil, errors.New("use either --data or --file, not both")
	case data != "":
		b = []byte(data)
	case file != "":
		var err error
		if b, err = os.ReadFile(file); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("a JSON payload is required (--data or --file)")
	}
	if !json.Valid(b) {
		return nil, errors.New("payload is not valid JSON")
	}
	return json.RawMessage(b), nil
}

func addPayloadFlags(cmd *cobra.Command, data, file *string) {
	cmd.Flags().StringVar(data, "data", "", "JSON payload")
	cmd.Flags().StringVar(file, "file", "", "Path to a JSON payload file")
}
