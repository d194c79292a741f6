// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/numo/internal/cipher"
	"github.com/xkilldash9x/numo/internal/config"
	"github.com/xkilldash9x/numo/internal/observability"
)

type contextKey string

const configKey contextKey = "config"

// getConfigFromContext returns the configuration stored by the root command's
// PersistentPreRunE.
func getConfigFromContext(ctx context.Context) (config.Interface, error) {
	cfg, ok := ctx.Value(configKey).(config.Interface)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// NewRootCommand builds the numo command tree. Each call returns an
// independent instance with its own viper store.
func NewRootCommand() *cobra.Command {
	var cfgFile string
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "numo [flags] <input-file> <output-file>",
		Short: "Calculate numerology ciphers over text files",
		Long: `numo scores every line of a text file under one or more letter-to-number
ciphers and writes the results as CSV. Text inside [brackets] is excluded
from the score but kept in the report.`,
		Example: `  numo notes.txt scores.csv
  numo --ciphers ordinal,reduction notes.txt scores.csv
  numo --ciphers all --format json notes.txt scores.json`,
		Version:       Version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.SetDefaults(v)
			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("Starting numo", zap.String("version", Version))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, configKey, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runScore(ctx, observability.NewRunLogger(), cfg, args[0], args[1], cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./numo.yaml, then ~/.numo/numo.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	flags := rootCmd.Flags()
	flags.StringP("ciphers", "c", "alpha_qabbala", `comma-separated list of ciphers, or "all"`)
	flags.StringP("format", "f", "csv", "report format (csv, json)")
	flags.IntP("workers", "w", 1, "number of goroutines scoring lines")

	// Flags override config file and environment values.
	_ = v.BindPFlag("scoring.default_ciphers", flags.Lookup("ciphers"))
	_ = v.BindPFlag("report.format", flags.Lookup("format"))
	_ = v.BindPFlag("scoring.workers", flags.Lookup("workers"))

	rootCmd.AddCommand(newCiphersCmd())
	return rootCmd
}

// initializeConfig reads in config file and ENV variables if set.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to resolve config path %s: %w", cfgFile, err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".numo"))
		}
		v.SetConfigName("numo")
		v.SetConfigType("yaml")
	}

	config.BindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and environment apply.
	}
	return nil
}

// Execute runs the root command with the process arguments.
func Execute(ctx context.Context) error {
	return execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	defer observability.Sync()

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var unknown *cipher.UnknownCipherError
	switch {
	case errors.As(err, &unknown):
		fmt.Fprintln(stderr, unknown.Error())
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "Interrupted.")
	default:
		fmt.Fprintln(stderr, "Error:", err)
	}
	observability.GetLogger().Debug("Command execution failed", zap.Error(err))
	return err
}
