package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/infrastructure/config"
	"github.com/orris-inc/moderation/internal/infrastructure/database"
	httpRouter "github.com/orris-inc/moderation/internal/interfaces/http"
	"github.com/orris-inc/moderation/internal/shared/constants"
	"github.com/orris-inc/moderation/internal/shared/logger"
)

var (
	env        string
	configPath string
	format     string
	output     string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect the persisted moderation graph",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newDumpCommand())
	return cmd
}

func newDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the current snapshot",
		Long: `Load the moderation graph from the configured snapshot store and SQL
repositories and print it. Demo data is never seeded and nothing is written back.`,
		RunE: runDump,
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// Logs go to stderr so stdout stays parseable.
	cfg.Logger.OutputPath = "stderr"
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.NewLogger().With("component", "snapshot.dump")

	if cfg.NeedsDatabase() {
		if err := database.Init(&cfg.Database); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.Close()
	}

	cfg.Moderation.SeedDemoData = false
	cfg.Snapshot.FlushInterval = 0
	container, err := httpRouter.NewContainer(database.Get(), cfg, log)
	if err != nil {
		return err
	}
	defer container.Close()

	payload, err := container.Service().Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}

	data, err := Encode(payload, format)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}
	_, err = w.Write(data)
	return err
}

// Encode renders a payload as indented JSON or YAML.
func Encode(payload domain.Payload, format string) ([]byte, error) {
	switch format {
	case "json", "":
		data, err := sonic.ConfigStd.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode snapshot as json: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any(payload)); err != nil {
			return nil, fmt.Errorf("failed to encode snapshot as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}
}
