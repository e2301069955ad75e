package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/iwvelando/crunch-the-numbers/internal/calculate"
	"github.com/iwvelando/crunch-the-numbers/internal/config"
	"github.com/iwvelando/crunch-the-numbers/internal/server"
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/output"
	"github.com/iwvelando/crunch-the-numbers/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "crunch",
		Short:         "Financial calculators for loans, debt, savings, housing and salary",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCalcCmd(), newServeCmd(), newCalculatorsCmd(), newVersionCmd())
	return root
}

type calcOptions struct {
	configPath   string
	outputFormat string
	outPath      string
	logLevel     string
}

func newCalcCmd() *cobra.Command {
	var opts calcOptions
	cmd := &cobra.Command{
		Use:       "calc <calculator>",
		Short:     "Run one calculator against its section of a request file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to calculation request file")
	cmd.Flags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json, pdf")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func runCalc(stdout io.Writer, name string, opts calcOptions) error {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	if opts.outputFormat != "" {
		conf.Output.Format = opts.outputFormat
	}
	if opts.outPath != "" {
		conf.Output.File = opts.outPath
	}
	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}

	inputs, err := conf.Inputs(name)
	if err != nil {
		return err
	}

	result, err := calculate.NewEngine(logger).Run(name, inputs)
	if err != nil {
		return err
	}

	w := stdout
	if conf.Output.File != "" {
		file, err := os.Create(conf.Output.File)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", conf.Output.File, err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				logger.Warn("failed to close output file",
					zap.String("op", "main.runCalc"),
					zap.Error(cerr),
				)
			}
		}()
		w = file
	}

	if err := output.Render(w, conf.Output.Format, result.Report); err != nil {
		return err
	}
	if conf.Output.File != "" {
		logger.Info("report written",
			zap.String("op", "main.runCalc"),
			zap.String("calculator", name),
			zap.String("file", conf.Output.File),
		)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	var serverConfigPath, address, maxUploadSize, logLevel string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over an HTTP JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if err := cfg.Override(address, maxUploadSize); err != nil {
				return err
			}

			logger, err := initializeLogger(cfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	cmd.Flags().StringVar(&maxUploadSize, "max-upload-size", "", "request body limit override, e.g. 512K or 1M")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func serve(ctx context.Context, cfg *server.Config, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, cfg.NewStore(logger), cfg.UploadSizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.Bool("redis", cfg.Redis != nil),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down", zap.String("op", "main.serve"))
	return srv.Shutdown(shutdownCtx)
}

func newCalculatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calculators",
		Short: "List the available calculators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCatalog(cmd.OutOrStdout())
		},
	}
}

func writeCatalog(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSECTION\tDESCRIPTION")
	for _, info := range config.Catalog {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, info.Section, info.Description)
	}
	return tw.Flush()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
