// ABOUTME: This file is the stewardctl entry point and root command
// ABOUTME: It wires configuration, logging, and the API client services

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TeBabaEvent/eventclient/config"
	"github.com/TeBabaEvent/eventclient/driver"
	"github.com/TeBabaEvent/eventclient/repository"
	"github.com/TeBabaEvent/eventclient/service"
	"github.com/TeBabaEvent/eventclient/utils"
)

// version is set at build time via ldflags
var version = "dev"

var (
	verbose bool
	baseURL string

	cfg    *config.Config
	logger *slog.Logger

	sessionSvc  *service.SessionService
	catalogSvc  *service.CatalogService
	adminSvc    *service.AdminService
	checkoutSvc *service.CheckoutService
	scannerSvc  *service.ScannerService
	uploadSvc   *service.UploadService
	metrics     *utils.ClientMetrics
)

var rootCmd = &cobra.Command{
	Use:   "stewardctl",
	Short: "Baba Event steward and admin CLI",
	Long: `stewardctl talks to the Baba Event ticketing backend: browse the
catalog, validate tickets at the door, follow order payments, and manage
admin data.

Example usage:
  stewardctl login                     # Sign in with email and password
  stewardctl events list               # List upcoming events
  stewardctl scan validate <qr-data>   # Validate a scanned ticket
  stewardctl orders status <number>    # Check an order, --wait to poll`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&baseURL, "api-url", "", "ticketing API origin (default from EVENT_API_BASE_URL)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

// initApp loads configuration and wires every service behind one shared
// API client, so the session cookie established by login is visible to all
// commands within a run.
func initApp() error {
	var err error

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err = config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if url := viper.GetString("api.base_url"); url != "" {
		cfg.API.BaseURL = url
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	metrics = utils.NewClientMetrics()
	client, err := driver.NewAPIClient(cfg.API.BaseURL, cfg.API.RequestTimeout, logger, metrics)
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}

	// Durable state wants a writable directory; when the probe fails the
	// run degrades to in-memory state instead of aborting.
	stateCap := utils.NewCapability(func() (repository.ClientStateRepository, error) {
		repo, err := repository.NewFileStateRepository(cfg.Auth.StateFilePath, logger)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}, repository.ClientStateRepository(repository.NewInMemoryStateRepository()))
	stateRepo := stateCap.Get()
	if !stateCap.Available() {
		logger.Warn("state file is not writable, login state will not survive this run",
			"path", cfg.Auth.StateFilePath)
	}

	notifier := utils.NewNotificationHub(logger)
	notifier.SetSink(terminalSink{})

	sessionSvc = service.NewSessionService(client, stateRepo, cfg, logger, metrics)
	catalogSvc = service.NewCatalogService(client, cfg, logger, metrics)
	adminSvc = service.NewAdminService(client, cfg, logger, metrics)
	checkoutSvc = service.NewCheckoutService(client, cfg, notifier, logger)
	scannerSvc = service.NewScannerService(client, sessionSvc, cfg, logger)
	uploadSvc = service.NewUploadService(client, cfg, logger)

	logger.Debug("configuration loaded",
		"base_url", cfg.API.BaseURL,
		"public_ttl", cfg.Cache.PublicTTL,
		"state_file", cfg.Auth.StateFilePath,
	)
	return nil
}
