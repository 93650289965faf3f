package commands

import (
	"encoding/json"
	"os"

	"supplypulse/internal/analytics"
	"supplypulse/internal/api"
	"supplypulse/internal/config"
	"supplypulse/internal/logging"
	"supplypulse/internal/pipeline"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	store *pipeline.Store
)

var rootCmd = &cobra.Command{
	Use:   "supplypulse",
	Short: "Supplypulse serves cleaned supply-chain shipment analytics",
	Long: `A data-cleaning and aggregation engine for shipment delivery records.
It loads a delivery history export once, cleans and enriches it, and serves
headline metrics and aggregate views (country, shipment mode, product, trends)
as JSON for a dashboard frontend.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		store = pipeline.NewStore(cfg.DatasetPath)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("dataset", cfg.DatasetPath).
			Msg("Supplypulse starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Warm the cache up front so schema faults surface at startup,
		// not on the first dashboard request.
		if _, err := store.Dataset(); err != nil {
			return err
		}
		server := api.NewServer(store, cfg.AllowedOrigin, cfg.ProductLimit)
		return server.ListenAndServe(cfg.ListenAddr)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the headline metrics as JSON and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := store.Dataset()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analytics.Overview(ds.Shipments))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(summaryCmd)
}
