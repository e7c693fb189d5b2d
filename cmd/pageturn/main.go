package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pageturn-app/pageturn/internal/catalog"
	"github.com/pageturn-app/pageturn/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pageturn",
	Short: "Manage and export a local EPUB library",
	Long: `pageturn maintains a local catalog of EPUB books and prepares their
content for paginated reading: each section is rewritten into a single
self-contained HTML document with every image, font and stylesheet
inlined.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

// openRepository opens the catalog configured for this invocation. The
// caller closes the returned store.
func openRepository() (*catalog.Store, *catalog.Repository, error) {
	store, err := catalog.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	return store, catalog.NewRepository(store), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.pageturn/config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
