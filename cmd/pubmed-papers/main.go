// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-papers CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-papers/internal/fetch"
	"github.com/pdiddy/pubmed-papers/internal/logging"
	"github.com/pdiddy/pubmed-papers/internal/pipeline"
	"github.com/pdiddy/pubmed-papers/internal/search"
	"github.com/pdiddy/pubmed-papers/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd searches PubMed for its single positional argument.
var rootCmd = &cobra.Command{
	Use:   "pubmed-papers <query>",
	Short: "Fetch PubMed papers matching a query",
	Long: `pubmed-papers searches PubMed for a query, fetches the abstract of every
matching record, and extracts the title, author block, publication date,
DOI, PubMed ID, and corresponding author email.

Results are written to a delimited file with --file (tab-separated for .tsv),
or printed one record per line.

NCBI credentials are read from --api-key/--email, the PUBMED_PAPERS_NCBI_API_KEY
and NCBI_API_KEY environment variables (a .env file is loaded first), the
config file, or .secrets/ncbi-api-key and .secrets/ncbi-email.`,
	Args:          cobra.ExactArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runQuery,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-papers.yaml or ~/.config/pubmed-papers/pubmed-papers.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory holding ncbi-api-key and ncbi-email files")

	flags := rootCmd.Flags()
	flags.BoolP("debug", "d", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "log errors only")
	flags.StringP("file", "f", "", "write results to this delimited file instead of the console")
	flags.String("format", "text", "console format when --file is not set: text, json, or yaml")
	flags.String("delimiter", "", `field delimiter for --file (default: tab for .tsv, "," otherwise)`)
	flags.Int("max-results", defaultMaxResults, "maximum number of PubMed IDs returned by the search")
	flags.String("base-url", "", "E-utilities base URL")
	flags.Duration("timeout", defaultTimeout, "HTTP request timeout")
	flags.String("api-key", "", "NCBI API key")
	flags.String("email", "", "contact email sent to NCBI")

	bindFlags(rootCmd)
}

func initConfig() {
	// .env only fills variables that are not already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: could not load .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-papers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-papers"))
		}
	}

	viper.SetEnvPrefix("PUBMED_PAPERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return fmt.Errorf("query is empty: provide search terms")
	}

	verbosity, err := verbosityFromFlags(cmd)
	if err != nil {
		return err
	}
	log := logging.New(verbosity, cmd.ErrOrStderr())
	log.Debug("debug logging is enabled")

	loaded, err := secrets.Load(viper.GetString(keySecretsDir), log)
	if err != nil {
		return err
	}
	if len(loaded) > 0 {
		keys := loaded.Keys()
		sort.Strings(keys)
		log.Debugf("loaded secrets: %v", keys)
	}

	cfg := eutilsConfig(loaded)
	if cfg.APIKey == "" {
		log.Debug("no NCBI API key configured; requests use the anonymous rate limit")
	}
	outCfg, err := outputConfig(cmd)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	p := &pipeline.Pipeline{
		Searcher: &search.PubMed{Client: client, Config: cfg, Log: log},
		Fetcher:  &fetch.PubMed{Client: client, Config: cfg, Log: log},
		Log:      log,
	}

	_, err = p.Run(cmd.Context(), query, outCfg, cmd.OutOrStdout())
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logging.New(logging.Normal, os.Stderr).WithError(err).Error("error fetching papers")
		os.Exit(1)
	}
}
