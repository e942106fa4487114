// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the office2pdf CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// envFile is loaded into the environment before configuration is read.
const envFile = ".env"

// rootCmd is the base command for the office2pdf CLI.
var rootCmd = &cobra.Command{
	Use:   "office2pdf",
	Short: "Convert a folder of office documents to plain-text PDFs",
	Long: `office2pdf converts every document in an input folder (presentations,
word processing files, PDFs, plain text) into a simple text-only PDF in an
output folder. Pictures embedded in .pptx presentations can be saved next to
the PDFs. Every step is logged to the console and to an append-only log file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
		fmt.Fprintln(os.Stderr, "Loaded environment from", envFile)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./office2pdf.yaml or ~/.config/office2pdf/office2pdf.yaml)")
	pf.String("input", defaultInputDir, "folder holding the documents to convert")
	pf.String("output", defaultOutputDir, "folder receiving PDFs and extracted images")
	pf.String("log-file", defaultLogFile, "append-only run log")
	pf.String("history-db", defaultHistoryDB, "SQLite run history (empty disables it)")

	bindFlag("input_dir", pf.Lookup("input"))
	bindFlag("output_dir", pf.Lookup("output"))
	bindFlag("log_file", pf.Lookup("log-file"))
	bindFlag("history_db", pf.Lookup("history-db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("office2pdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "office2pdf"))
		}
	}

	viper.SetEnvPrefix("OFFICE2PDF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	// The first interrupt lets the current file finish; a second one kills
	// the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
