package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meltwire/snowtype"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "snowtype [config.toml]",
	Short: "Generate typed Snowflake record definitions from table metadata",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to generation TOML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Resolve config path: positional arg takes precedence over --config flag
	cfgPath := configPath
	if len(args) > 0 {
		cfgPath = args[0]
	}
	if cfgPath == "" {
		return fmt.Errorf("config file required: snowtype <config.toml> or snowtype --config <config.toml>")
	}

	cfg, err := snowtype.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	start := time.Now()
	log.Printf("snowtype: generating Snowflake table definitions")
	log.Printf("config: package=%s output=%s databases=%d", cfg.Package, cfg.Output, len(cfg.Databases))

	conn, err := cfg.Connector()
	if err != nil {
		return err
	}

	regenerated, err := snowtype.NewGenerator(cfg, conn).Run(context.Background())
	if err != nil {
		return err
	}
	if !regenerated {
		log.Printf("config fingerprint unchanged, artifact left as is")
		return nil
	}
	log.Printf("generated %s in %s", cfg.Output, time.Since(start).Round(time.Millisecond))
	return nil
}
