package cmd

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/theirongolddev/debtpath/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Strategy:       %s\n", cfg.General.Strategy)
	fmt.Printf("    Max months:     %d\n", cfg.General.MaxMonths)
	if cfg.General.MonthlyBudget != nil {
		fmt.Printf("    Monthly budget: $%s\n", cfg.General.MonthlyBudget.StringFixed(2))
	} else {
		fmt.Println("    Monthly budget: not set (minimums + 50%)")
	}
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Driver: %s\n", cfg.Store.Driver)
	fmt.Printf("    DSN:    %s\n", maskDSN(config.GetStoreDSN(cfg)))
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:   %s\n", cfg.Server.Addr)
	if cfg.Server.RedisAddr != "" {
		fmt.Printf("    Redis:     %s (ttl %ds)\n", cfg.Server.RedisAddr, cfg.Server.CacheTTLSec)
	} else {
		fmt.Println("    Redis:     not configured")
	}
	fmt.Printf("    Log:       %s, %s\n", cfg.Server.LogLevel, cfg.Server.LogFormat)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	defs, err := config.ScenarioDefinitions(cfg)
	fmt.Println("  [Scenarios]")
	if err != nil {
		fmt.Printf("    invalid: %v\n", err)
	} else {
		if len(cfg.Scenarios) == 0 {
			fmt.Println("    (built-in)")
		}
		for _, d := range defs {
			fmt.Printf("    %-14s %s\n", d.Label, d.Budget)
		}
	}
	fmt.Println()

	fmt.Println("  Run `debtpath setup` to reconfigure.")
	return nil
}

var dsnPassword = regexp.MustCompile(`(password=)\S+`)

// maskDSN hides the password in URL and key=value style DSNs.
func maskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		return u.Redacted()
	}
	return dsnPassword.ReplaceAllString(dsn, "${1}****")
}
