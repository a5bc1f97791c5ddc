package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rushteam/tagmine/config"
	"github.com/rushteam/tagmine/pkg/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	version   = "dev"

	// params 在 PersistentPreRunE 中由配置文件与环境变量加载，子命令的 flag 再覆盖
	params config.Params

	rootCmd = &cobra.Command{
		Use:   "tagmine",
		Short: "Mine hashtag co-occurrence patterns and recommend related hashtags",
		Long: `tagmine reads posts (CSV with a "hashtags" column, or JSON records),
mines frequent hashtag itemsets with Apriori, derives association rules and
recommends hashtags that tend to appear with a query.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "params file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(itemsetsCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(recommendCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	logging.Init(logging.Config{Level: logLevel, Format: logFormat, Output: os.Stderr})

	p, err := config.LoadParams(cfgFile)
	if err != nil {
		return fmt.Errorf("load params: %w", err)
	}
	params = p
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tagmine", version)
		},
	}
}
