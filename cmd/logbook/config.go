package main

import (
	"fmt"

	"github.com/mmcdole/logbook/internal/adapter"
	"github.com/mmcdole/logbook/internal/store"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := adapter.SaveConfig(cfg, cfgFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var cacheAll bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the lookup cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop cached lookup results for the configured server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cacheAll {
			if err := adapter.ClearCache(cfg.Lookup.CacheDir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Lookup cache removed")
			return nil
		}

		cache, err := store.OpenLookupCache(cfg.Lookup.CacheDir, cfg.Server.URL, cfg.Lookup.CacheTTL)
		if err != nil {
			return fmt.Errorf("failed to open lookup cache: %w", err)
		}
		defer cache.Close()
		if err := cache.Purge(); err != nil {
			return fmt.Errorf("failed to clear lookup cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Lookup cache cleared for %s\n", cfg.Server.URL)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	cacheClearCmd.Flags().BoolVar(&cacheAll, "all", false, "remove the cache for every server")
	cacheCmd.AddCommand(cacheClearCmd)
}
