package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"idlc/internal/driver"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the summary cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openCache(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Drop every cached summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openCache(cmd)
			if err != nil {
				return err
			}
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clean cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s\n", cache.Dir())
			return nil
		},
	})
	return cmd
}

// openCache opens the cache named by the manifest, if any, without
// requiring inputs.
func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	s, err := loadManifestSettings(cmd)
	if err != nil {
		return nil, err
	}
	return driver.OpenDiskCache("idlc", s.cacheDir)
}
