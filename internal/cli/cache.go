package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dcrt-lumc/exonviz/pkg/cache"
)

func newCacheCmd() *cobra.Command {
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the Mutalyzer response cache",
	}
	cmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default ~/.cache/exonviz)")

	info := &cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := openFileCache(cacheDir)
			if err != nil {
				return err
			}
			entries, size, err := cacheStats(fc.Dir())
			if err != nil {
				return err
			}
			fmt.Printf("directory: %s\n", fc.Dir())
			fmt.Printf("entries:   %d\n", entries)
			fmt.Printf("size:      %.1f KiB\n", float64(size)/1024)
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := openFileCache(cacheDir)
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return err
			}
			printSuccess(os.Stderr, "Cache cleared")
			return nil
		},
	}

	cmd.AddCommand(info)
	cmd.AddCommand(clear)
	return cmd
}

func openFileCache(dir string) (*cache.FileCache, error) {
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return c.(*cache.FileCache), nil
}

// cacheStats walks the cache directory counting entry files and bytes.
func cacheStats(dir string) (entries int, size int64, err error) {
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries++
		size += info.Size()
		return nil
	})
	return entries, size, err
}
