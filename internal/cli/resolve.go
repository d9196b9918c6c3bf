package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dcrt-lumc/exonviz/pkg/cache"
	"github.com/dcrt-lumc/exonviz/pkg/mutalyzer"
)

// cacheTTL is how long Mutalyzer responses stay fresh. Transcript
// annotations change rarely; a day keeps repeated runs off the network.
const cacheTTL = 24 * time.Hour

// cacheFlags holds the cache-selection flags shared by all commands that
// talk to Mutalyzer.
type cacheFlags struct {
	noCache  bool
	cacheDir string
	redisURL string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable response caching")
	cmd.Flags().StringVar(&f.cacheDir, "cache-dir", "", "cache directory (default ~/.cache/exonviz)")
	cmd.Flags().StringVar(&f.redisURL, "redis", "", "redis cache URL (e.g. redis://localhost:6379/0)")
}

// open picks the cache backend: redis when a URL is given, otherwise the
// file cache, or the null cache with --no-cache.
func (f *cacheFlags) open() (cache.Cache, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil
	case f.redisURL != "":
		return cache.NewRedisCache(f.redisURL)
	default:
		return cache.NewFileCache(f.cacheDir)
	}
}

// normalizeInput rewrites user input into a full HGVS description:
// gene symbols are substituted with their MANE transcript, and bare
// versioned transcripts gain the no-change ":c.=" suffix.
func normalizeInput(input string) (string, error) {
	return mutalyzer.CheckInput(mutalyzer.Substitute(input))
}
