package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/namecache"
)

var (
	cacheNames    int
	cacheRepeat   int
	cacheCapacity int
	cacheSeed     int64
)

func init() {
	cmd := newCacheCmd()
	cmd.Flags().IntVar(&cacheNames, "names", 10000, "Number of distinct names to generate")
	cmd.Flags().IntVar(&cacheRepeat, "repeat", 20, "Average folds per name")
	cmd.Flags().IntVar(&cacheCapacity, "capacity", 8192, "Cache capacity (0 disables caching)")
	cmd.Flags().Int64Var(&cacheSeed, "seed", 42, "Random seed")
	rootCmd.AddCommand(cmd)
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Fold a stream of mixed-case names through the name cache",
		Long: `The cache command generates a pool of mixed-case names and folds a
random stream drawn from it, reporting the hit rate and fold throughput. Use
--capacity 0 to measure the uncached folding cost for comparison.

Example:
  memstress cache --names 50000 --repeat 10
  memstress cache --capacity 0
  memstress cache --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCache()
		},
	}
	return cmd
}

type CacheReport struct {
	Names      int
	Folds      int
	Hits       uint64
	Misses     uint64
	HitRate    float64
	Entries    int
	Capacity   int
	FoldPerSec int64
	Seconds    float64
}

func runCache() error {
	if cacheNames <= 0 || cacheRepeat <= 0 {
		return fmt.Errorf("names %d and repeat %d must be positive", cacheNames, cacheRepeat)
	}

	namecache.SetCapacity(cacheCapacity)
	namecache.Reset()

	rng := rand.New(rand.NewSource(cacheSeed))
	names := make([][]byte, cacheNames)
	for i := range names {
		names[i] = randomName(rng)
	}

	folds := cacheNames * cacheRepeat
	printVerbose("Folding %s names drawn from a pool of %s (capacity %d)\n",
		formatNumber(int64(folds)), formatNumber(int64(cacheNames)), cacheCapacity)

	before := namecache.Stats()
	start := time.Now()
	for i := 0; i < folds; i++ {
		name := names[rng.Intn(len(names))]
		folded := namecache.Fold(name)
		if folded == "" {
			return fmt.Errorf("fold %d: empty result for %q", i, name)
		}
	}
	dur := time.Since(start)
	after := namecache.Stats()

	report := CacheReport{
		Names:    cacheNames,
		Folds:    folds,
		Hits:     after.Hits - before.Hits,
		Misses:   after.Misses - before.Misses,
		Entries:  after.Entries,
		Capacity: after.Capacity,
		Seconds:  dur.Seconds(),
	}
	if total := report.Hits + report.Misses; total > 0 {
		report.HitRate = float64(report.Hits) / float64(total)
	}
	if dur > 0 {
		report.FoldPerSec = int64(float64(folds) / dur.Seconds())
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nCache Stress: %s folds over %s names\n\n",
		formatNumber(int64(report.Folds)), formatNumber(int64(report.Names)))
	printInfo("Results:\n")
	printInfo("  Hits: %s\n", formatNumber(int64(report.Hits)))
	printInfo("  Misses: %s\n", formatNumber(int64(report.Misses)))
	printInfo("  Hit rate: %.1f%%\n", report.HitRate*100)
	printInfo("  Entries: %s of %s\n", formatNumber(int64(report.Entries)), formatNumber(int64(report.Capacity)))
	printInfo("  Throughput: %s folds/sec (%.2fs)\n", formatNumber(report.FoldPerSec), report.Seconds)

	return nil
}

// randomName builds a plausible mixed-case identifier, 4 to 24 letters with
// occasional separators.
func randomName(rng *rand.Rand) []byte {
	n := 4 + rng.Intn(21)
	name := make([]byte, n)
	for i := range name {
		switch rng.Intn(20) {
		case 0:
			name[i] = '-'
		case 1:
			name[i] = '_'
		default:
			c := byte('a' + rng.Intn(26))
			if rng.Intn(2) == 0 {
				c -= 'a' - 'A'
			}
			name[i] = c
		}
	}
	return name
}
