package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/introspect"
	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/robinmap"
)

var (
	mapCount       int
	mapKeySpace    int64
	mapReadRatio   int
	mapDeleteRatio int
	mapAlloc       string
	mapSeed        int64
	mapDump        bool
)

func init() {
	cmd := newMapCmd()
	cmd.Flags().IntVar(&mapCount, "count", 1000000, "Number of operations to run")
	cmd.Flags().Int64Var(&mapKeySpace, "keyspace", 1<<18, "Number of distinct keys to draw from")
	cmd.Flags().IntVar(&mapReadRatio, "read-ratio", 15, "Percentage of operations that are gets")
	cmd.Flags().IntVar(&mapDeleteRatio, "delete-ratio", 25, "Percentage of operations that are deletes")
	cmd.Flags().StringVar(&mapAlloc, "alloc", "default", "Allocator: default, arena:<size>, limit:<size>")
	cmd.Flags().Int64Var(&mapSeed, "seed", 42, "Random seed")
	cmd.Flags().BoolVar(&mapDump, "dump", false, "Dump the final table layout (use small --keyspace)")
	rootCmd.AddCommand(cmd)
}

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Churn a Robin Hood map and report probe distances",
		Long: `The map command runs a mixed put/get/delete workload against a Robin
Hood map, cross-checking every result against Go's built-in map. Afterwards it
verifies the full contents and reports the probe-distance distribution, the
figure that tells you how well the hash is spreading entries.

Example:
  memstress map --count 2000000
  memstress map --keyspace 1000 --count 100000
  memstress map --alloc arena:128M --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap()
		},
	}
	return cmd
}

type MapReport struct {
	Entries          int
	Capacity         int
	Usable           int
	LoadFactor       float64
	MaxDisplacement  int
	MeanDisplacement float64
	Puts             int
	Gets             int
	Deletes          int
	OpsPerSec        int64
	Seconds          float64
	Histogram        []int
	AllocSummary     mem.AllocStats
}

func runMap() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("map workload aborted: %v", r)
		}
	}()

	if mapReadRatio < 0 || mapDeleteRatio < 0 || mapReadRatio+mapDeleteRatio > 100 {
		return fmt.Errorf("read-ratio %d and delete-ratio %d must be non-negative and sum to at most 100",
			mapReadRatio, mapDeleteRatio)
	}

	counting, cleanup, err := buildAllocator(mapAlloc)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	printVerbose("Running %s mixed operations over %s keys (allocator: %s)\n",
		formatNumber(int64(mapCount)), formatNumber(mapKeySpace), mapAlloc)

	m := robinmap.New[uint64, uint64](robinmap.WithAllocator(counting))
	reference := make(map[uint64]uint64)
	rng := rand.New(rand.NewSource(mapSeed))

	report := MapReport{}
	start := time.Now()
	for i := 0; i < mapCount; i++ {
		k := uint64(rng.Int63n(mapKeySpace))
		switch op := rng.Intn(100); {
		case op < mapReadRatio:
			got, ok := m.Get(k)
			want, wantOK := reference[k]
			if ok != wantOK || (ok && got != want) {
				return fmt.Errorf("operation %d: get(%d) = (%d, %v), want (%d, %v)", i, k, got, ok, want, wantOK)
			}
			report.Gets++
		case op < mapReadRatio+mapDeleteRatio:
			got := m.Delete(k)
			if _, want := reference[k]; got != want {
				return fmt.Errorf("operation %d: delete(%d) = %v, reference says %v", i, k, got, want)
			}
			delete(reference, k)
			report.Deletes++
		default:
			v := uint64(i)
			m.Put(k, v)
			reference[k] = v
			report.Puts++
		}
	}
	dur := time.Since(start)

	printVerbose("Verifying %s surviving entries\n", formatNumber(int64(len(reference))))

	if m.Len() != len(reference) {
		return fmt.Errorf("length %d diverged from reference %d", m.Len(), len(reference))
	}
	for k, want := range reference {
		got, ok := m.Get(k)
		if !ok || got != want {
			return fmt.Errorf("survivor %d: got (%d, %v), want %d", k, got, ok, want)
		}
	}

	stats := m.Stats()
	report.Entries = stats.Length
	report.Capacity = stats.Capacity
	report.Usable = stats.Usable
	report.LoadFactor = stats.LoadFactor
	report.MaxDisplacement = stats.MaxDisplacement
	report.MeanDisplacement = stats.MeanDisplacement
	report.Seconds = dur.Seconds()
	if dur > 0 {
		report.OpsPerSec = int64(float64(mapCount) / dur.Seconds())
	}
	report.Histogram = displacementHistogram(m)
	report.AllocSummary = counting.Stats()

	if mapDump {
		if err := introspect.Dump(os.Stdout, m); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nMap Stress: %s operations\n\n", formatNumber(int64(mapCount)))
	printInfo("Workload:\n")
	printInfo("  Puts: %s\n", formatNumber(int64(report.Puts)))
	printInfo("  Gets: %s\n", formatNumber(int64(report.Gets)))
	printInfo("  Deletes: %s\n", formatNumber(int64(report.Deletes)))
	printInfo("  Throughput: %s ops/sec (%.2fs)\n", formatNumber(report.OpsPerSec), report.Seconds)
	printInfo("  Contents: verified against reference\n\n")

	printInfo("Table:\n")
	printInfo("  Entries: %s\n", formatNumber(int64(report.Entries)))
	printInfo("  Capacity: %s slots\n", formatNumber(int64(report.Capacity)))
	printInfo("  Load factor: %.3f\n", report.LoadFactor)
	printInfo("  Probe distance: mean %.2f, max %d\n\n", report.MeanDisplacement, report.MaxDisplacement)

	if report.Entries > 0 && len(report.Histogram) > 0 {
		printInfo("Probe Distances:\n")
		shown := len(report.Histogram)
		if shown > 16 {
			shown = 16
		}
		for d := 0; d < shown; d++ {
			percentage := float64(report.Histogram[d]) * 100.0 / float64(report.Entries)
			printInfo("  %d: %s (%.1f%%)\n", d, formatNumber(int64(report.Histogram[d])), percentage)
		}
		if len(report.Histogram) > shown {
			printInfo("  ... (%d more buckets)\n", len(report.Histogram)-shown)
		}
		printInfo("\n")
	}

	printAllocStats(report.AllocSummary)
	return nil
}

// displacementHistogram rebuilds per-entry probe distances from the map's
// introspection snapshot. Index d holds the number of entries sitting d
// slots past their ideal position.
func displacementHistogram(m *robinmap.Map[uint64, uint64]) []int {
	stats := m.Stats()
	if stats.Capacity == 0 {
		return nil
	}

	var data []robinmap.Slot[uint64, uint64]
	for _, f := range m.Fields() {
		if f.Name == "data" {
			data = f.Value.([]robinmap.Slot[uint64, uint64])
		}
	}

	hist := make([]int, stats.MaxDisplacement+1)
	for i, s := range data {
		if s.Hash == 0 {
			continue
		}
		ideal := int(s.Hash >> stats.Shift)
		d := i - ideal
		if d < 0 {
			d += len(data)
		}
		hist[d]++
	}
	return hist
}
