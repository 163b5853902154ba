package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/minheap"
)

var (
	heapCount    int
	heapCapacity int
	heapAlloc    string
	heapSeed     int64
)

func init() {
	cmd := newHeapCmd()
	cmd.Flags().IntVar(&heapCount, "count", 1000000, "Number of elements to push")
	cmd.Flags().IntVar(&heapCapacity, "capacity", 0, "Pre-size the buffer (0 grows from empty)")
	cmd.Flags().StringVar(&heapAlloc, "alloc", "default", "Allocator: default, arena:<size>, limit:<size>")
	cmd.Flags().Int64Var(&heapSeed, "seed", 42, "Random seed")
	rootCmd.AddCommand(cmd)
}

func newHeapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heap",
		Short: "Push random elements through a min-heap and verify drain order",
		Long: `The heap command pushes random 64-bit integers into a min-heap, then
pops them all and verifies the drain comes out sorted. It reports throughput
for both phases and the allocator traffic behind the buffer growth.

Example:
  memstress heap --count 5000000
  memstress heap --alloc arena:64M
  memstress heap --alloc limit:1M --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeap()
		},
	}
	return cmd
}

type HeapReport struct {
	Elements     int
	Capacity     int
	PushSeconds  float64
	PopSeconds   float64
	PushPerSec   int64
	PopPerSec    int64
	SlotBytes    int
	AllocSummary mem.AllocStats
}

func runHeap() (err error) {
	// Growth past an exhausted budget is fatal by contract; surface it as a
	// command error instead of a crash.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("heap workload aborted: %v", r)
		}
	}()

	counting, cleanup, err := buildAllocator(heapAlloc)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	printVerbose("Pushing %s random int64 elements (allocator: %s)\n",
		formatNumber(int64(heapCount)), heapAlloc)

	opts := []minheap.Option{minheap.WithAllocator(counting)}
	if heapCapacity > 0 {
		opts = append(opts, minheap.WithCapacity(heapCapacity))
	}
	h := minheap.NewOrdered[int64](opts...)
	rng := rand.New(rand.NewSource(heapSeed))

	start := time.Now()
	for i := 0; i < heapCount; i++ {
		h.Push(rng.Int63())
	}
	pushDur := time.Since(start)

	report := HeapReport{
		Elements:    h.Len(),
		Capacity:    h.Cap(),
		PushSeconds: pushDur.Seconds(),
		SlotBytes:   mem.SizeOf[int64](),
	}
	if pushDur > 0 {
		report.PushPerSec = int64(float64(heapCount) / pushDur.Seconds())
	}

	printVerbose("Draining and checking order\n")

	start = time.Now()
	prev := int64(-1 << 63)
	for !h.Empty() {
		v := h.Pop()
		if v < prev {
			return fmt.Errorf("drain out of order: %d after %d", v, prev)
		}
		prev = v
	}
	popDur := time.Since(start)

	report.PopSeconds = popDur.Seconds()
	if popDur > 0 {
		report.PopPerSec = int64(float64(heapCount) / popDur.Seconds())
	}
	report.AllocSummary = counting.Stats()

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nHeap Stress: %s elements\n\n", formatNumber(int64(heapCount)))
	printInfo("Throughput:\n")
	printInfo("  Push: %s ops/sec (%.2fs)\n", formatNumber(report.PushPerSec), report.PushSeconds)
	printInfo("  Pop: %s ops/sec (%.2fs)\n", formatNumber(report.PopPerSec), report.PopSeconds)
	printInfo("  Drain order: verified\n\n")
	printInfo("Buffer:\n")
	printInfo("  Final capacity: %s slots (%s)\n",
		formatNumber(int64(report.Capacity)),
		formatBytes(int64(report.Capacity*report.SlotBytes)))
	printInfo("\n")
	printAllocStats(report.AllocSummary)

	return nil
}
