package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/mem"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "memstress",
	Short: "Stress and inspect memkit containers",
	Long: `memstress runs churn workloads against memkit's heap, map, and name
cache, verifying their behavior along the way and reporting throughput,
probe-distance distributions, and allocator traffic. Workloads can run on the
Go heap, inside an arena, or under a byte budget.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// buildAllocator constructs the backing allocator named by spec: "default",
// "arena:<size>", or "limit:<size>". Every allocator is wrapped in a counter
// so workloads can report traffic. The returned cleanup may be nil.
func buildAllocator(spec string) (*mem.CountingAllocator, func() error, error) {
	name, arg, _ := strings.Cut(spec, ":")
	switch name {
	case "", "default":
		return mem.NewCounting(mem.Default), nil, nil
	case "arena":
		size, err := parseSize(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("arena size %q: %w", arg, err)
		}
		arena, err := mem.NewArena(size)
		if err != nil {
			return nil, nil, err
		}
		return mem.NewCounting(arena), arena.Close, nil
	case "limit":
		size, err := parseSize(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("limit budget %q: %w", arg, err)
		}
		return mem.NewCounting(mem.NewLimit(mem.Default, size)), nil, nil
	default:
		return nil, nil, fmt.Errorf(
			"unknown allocator %q (want default, arena:<size>, or limit:<size>)", spec)
	}
}

// parseSize parses a byte count with an optional K, M, or G suffix.
func parseSize(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing size")
	}
	mult := 1
	switch s[len(s)-1] {
	case 'k', 'K':
		mult = 1 << 10
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = 1 << 20
		s = s[:len(s)-1]
	case 'g', 'G':
		mult = 1 << 30
		s = s[:len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("size must be positive")
	}
	return n * mult, nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	// Add commas
	var result strings.Builder
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return result.String()
}

// printAllocStats renders an allocator traffic section.
func printAllocStats(stats mem.AllocStats) {
	printInfo("Allocator Traffic:\n")
	printInfo("  Allocations: %s\n", formatNumber(int64(stats.Allocs)))
	printInfo("  Frees: %s\n", formatNumber(int64(stats.Frees)))
	printInfo("  Live: %s\n", formatBytes(int64(stats.Live)))
	printInfo("  Peak: %s\n", formatBytes(int64(stats.Peak)))
}
