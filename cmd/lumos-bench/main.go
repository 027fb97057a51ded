// Command lumos-bench runs micro-benchmarks of the reactive engine:
// fan-out change propagation, deep-watcher traversal, and lazy computed
// chains.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumos-ui/lumos/pkg/reactive"
	"github.com/lumos-ui/lumos/pkg/scheduler"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

var (
	flagWatchers   int
	flagDepth      int
	flagIterations int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumos-bench",
		Short: "Benchmark the Lumos reactive engine",
		Long: `lumos-bench exercises the dependency-tracking engine under three
workloads:

  propagate   one value fanned out to many watchers through a batched flush
  deep        a deep watcher re-traversing a nested state tree per change
  lazy        a chain of lazy computed watchers invalidated and re-read`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().IntVar(&flagWatchers, "watchers", 1000, "number of watchers")
	rootCmd.PersistentFlags().IntVar(&flagDepth, "depth", 32, "nesting depth / chain length")
	rootCmd.PersistentFlags().IntVar(&flagIterations, "iterations", 1000, "mutation iterations")

	rootCmd.AddCommand(propagateCmd(), deepCmd(), lazyCmd(), versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lumos-bench %s (%s)\n", version, commit)
		},
	}
}

func propagateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "propagate",
		Short: "Fan one mutation out to many watchers via the scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			queue := scheduler.New()
			queue.Register()
			defer reactive.SetScheduler(nil)

			scope := reactive.NewScope(nil)
			defer scope.Dispose()

			state := reactive.NewMapping(map[string]any{"value": 0})
			scope.BindState(state)

			for i := 0; i < flagWatchers; i++ {
				if _, err := reactive.NewWatcher(scope, "value", func(newVal, oldVal any) {}, nil); err != nil {
					return err
				}
			}

			report(cmd, "propagate", flagIterations, func(i int) {
				state.Set("value", i+1)
				queue.Flush()
			})
			return nil
		},
	}
}

func deepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deep",
		Short: "Re-traverse a nested tree with a deep watcher per change",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := reactive.NewScope(nil)
			defer scope.Dispose()

			leaf := reactive.NewMapping(map[string]any{"value": 0})
			root := leaf
			for i := 0; i < flagDepth; i++ {
				root = reactive.NewMapping(map[string]any{"child": root})
			}
			state := reactive.NewMapping(map[string]any{"tree": root})
			scope.BindState(state)

			_, err := reactive.NewWatcher(scope,
				func() any { return state.Get("tree") },
				func(newVal, oldVal any) {},
				&reactive.WatcherOptions{Deep: true})
			if err != nil {
				return err
			}

			report(cmd, "deep", flagIterations, func(i int) {
				leaf.Set("value", i+1)
			})
			return nil
		},
	}
}

func lazyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lazy",
		Short: "Invalidate and re-read a chain of lazy computed watchers",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := reactive.NewScope(nil)
			defer scope.Dispose()

			state := reactive.NewMapping(map[string]any{"base": 0})
			scope.BindState(state)

			read := func() any { return state.Get("base") }
			for i := 0; i < flagDepth; i++ {
				prev := read
				w, err := reactive.NewWatcher(scope, func() any {
					v, _ := prev().(int)
					return v + 1
				}, nil, &reactive.WatcherOptions{Lazy: true})
				if err != nil {
					return err
				}
				read = func() any {
					if w.Dirty() {
						w.Evaluate()
					}
					w.Depend()
					return w.Value()
				}
			}

			top := read
			report(cmd, "lazy", flagIterations, func(i int) {
				state.Set("base", i+1)
				_ = top()
			})
			return nil
		},
	}
}

// report times fn over n iterations and prints the per-op cost.
func report(cmd *cobra.Command, name string, n int, fn func(i int)) {
	start := time.Now()
	for i := 0; i < n; i++ {
		fn(i)
	}
	elapsed := time.Since(start)
	cmd.Printf("%-10s %d iterations in %v (%v/op)\n",
		name, n, elapsed.Round(time.Microsecond), (elapsed / time.Duration(n)).Round(time.Nanosecond))
}
