package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/monitoring"
	"github.com/sarchlab/cachesim/sim/id"
	"github.com/sarchlab/cachesim/sim/simulation"
)

const (
	defaultTracePath = "mem_trace.txt"

	traceEnv  = "CACHESIM_TRACE"
	recordEnv = "CACHESIM_RECORD"
)

type runOptions struct {
	size         string
	mapping      string
	organization string

	tracePath     string
	recordPath    string
	dumpStatePath string
	verbose       bool
	parallelID    bool

	monitor     bool
	monitorPort int
	openBrowser bool
}

var runCmd = &cobra.Command{
	Use:   "run <size> <dm|fa> <uc|sc>",
	Short: "Replay a trace through a cache.",
	Long: "`run <size> <dm|fa> <uc|sc>` simulates a cache of size bytes " +
		"that is either direct-mapped (dm) or fully associative (fa), and " +
		"either unified (uc) or split into instruction and data halves (sc).",
	Example: "  cachesim run 1024 dm uc --trace mem_trace.txt",
	Args:    cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		opts := parseRunOptions(cmd, args)

		monitor, err := runSimulation(opts, os.Stdout, os.Stderr)
		if err != nil {
			atexit.Fatalf("Error: %v", err)
		}

		if monitor != nil {
			waitForInterrupt()
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("trace", defaultTracePath,
		"The trace file to replay. Defaults to $"+traceEnv+" if set.")
	runCmd.Flags().String("record", "",
		"Record every access into <record>.sqlite3. "+
			"Defaults to $"+recordEnv+" if set.")
	runCmd.Flags().String("dump-state", "",
		"Write the final state of the cache as JSON into the given file.")
	runCmd.Flags().Bool("verbose", false, "Print every access to stderr.")
	runCmd.Flags().Bool("parallel-id", false,
		"Use globally unique IDs instead of sequential ones.")
	runCmd.Flags().Bool("monitor", false,
		"Serve the statistics over HTTP and keep serving after the run.")
	runCmd.Flags().Int("monitor-port", 0,
		"The port of the monitoring server. A random port is used if unset.")
	runCmd.Flags().Bool("open-browser", false,
		"Open the monitoring page in a browser.")
}

func parseRunOptions(cmd *cobra.Command, args []string) runOptions {
	flags := cmd.Flags()

	opts := runOptions{
		size:         args[0],
		mapping:      args[1],
		organization: args[2],
	}

	opts.tracePath, _ = flags.GetString("trace")
	opts.recordPath, _ = flags.GetString("record")
	opts.dumpStatePath, _ = flags.GetString("dump-state")
	opts.verbose, _ = flags.GetBool("verbose")
	opts.parallelID, _ = flags.GetBool("parallel-id")
	opts.monitor, _ = flags.GetBool("monitor")
	opts.monitorPort, _ = flags.GetInt("monitor-port")
	opts.openBrowser, _ = flags.GetBool("open-browser")

	if v, ok := os.LookupEnv(traceEnv); ok && !flags.Changed("trace") {
		opts.tracePath = v
	}

	if v, ok := os.LookupEnv(recordEnv); ok && !flags.Changed("record") {
		opts.recordPath = v
	}

	return opts
}

func buildCache(opts runOptions) (*cache.Comp, error) {
	size, err := cache.ParseTotalByteSize(opts.size)
	if err != nil {
		return nil, err
	}

	mapping, err := cache.ParseMapping(opts.mapping)
	if err != nil {
		return nil, err
	}

	organization, err := cache.ParseOrganization(opts.organization)
	if err != nil {
		return nil, err
	}

	return cache.MakeBuilder().
		WithTotalByteSize(size).
		WithMapping(mapping).
		WithOrganization(organization).
		Build("Cache")
}

// runSimulation replays the trace and writes the report to stdout. The
// monitor is returned if one was started.
func runSimulation(
	opts runOptions,
	stdout, stderr io.Writer,
) (*monitoring.Monitor, error) {
	c, err := buildCache(opts)
	if err != nil {
		return nil, err
	}

	idGenerator := id.NewIDGenerator()
	if opts.parallelID {
		idGenerator = id.NewParallelIDGenerator()
	}

	s := simulation.NewSimulation(idGenerator)
	s.RegisterComponent(c)

	if opts.verbose {
		c.AcceptHook(trace.NewAccessLogger(log.New(stderr, "", 0)))
	}

	var recorder *trace.DBRecorder
	if opts.recordPath != "" {
		dataRecorder, err := datarecording.New(opts.recordPath)
		if err != nil {
			return nil, err
		}
		defer dataRecorder.Close()

		recorder = trace.NewDBRecorder(dataRecorder, idGenerator, s.ID())
		c.AcceptHook(recorder)
	}

	var monitor *monitoring.Monitor
	if opts.monitor {
		monitor = startMonitor(opts, c)
	}

	src, err := trace.OpenFile(opts.tracePath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	err = trace.NewReplayer(src, c).Run()
	if err != nil {
		return nil, err
	}

	err = cache.WriteReport(stdout, c)
	if err != nil {
		return nil, err
	}

	if recorder != nil {
		recorder.RecordRun(c.Spec(), c.Statistics())
	}

	if opts.dumpStatePath != "" {
		err = s.Save(opts.dumpStatePath)
		if err != nil {
			return nil, fmt.Errorf("saving state: %w", err)
		}
	}

	if monitor != nil {
		monitor.Refresh()
	}

	return monitor, nil
}

func startMonitor(opts runOptions, c *cache.Comp) *monitoring.Monitor {
	monitor := monitoring.NewMonitor()
	if opts.monitorPort != 0 {
		monitor = monitor.WithPortNumber(opts.monitorPort)
	}

	monitor.RegisterComponent(c)
	url := monitor.StartServer()

	if opts.openBrowser {
		err := browser.OpenURL(url)
		if err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	}

	return monitor
}

func waitForInterrupt() {
	fmt.Fprintln(os.Stderr, "Run finished. Press Ctrl+C to stop monitoring.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
}
