// Package cmd provides the command-line interface of cachesim.
package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cachesim",
	Short: "cachesim replays memory traces through a simulated cache.",
	Long: `cachesim replays a trace of instruction and data accesses ` +
		`through a simulated cache and reports how many of them hit. ` +
		`Settings can also be provided through a .env file.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		loadEnv(".env")
	},
}

func loadEnv(path string) {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load %s: %v", path, err)
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
