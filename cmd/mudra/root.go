// Command mudra is a demo harness for prebuilt hand/holistic-tracking
// modules: it loads a module at runtime, feeds it camera frames, and
// renders the returned keypoints and gesture classifications.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/binding"
	"github.com/ayusman/mudra/internal/store"
)

// Version is the application version.
const Version = "0.1.0"

// Options holds the flags shared by the tracking commands.
type Options struct {
	ModulePath string
	GraphPath  string
	CameraID   int
	Headless   bool
	NoStore    bool
}

var rootCmd = &cobra.Command{
	Use:     "mudra",
	Short:   "Hand and holistic tracking demo harness",
	Long:    "Mudra loads a prebuilt tracking module at runtime, feeds it camera frames,\nand renders the keypoints and gesture classifications it reports.",
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// dataDir returns ~/.mudra, creating it if needed.
func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".mudra")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// openStore opens the session database, honoring the MUDRA_DB environment
// variable when set.
func openStore() (*store.Store, error) {
	dbPath := os.Getenv("MUDRA_DB")
	if dbPath == "" {
		dir, err := dataDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, "mudra.db")
	}
	return store.New(dbPath)
}

// resolveModule returns the module path from flags, or searches the usual
// locations for the named module file. An empty result makes the app fall
// back to the built-in mock module.
func resolveModule(flagValue, name string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := binding.FindModule(name); path != "" {
		return path
	}
	log.Printf("Tracking module %s not found in search paths", name)
	return ""
}

// resolveGraph returns the graph path from flags, or searches for the
// named pipeline graph file.
func resolveGraph(flagValue, name string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := binding.FindGraph(name); path != "" {
		return path
	}
	return ""
}
