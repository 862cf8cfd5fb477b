package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

// Default hand-tracking module artifacts searched for when no flags are
// given.
const (
	handModuleName = "hand_tracking.so"
	handGraphName  = "hand_tracking_desktop_live.pbtxt"
)

var handOpts Options

var handCmd = &cobra.Command{
	Use:   "hand",
	Short: "Run the hand-tracking camera demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(handOpts, store.ModeHand, "Mudra - Hand Tracking")
	},
}

func init() {
	handCmd.Flags().StringVarP(&handOpts.ModulePath, "module", "m", "", "Path to the hand-tracking module")
	handCmd.Flags().StringVarP(&handOpts.GraphPath, "graph", "g", "", "Path to the pipeline graph description")
	handCmd.Flags().IntVarP(&handOpts.CameraID, "camera", "c", 0, "Camera device ID")
	handCmd.Flags().BoolVar(&handOpts.Headless, "headless", false, "Run without a preview window, controlled from the system tray")
	handCmd.Flags().BoolVar(&handOpts.NoStore, "no-store", false, "Skip session recording")

	rootCmd.AddCommand(handCmd)
}

// runDemo runs the camera demo for either tracking mode.
func runDemo(opts Options, mode store.Mode, title string) error {
	config := app.Config{
		Mode:     mode,
		CameraID: opts.CameraID,
	}

	if mode == store.ModeHolistic {
		config.ModulePath = resolveModule(opts.ModulePath, holisticModuleName)
		config.GraphPath = resolveGraph(opts.GraphPath, holisticGraphName)
		config.Flags = holisticFlags
	} else {
		config.ModulePath = resolveModule(opts.ModulePath, handModuleName)
		config.GraphPath = resolveGraph(opts.GraphPath, handGraphName)
	}

	if !opts.NoStore {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		config.Store = st
	}

	application := app.New(config)
	if err := application.Start(); err != nil {
		return err
	}
	defer application.Stop()

	if opts.Headless {
		runHeadless(application)
		return nil
	}
	runWindowed(application, title)
	return nil
}

// runWindowed drives the demo loop with a preview window on the calling
// goroutine. Any key press exits.
func runWindowed(application *app.App, title string) {
	window := gocv.NewWindow(title)
	defer window.Close()

	for {
		mat, err := application.ProcessFrame()
		if err != nil {
			log.Printf("Error reading frame: %v", err)
			return
		}

		window.IMShow(*mat)
		mat.Close()

		if window.WaitKey(1) >= 0 {
			return
		}
	}
}

// runHeadless runs the demo loop in the background with a system tray
// toggle. The tray owns the main goroutine until quit.
func runHeadless(application *app.App) {
	stop := make(chan struct{})
	tr := tray.New()

	tr.OnToggle(application.SetEnabled)
	tr.OnQuit(func() {
		close(stop)
	})
	application.SetGestureNotify(tr.SetLastResult)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		tr.Quit()
	}()

	go application.Run(stop)
	tr.Run()
}
