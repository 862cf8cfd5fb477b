package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/binding"
	"github.com/ayusman/mudra/trackapi"
)

var (
	videoOpts Options
	videoPath string
	videoShow bool
)

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Run hand tracking over a video file",
	Long:  "Loads the hand-tracking module and hands it a whole video file; the module\ndrives its own read loop and reports results through the callbacks.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVideo(videoOpts, videoPath, videoShow)
	},
}

func init() {
	videoCmd.Flags().StringVarP(&videoPath, "input", "i", "", "Path to the video file")
	videoCmd.Flags().StringVarP(&videoOpts.ModulePath, "module", "m", "", "Path to the hand-tracking module")
	videoCmd.Flags().StringVarP(&videoOpts.GraphPath, "graph", "g", "", "Path to the pipeline graph description")
	videoCmd.Flags().BoolVar(&videoShow, "show", false, "Let the module display frames while processing")

	videoCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(videoCmd)
}

// runVideo drives the module lifecycle by hand: load, resolve, init,
// register printing callbacks, detect the video, release, unload.
func runVideo(opts Options, path string, show bool) error {
	modulePath := resolveModule(opts.ModulePath, handModuleName)

	var host binding.Host
	if modulePath == "" {
		mockHost := binding.NewMockHost()
		mockHost.Register("builtin:mock", binding.NewMockHandModule())
		host = mockHost
		modulePath = "builtin:mock"
		log.Println("No tracking module found, using built-in mock module")
	}

	tracker := binding.NewHandTracker(host)
	if err := tracker.Load(modulePath); err != nil {
		return err
	}
	defer tracker.Unload()

	if err := tracker.ResolveAll(); err != nil {
		return err
	}

	graphPath := resolveGraph(opts.GraphPath, handGraphName)
	if graphPath == "" {
		graphPath = "builtin:graph"
	}
	if err := tracker.Init(graphPath); err != nil {
		return err
	}
	defer func() {
		if err := tracker.Release(); err != nil {
			log.Printf("Error releasing module: %v", err)
		}
	}()

	err := tracker.OnLandmarks(func(frameIndex int, points []trackapi.Point) {
		fmt.Printf("frame %d: %d landmarks\n", frameIndex, len(points))
	})
	if err != nil {
		return err
	}

	err = tracker.OnGestures(func(frameIndex int, codes []trackapi.GestureCode) {
		for i, code := range codes {
			fmt.Printf("frame %d: hand %d: %s\n", frameIndex, i, code)
		}
	})
	if err != nil {
		return err
	}

	return tracker.DetectVideo(path, show)
}
