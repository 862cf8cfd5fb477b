package main

import (
	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/trackapi"
)

// Default holistic-tracking module artifacts.
const (
	holisticModuleName = "holistic_tracking.so"
	holisticGraphName  = "holistic_tracking_cpu.pbtxt"
)

var (
	holisticOpts  Options
	holisticFlags trackapi.FeatureFlags
)

var holisticCmd = &cobra.Command{
	Use:   "holistic",
	Short: "Run the holistic-tracking camera demo (face + pose + hands)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(holisticOpts, store.ModeHolistic, "Mudra - Holistic Tracking")
	},
}

func init() {
	holisticCmd.Flags().StringVarP(&holisticOpts.ModulePath, "module", "m", "", "Path to the holistic-tracking module")
	holisticCmd.Flags().StringVarP(&holisticOpts.GraphPath, "graph", "g", "", "Path to the pipeline graph description")
	holisticCmd.Flags().IntVarP(&holisticOpts.CameraID, "camera", "c", 0, "Camera device ID")
	holisticCmd.Flags().BoolVar(&holisticOpts.Headless, "headless", false, "Run without a preview window, controlled from the system tray")
	holisticCmd.Flags().BoolVar(&holisticOpts.NoStore, "no-store", false, "Skip session recording")

	holisticCmd.Flags().BoolVar(&holisticFlags.Face, "face", true, "Enable face detection")
	holisticCmd.Flags().BoolVar(&holisticFlags.Pose, "pose", true, "Enable pose detection")
	holisticCmd.Flags().BoolVar(&holisticFlags.Hands, "hands", true, "Enable hand detection")
	holisticCmd.Flags().BoolVar(&holisticFlags.UpDown, "updown", true, "Enable arm raised/lowered classification")

	rootCmd.AddCommand(holisticCmd)
}
