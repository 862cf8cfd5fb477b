package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded demo sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSessions()
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions() error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.Sessions().List()
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tMODULE\tSTARTED\tFRAMES\tDETECTIONS")
	for _, sess := range sessions {
		detections, err := st.Detections().CountBySession(sess.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			sess.ID, sess.Mode, sess.ModulePath,
			sess.StartedAt.Format("2006-01-02 15:04:05"),
			sess.Frames, detections)
	}
	return w.Flush()
}
