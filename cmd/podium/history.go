package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"podium/internal/export"
	"podium/internal/transcript"
)

var (
	historyLimit  int
	historyOutput string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived debates",
	RunE:  listHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the transcript of an archived debate",
	Args:  cobra.ExactArgs(1),
	RunE:  showHistory,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export an archived debate to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  exportHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum debates to list")
	historyExportCmd.Flags().StringVar(&historyOutput, "output", "", "Output path (.json or .md)")
	historyExportCmd.MarkFlagRequired("output")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
}

func listHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	debates, err := store.ListDebates(historyLimit)
	if err != nil {
		return err
	}
	if len(debates) == 0 {
		fmt.Println(dimStyle.Render("No archived debates."))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTOPIC\tPARTICIPANTS\tFORMAT\tTURNS\tDATE")
	for _, d := range debates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			d.ID, d.Topic, d.Participants, d.Format, d.Turns,
			d.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func showHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.GetRecord(args[0])
	if err != nil {
		return fmt.Errorf("debate %s: %w", args[0], err)
	}
	fmt.Println(transcript.Render(rec))
	return nil
}

func exportHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.GetRecord(args[0])
	if err != nil {
		return fmt.Errorf("debate %s: %w", args[0], err)
	}
	if err := export.WriteFile(rec, historyOutput); err != nil {
		return err
	}
	fmt.Println(dimStyle.Render("Wrote " + historyOutput))
	return nil
}
