package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asadnaved9/safebrowse/internal/utils"
	"github.com/asadnaved9/safebrowse/pkg/webscan"
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Fetch a page and score its URL, title and visible text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetInt("age")
		eval, err := evaluatorFromFlags(cmd)
		if err != nil {
			return err
		}

		res, err := webscan.Fetch(args[0], nil)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", args[0], err)
		}
		utils.Log.Debug("fetched ", res.Length, " runes, title: ", res.Title)

		verdict := webscan.Evaluate(eval, res, age)
		if res.Title != "" {
			fmt.Println("Title:", res.Title)
		}
		return printVerdict(cmd, verdict)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().IntP("age", "a", 13, "Viewer age used to pick the risk threshold")
	scanCmd.Flags().Bool("json", false, "Print the verdict as JSON")
}
