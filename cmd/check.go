package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asadnaved9/safebrowse/pkg/risk"
)

// checkCmd scores content from the terminal without touching the API
// or the database. Useful for tuning rule tables.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Score content from the command line",
}

var checkTextCmd = &cobra.Command{
	Use:   "text <content>",
	Short: "Score a piece of text for a viewer age",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetInt("age")
		eval, err := evaluatorFromFlags(cmd)
		if err != nil {
			return err
		}
		return printVerdict(cmd, eval.ScoreText(strings.Join(args, " "), age))
	},
}

var checkURLCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Score a URL (age-independent)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eval, err := evaluatorFromFlags(cmd)
		if err != nil {
			return err
		}
		return printVerdict(cmd, eval.ScoreURL(args[0]))
	},
}

func evaluatorFromFlags(cmd *cobra.Command) (*risk.Evaluator, error) {
	rulesPath, _ := cmd.Flags().GetString("rules")
	table, err := risk.LoadTable(rulesPath)
	if err != nil {
		return nil, err
	}
	return risk.New(table), nil
}

func printVerdict(cmd *cobra.Command, v risk.Verdict) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	status := "SAFE"
	if !v.Safe {
		status = "BLOCKED"
	}
	fmt.Printf("%s (confidence %.2f)\n", status, v.Confidence)
	for _, reason := range v.Reasons {
		fmt.Println("  -", reason)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(checkTextCmd)
	checkCmd.AddCommand(checkURLCmd)

	checkCmd.PersistentFlags().Bool("json", false, "Print the verdict as JSON")
	checkTextCmd.Flags().IntP("age", "a", 13, "Viewer age used to pick the risk threshold")
}
