package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kamusis/sememe-cli/internal/kdml"
)

var parseCmd = &cobra.Command{
	Use:   "parse <kdml>",
	Short: "Parse a KDML definition and print its sememe tree",
	Long: `Parse a KDML definition into a sememe tree. Needs no data bundle.

  sememe parse '{human|人:{guide|引导:agent={~}}}' --word 导游`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var (
	flagParseWord string
	flagParseJSON bool
)

func init() {
	parseCmd.Flags().StringVar(&flagParseWord, "word", "W", "Label of the tree root")
	parseCmd.Flags().BoolVar(&flagParseJSON, "json", false, "Print the tree as JSON")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	t := kdml.Parse(args[0], flagParseWord)
	if flagParseJSON {
		return writeJSON(cmd.OutOrStdout(), t)
	}
	renderTree(cmd.OutOrStdout(), t, "")
	return nil
}
