package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var simCmd = &cobra.Command{
	Use:   "sim <word0> <word1>",
	Short: "Score the similarity of two words",
	Long: `Score two words as the best similarity over every pair of their senses.
With --senses the arguments are sense numbers and are compared directly.`,
	Args: cobra.ExactArgs(2),
	RunE: runSim,
}

var flagSimSenses bool

func init() {
	simCmd.Flags().BoolVar(&flagSimSenses, "senses", false, "Treat the arguments as sense numbers")
	rootCmd.AddCommand(simCmd)
}

func runSim(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine(0)
	if err != nil {
		return err
	}
	var sim float64
	if flagSimSenses {
		sim, err = e.Similarity(args[0], args[1])
	} else {
		sim, err = e.WordSimilarity(args[0], args[1])
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", sim)
	return nil
}
