package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sememeCmd = &cobra.Command{
	Use:   "sememe <query>",
	Short: "Find sememes by English or Chinese substring",
	Long: `List the sememes whose id contains the query. With --senses, list the
senses annotated with any matching sememe instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runSememe,
}

var flagSememeSenses bool

func init() {
	sememeCmd.Flags().BoolVar(&flagSememeSenses, "senses", false, "List senses annotated with the matched sememes")
	rootCmd.AddCommand(sememeCmd)
}

func runSememe(cmd *cobra.Command, args []string) error {
	e, reg, err := openEngine(0)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if flagSememeSenses {
		senses := e.Lexicon().SensesBySememe(reg, args[0])
		if len(senses) == 0 {
			printMiss(w, "", fmt.Sprintf("no senses use a sememe matching %q", args[0]))
			return nil
		}
		for _, s := range senses {
			fmt.Fprintf(w, "%s\t%s\n", senseTitle(s), s.Def)
		}
		return nil
	}

	ids := reg.FuzzyMatch(args[0])
	if len(ids) == 0 {
		printMiss(w, "", fmt.Sprintf("no sememe matches %q", args[0]))
		return nil
	}
	for _, id := range ids {
		s, _ := reg.Get(id)
		fmt.Fprintf(w, "%s\tfreq=%d\n", id, s.Freq)
	}
	return nil
}
