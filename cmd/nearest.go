package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/sememe-cli/internal/similarity"
)

var nearestCmd = &cobra.Command{
	Use:   "nearest <word>",
	Short: "List the most similar senses for each sense of a word",
	Long: `For every sense of the word, score all other senses in the lexicon and
print the k best. Senses of the query word itself are never listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runNearest,
}

var (
	flagNearestK       int
	flagNearestWorkers int
	flagNearestJSON    bool
)

func init() {
	nearestCmd.Flags().IntVarP(&flagNearestK, "k", "k", -1, "Neighbours per sense (default search.k; 0 = all)")
	nearestCmd.Flags().IntVar(&flagNearestWorkers, "workers", 0, "Scoring goroutines (default search.workers)")
	nearestCmd.Flags().BoolVar(&flagNearestJSON, "json", false, "Print JSON")
	rootCmd.AddCommand(nearestCmd)
}

type neighbourView struct {
	No    string  `json:"no"`
	En    string  `json:"en_word"`
	Zh    string  `json:"zh_word"`
	Score float64 `json:"score"`
}

type resultView struct {
	No         string          `json:"no"`
	Def        string          `json:"def"`
	Neighbours []neighbourView `json:"neighbours"`
	Skipped    int             `json:"skipped"`
}

func runNearest(cmd *cobra.Command, args []string) error {
	k := flagNearestK
	if k < 0 {
		k = appCfg.Search.K
	}
	e, _, err := openEngine(flagNearestWorkers)
	if err != nil {
		return err
	}
	results, err := e.Nearest(cmd.Context(), args[0], k)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagNearestJSON {
		return writeJSON(w, toResultViews(results))
	}
	for _, r := range results {
		printBullet(w, senseTitle(r.Sense))
		fmt.Fprintf(w, "  def: %s\n", r.Sense.Def)
		if r.Skipped > 0 {
			printWarn(w, "", fmt.Sprintf("%d candidates could not be scored", r.Skipped))
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  RANK\tSCORE\tSENSE\tEN\tZH")
		for i, n := range r.Neighbours {
			fmt.Fprintf(tw, "  %d\t%.4f\t%s\t%s\t%s\n", i+1, n.Score, n.Sense, n.Sense.EnWord, n.Sense.ZhWord)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func toResultViews(results []similarity.Result) []resultView {
	out := make([]resultView, 0, len(results))
	for _, r := range results {
		v := resultView{No: r.Sense.No, Def: r.Sense.Def, Skipped: r.Skipped, Neighbours: []neighbourView{}}
		for _, n := range r.Neighbours {
			v.Neighbours = append(v.Neighbours, neighbourView{
				No: n.Sense.No, En: n.Sense.EnWord, Zh: n.Sense.ZhWord, Score: n.Score,
			})
		}
		out = append(out, v)
	}
	return out
}
