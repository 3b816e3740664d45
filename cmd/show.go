package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamusis/sememe-cli/internal/kdml"
	"github.com/kamusis/sememe-cli/internal/lexicon"
	"github.com/kamusis/sememe-cli/internal/similarity"
)

var showCmd = &cobra.Command{
	Use:   "show <word>",
	Short: "Show the senses of a word with their sememe trees",
	Long: `Show every sense of a word. A word is looked up as English first, then
Chinese, then as a sense number, unless --lang narrows it.

  --list   print each sense's sememe list instead of its tree
  --merge  with --list, print one list merged across senses`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var (
	flagShowLang  string
	flagShowList  bool
	flagShowMerge bool
	flagShowJSON  bool
)

func init() {
	showCmd.Flags().StringVar(&flagShowLang, "lang", "", "Restrict lookup to en or zh")
	showCmd.Flags().BoolVar(&flagShowList, "list", false, "Print sememe lists instead of trees")
	showCmd.Flags().BoolVar(&flagShowMerge, "merge", false, "Merge sememe lists across senses (implies --list)")
	showCmd.Flags().BoolVar(&flagShowJSON, "json", false, "Print JSON")
	rootCmd.AddCommand(showCmd)
}

type senseView struct {
	*lexicon.Sense
	Tree    *kdml.DictNode `json:"tree,omitempty"`
	Sememes []string       `json:"sememes,omitempty"`
}

func runShow(cmd *cobra.Command, args []string) error {
	lang, ok := lexicon.ParseLang(flagShowLang)
	if !ok {
		return fmt.Errorf("--lang must be en or zh (got %q)", flagShowLang)
	}
	e, _, err := openEngine(0)
	if err != nil {
		return err
	}
	senses := e.Lexicon().Get(args[0], lang)
	if len(senses) == 0 {
		return fmt.Errorf("%s: %w", args[0], similarity.ErrNotFound)
	}

	w := cmd.OutOrStdout()
	if flagShowMerge {
		merged := lexicon.MergeSememeLists(senses)
		if flagShowJSON {
			return writeJSON(w, merged)
		}
		for _, id := range merged {
			fmt.Fprintln(w, id)
		}
		return nil
	}

	views := make([]senseView, 0, len(senses))
	for _, s := range senses {
		v := senseView{Sense: s}
		if flagShowList {
			v.Sememes = s.SememeList()
		} else {
			t, err := e.SenseTree(s.No)
			if err != nil {
				return err
			}
			v.Tree = kdml.Export(t)
		}
		views = append(views, v)
	}
	if flagShowJSON {
		return writeJSON(w, views)
	}

	for _, v := range views {
		printBullet(w, senseTitle(v.Sense))
		fmt.Fprintf(w, "  def: %s\n", v.Def)
		if flagShowList {
			for _, id := range v.Sememes {
				fmt.Fprintf(w, "    %s\n", id)
			}
			continue
		}
		t, _ := e.SenseTree(v.No)
		renderTree(w, t, "    ")
	}
	return nil
}
