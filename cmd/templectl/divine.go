package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	httpadapter "github.com/randomtoy/temple-go/internal/adapters/http"
	"github.com/randomtoy/temple-go/internal/app"
	"github.com/randomtoy/temple-go/internal/domain"
	"github.com/randomtoy/temple-go/internal/locale"
)

func newDivineCmd(opts *options) *cobra.Command {
	var (
		wish    string
		numbers []int
	)

	cmd := &cobra.Command{
		Use:   "divine",
		Short: "Cast a Xiao Liu Ren reading from a wish and three numbers",
		Example: `  templectl divine --wish "career luck" --numbers 8,26,67 --lang en
  templectl divine --wish 事业运 --numbers 3,14,15 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			w, err := domain.NormalizeWish(wish)
			if err != nil {
				return err
			}
			nums, err := domain.ParseNumbers(numbers)
			if err != nil {
				return err
			}

			r := opts.service(cmd).Divine(cmd.Context(), app.DivineRequest{
				Wish:    w,
				Numbers: nums,
				Signals: opts.signals(),
			})
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), httpadapter.NewDivinationResponse(r, ""))
			}
			printDivination(cmd.OutOrStdout(), r)
			return nil
		},
	}

	cmd.Flags().StringVar(&wish, "wish", "", "what you wish for (2-200 characters)")
	cmd.Flags().IntSliceVar(&numbers, "numbers", nil, "three numbers between 1 and 99, comma separated")
	_ = cmd.MarkFlagRequired("wish")
	_ = cmd.MarkFlagRequired("numbers")
	return cmd
}

func printDivination(w io.Writer, r app.DivinationReading) {
	palaces := make([]string, len(r.Display.Elements))
	for i, e := range r.Display.Elements {
		name := e.Name
		if e.Pinyin != "" && r.Locale == locale.English {
			name = e.Pinyin
		}
		palaces[i] = fmt.Sprintf("%s (%s)", name, e.ElementLabel)
	}

	fmt.Fprintf(w, "%s  %d/10\n", r.Display.LuckLabel, r.Result.Luck)
	fmt.Fprintln(w, strings.Join(palaces, " · "))
	for _, section := range []string{r.Result.Divination, r.Result.Prediction, r.Result.Advice} {
		if section == "" {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", section)
	}
}
