package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	httpadapter "github.com/randomtoy/temple-go/internal/adapters/http"
	"github.com/randomtoy/temple-go/internal/app"
	"github.com/randomtoy/temple-go/internal/domain"
)

func newIncenseCmd(opts *options) *cobra.Command {
	var (
		wish   string
		token  string
		amount float64
	)

	cmd := &cobra.Command{
		Use:   "incense",
		Short: "Burn virtual incense and receive a blessing",
		Example: `  templectl incense --wish "a healthy year"
  templectl incense --wish 平安 --token SOL --amount 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			w, err := domain.NormalizeWish(wish)
			if err != nil {
				return err
			}
			if amount < 0 {
				return domain.ErrInvalidOffering
			}

			svc := opts.service(cmd)
			if err := svc.CheckOffering(cmd.Context(), token, amount); err != nil {
				return err
			}
			r := svc.Bless(cmd.Context(), app.BlessRequest{
				Wish:    w,
				Token:   token,
				Amount:  amount,
				Signals: opts.signals(),
			})
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), httpadapter.NewBlessingResponse(r, ""))
			}
			printBlessing(cmd.OutOrStdout(), r)
			return nil
		},
	}

	cmd.Flags().StringVar(&wish, "wish", "", "what you pray for (2-200 characters)")
	cmd.Flags().StringVar(&token, "token", "", "offering token (default from the catalog)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "offering amount (default from the catalog)")
	_ = cmd.MarkFlagRequired("wish")
	return cmd
}

func printBlessing(w io.Writer, r app.BlessingReading) {
	fmt.Fprintf(w, "%s  %g %s\n\n%s\n", r.Result.FortuneTrend, r.Result.Amount, r.Result.Token, r.Text)
}
