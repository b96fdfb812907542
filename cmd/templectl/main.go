// Command templectl asks the temple backend for a divination or an incense
// blessing from the terminal. When the backend is unreachable it prints the
// same fallback reading the gateway would serve.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomtoy/temple-go/internal/adapters/offerings"
	"github.com/randomtoy/temple-go/internal/adapters/readings"
	"github.com/randomtoy/temple-go/internal/adapters/templeapi"
	"github.com/randomtoy/temple-go/internal/app"
	"github.com/randomtoy/temple-go/internal/locale"
)

const (
	defaultAPIURL  = "http://localhost:3000"
	defaultTimeout = 30 * time.Second
)

// options are the persistent flags shared by every subcommand.
type options struct {
	apiURL  string
	timeout time.Duration
	lang    string
	json    bool
	verbose bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "templectl",
		Short:        "Xiao Liu Ren divination and incense blessings from the terminal",
		SilenceUsage: true,
	}

	apiURL := os.Getenv("TEMPLE_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", apiURL, "temple backend base URL (env TEMPLE_API_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "backend request timeout")
	root.PersistentFlags().StringVar(&opts.lang, "lang", "", "display language: zh or en (default from $LANG)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print the reading as JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log backend failures to stderr")

	root.AddCommand(newDivineCmd(opts), newIncenseCmd(opts))
	return root
}

// service builds a TempleService talking to the backend directly. Readings
// live only for the duration of the command.
func (o *options) service(cmd *cobra.Command) *app.TempleService {
	level := slog.LevelError
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	oracle := templeapi.NewClient(&http.Client{Timeout: o.timeout}, o.apiURL, logger)
	return app.NewTempleService(oracle, readings.NewMemoryStore(o.timeout), nil, offerings.NewEmbeddedCatalog(), logger)
}

func (o *options) signals() locale.Signals {
	return locale.Signals{
		Stored:  o.lang,
		Browser: os.Getenv("LANG"),
	}
}

func (o *options) validate() error {
	if o.lang == "" {
		return nil
	}
	if _, ok := locale.Parse(o.lang); !ok {
		return fmt.Errorf("unsupported --lang %q: want zh or en", o.lang)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
