package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/rectscreen/internal/clock"
	"github.com/danieljhkim/rectscreen/internal/hash"
	"github.com/danieljhkim/rectscreen/internal/screen"
	"github.com/danieljhkim/rectscreen/internal/watch"
)

var (
	watchFlags    screenFlags
	watchOutput   string
	watchPNG      string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <batch-file>",
	Short: "Re-render a batch file every time it changes",
	Long: `Render a batch file, then keep watching it and re-render after each change.

Each change is loaded onto a fresh screen. A change that fails to load is reported
and the previous export is left in place. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := watchFlags.settings(cmd)
		if err != nil {
			return err
		}

		path := args[0]
		svgPath := watchOutput
		if svgPath == "" {
			svgPath = defaultOutput(settings, path, ".svg")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		clk := clock.RealClock{}
		exp := newExporter()

		w := watch.New(hash.NewSHA256Hasher(),
			watch.WithDebounce(watchDebounce),
			watch.WithLogger(screen.Logger()),
			watch.WithErrorHandler(func(err error) {
				PrintError(fmt.Sprintf("[%s] %v", clk.Now().Format(time.TimeOnly), err))
				describeLoadError(err)
			}),
		)

		PrintInfo(fmt.Sprintf("Watching %s (Ctrl+C to stop)", path))
		err = w.Run(ctx, path, func(p string) error {
			sc, n, err := loadScreen(settings, p)
			if err != nil {
				return err
			}
			if err := exp.ExportSVG(svgPath, sc); err != nil {
				return err
			}
			if watchPNG != "" {
				if err := exp.ExportPNG(watchPNG, sc); err != nil {
					return err
				}
			}
			screen.Logger().Info("re-rendered", slog.String("source", p), slog.Int("shapes", n))
			PrintSuccess(fmt.Sprintf("[%s] %s -> %s", clk.Now().Format(time.TimeOnly), PrintCount(n, "shape", "shapes"), svgPath))
			return nil
		})
		if err != nil && ctx.Err() == nil {
			return err
		}
		if ctx.Err() == context.Canceled {
			PrintInfo("Stopped watching")
		}
		return nil
	},
}

func init() {
	watchFlags.register(watchCmd)
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "SVG output path")
	watchCmd.Flags().StringVar(&watchPNG, "png", "", "Also write a PNG to this path")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period after a change before re-rendering")
}
