package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/daily-spark/quote-store/pkg/quotes"
)

const (
	flagPack     = "pack"
	flagSchedule = "schedule"
	flagOnce     = "once"
)

var quoteCmdParams = struct {
	PackPath string
	Schedule string
	Once     bool
}{}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Manage the motivation quote library.",
}

var quoteTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print the currently featured quote.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := newLibrary(cmd)
		if err != nil {
			return err
		}

		quote, err := library.Current(cmd.Root().Context())
		if err != nil {
			return err
		}
		if quote == nil {
			cmd.Println("No quote featured yet. Run 'quote rotate --once' first.")
			return nil
		}

		if quote.Author != "" {
			cmd.Printf("%q - %s\n", quote.Text, quote.Author)
		} else {
			cmd.Printf("%q\n", quote.Text)
		}
		return nil
	},
}

var quoteImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a YAML quote pack into the library.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := newLibrary(cmd)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(quoteCmdParams.PackPath)
		if err != nil {
			return fmt.Errorf("failed to read pack file: %w", err)
		}

		count, err := library.ImportPack(cmd.Root().Context(), data)
		if err != nil {
			return fmt.Errorf("failed to import pack: %w", err)
		}
		cmd.Printf("Imported %d quotes\n", count)
		return nil
	},
}

var quoteRotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Feature a quote now and keep rotating on a cron schedule.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := newLibrary(cmd)
		if err != nil {
			return err
		}

		schedule := quoteCmdParams.Schedule
		if schedule == "" {
			schedule = appConfig.RotateSchedule
		}

		handler, err := quotes.StartRotation(library, quotes.RotationParams{
			Schedule: schedule,
			RunOnce:  quoteCmdParams.Once,
		})
		if err != nil {
			return fmt.Errorf("failed to start rotation: %w", err)
		}

		if quoteCmdParams.Once {
			handler.Wait()
			if status := handler.LastStatus(); status != nil {
				cmd.Println(status.Status)
			}
			return nil
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		logrus.Info("Stopping quote rotation")
		handler.Stop()
		handler.Wait()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.AddCommand(quoteTodayCmd, quoteImportCmd, quoteRotateCmd)

	quoteImportCmd.Flags().StringVar(&quoteCmdParams.PackPath, flagPack, "", "Quote pack YAML file.")
	_ = quoteImportCmd.MarkFlagRequired(flagPack)

	quoteRotateCmd.Flags().StringVar(&quoteCmdParams.Schedule, flagSchedule, "", "Cron rotation schedule.")
	quoteRotateCmd.Flags().BoolVar(&quoteCmdParams.Once, flagOnce, false, "Rotate once and exit.")
}

func newLibrary(cmd *cobra.Command) (*quotes.Library, error) {
	store, err := newService(cmd.Root().Context())
	if err != nil {
		return nil, err
	}
	return quotes.NewLibrary(store), nil
}
