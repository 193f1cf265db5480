package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aristath/spyglass/internal/modules/collector"
	"github.com/aristath/spyglass/internal/scheduler"
)

// collectionJob adapts the collector's daily pass to the scheduler.
type collectionJob struct {
	collector *collector.Service
}

func (j *collectionJob) Name() string { return "daily_collection" }

func (j *collectionJob) Run() error {
	j.collector.RunDaily(context.Background())
	return nil
}

var serveNow bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduled daily collection in the foreground",
	Long: `Starts the cron scheduler and runs the daily collection pass
(prices, economic indicators, weekly profile refresh) on the configured
schedule until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		sched := scheduler.New(a.log)
		job := &collectionJob{collector: a.collector}

		if err := sched.AddJob(a.cfg.CollectionCron, job); err != nil {
			return err
		}

		if serveNow {
			if err := sched.RunNow(job); err != nil {
				a.log.Error().Err(err).Msg("Immediate collection failed")
			}
		}

		sched.Start()
		defer sched.Stop()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		a.log.Info().Msg("Shutting down")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveNow, "now", false, "run a collection pass immediately on startup")
}
