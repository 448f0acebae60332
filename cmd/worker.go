package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-matcher/internal/queue"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Serve recommendation requests from RabbitMQ",
	Run: func(_ *cobra.Command, _ []string) {
		worker()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)

	workerCmd.Flags().IntP("consumers", "c", 0, "number of parallel consumers (default 3)")

	viper.BindPFlag("queue.consumers", workerCmd.Flags().Lookup("consumers"))
}

func worker() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := mustDeps(ctx)
	defer d.Close()

	d.logger.Info("starting the worker", zap.String("version", version))

	w := queue.NewWorker(d.config.Queue, d.service, d.logger)
	if err := w.Run(ctx); err != nil {
		d.logger.Fatal("running the worker", zap.Error(err))
	}

	d.logger.Info("worker stopped")
}
