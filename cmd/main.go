package main

import (
	"context"
	"os"

	"github.com/mini-maxit/wmc-batch/internal/config"
	"github.com/mini-maxit/wmc-batch/internal/logger"
	"github.com/mini-maxit/wmc-batch/internal/pipeline"
	"github.com/mini-maxit/wmc-batch/internal/rabbitmq"
	"github.com/mini-maxit/wmc-batch/internal/rabbitmq/responder"
	"github.com/mini-maxit/wmc-batch/internal/report"
	"github.com/mini-maxit/wmc-batch/internal/stages/executor"
)

func main() {
	// Initialize the logger
	logger.InitializeLogger()
	defer logger.Sync()

	logger := logger.NewNamedLogger("main")

	// Load the configuration
	config := config.NewConfig()

	solverExecutor, err := executor.NewExecutor(config)
	if err != nil {
		logger.Fatalf("Failed to initialize executor: %s", err.Error())
	}

	ctx := context.Background()
	runner := pipeline.NewBatchRunner(config.InputDir, config.OutputDir, solverExecutor, os.Stdout)

	logger.Infof("Running %s over %s", config.SolverPath, config.InputDir)
	batchReport, err := runner.RunAll(ctx)
	if err != nil {
		logger.Fatalf("Batch aborted: %s", err.Error())
	}

	if err := batchReport.Print(os.Stdout); err != nil {
		logger.Fatalf("Failed to print report: %s", err.Error())
	}

	var sinks []report.Sink
	if config.ReportFile != "" {
		sinks = append(sinks, report.NewFileSink(config.ReportFile))
	}

	if config.PublishReport {
		conn, err := rabbitmq.NewRabbitMqConnection(ctx, config.RabbitMQURL)
		if err != nil {
			logger.Errorf("Skipping queue report: %s", err.Error())
		} else {
			defer func() {
				if err := conn.Close(); err != nil {
					logger.Errorf("Failed to close RabbitMQ connection: %s", err)
				}
			}()

			reportChannel, err := rabbitmq.NewRabbitMQChannel(conn)
			if err != nil {
				logger.Errorf("Skipping queue report: %s", err.Error())
			} else {
				defer func() {
					if err := reportChannel.Close(); err != nil {
						logger.Errorf("Failed to close RabbitMQ channel: %s", err)
					}
				}()
				sinks = append(sinks, responder.NewResponder(reportChannel, config.ReportQueueName))
			}
		}
	}

	if failed := report.PublishAll(ctx, batchReport, sinks...); failed > 0 {
		logger.Warnf("%d of %d report destinations failed", failed, len(sinks))
	}
}
