package responder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mini-maxit/wmc-batch/internal/logger"
	"github.com/mini-maxit/wmc-batch/internal/rabbitmq/channel"
	"github.com/mini-maxit/wmc-batch/pkg/constants"
	"github.com/mini-maxit/wmc-batch/pkg/messages"
	"github.com/mini-maxit/wmc-batch/pkg/solution"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Responder publishes finished batch reports to a queue.
type Responder interface {
	Publish(ctx context.Context, report *solution.Report) error
	String() string
}

type responder struct {
	logger        *zap.SugaredLogger
	channel       channel.Channel
	queueName     string
	queueDeclared bool
}

func NewResponder(channel channel.Channel, queueName string) Responder {
	return &responder{
		logger:    logger.NewNamedLogger("responder"),
		channel:   channel,
		queueName: queueName,
	}
}

func (r *responder) String() string {
	return "queue " + r.queueName
}

func (r *responder) Publish(ctx context.Context, report *solution.Report) error {
	if !r.queueDeclared {
		if _, err := r.channel.QueueDeclare(r.queueName, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", r.queueName, err)
		}
		r.queueDeclared = true
	}

	payload, err := json.Marshal(buildPayload(report))
	if err != nil {
		return err
	}

	queueMessage := messages.ReportQueueMessage{
		Type:      constants.QueueMessageTypeReport,
		MessageID: report.RunID,
		Ok:        len(report.Failures) == 0,
		Payload:   payload,
	}

	body, err := json.Marshal(queueMessage)
	if err != nil {
		return err
	}

	r.logger.Infof("Publishing report to queue %s [RunID: %s]", r.queueName, report.RunID)
	return r.channel.PublishWithContext(ctx, "", r.queueName, false, false, amqp.Publishing{
		ContentType:   constants.ReportMessageContentType,
		CorrelationId: report.RunID,
		DeliveryMode:  amqp.Persistent,
		Timestamp:     time.Now(),
		Body:          body,
	})
}

func buildPayload(report *solution.Report) messages.ReportPayload {
	results := make([]messages.ResultPayload, 0, len(report.Results))
	for _, result := range report.Results {
		results = append(results, messages.ResultPayload{
			FileName: result.FileName,
			Status:   result.Status.String(),
			Reason:   result.Reason.String(),
			ExitCode: result.ExitCode,
			TimeMs:   result.Duration.Milliseconds(),
		})
	}

	return messages.ReportPayload{
		SuccessCount: len(report.Successes),
		FailureCount: len(report.Failures),
		Successes:    report.Successes,
		Failures:     report.Failures,
		Results:      results,
	}
}
