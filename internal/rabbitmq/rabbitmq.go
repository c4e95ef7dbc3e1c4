package rabbitmq

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/mini-maxit/wmc-batch/internal/logger"
	"github.com/mini-maxit/wmc-batch/internal/rabbitmq/channel"
	"github.com/mini-maxit/wmc-batch/pkg/constants"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NewRabbitMqConnection dials the broker, retrying with exponential backoff for at
// most RabbitMQReconnectTries attempts or until ctx is done.
func NewRabbitMqConnection(ctx context.Context, url string) (*amqp.Connection, error) {
	logger := logger.NewNamedLogger("rabbitmq")

	var conn *amqp.Connection
	attempt := 0
	operation := func() error {
		attempt++
		c, err := amqp.Dial(url)
		if err != nil {
			logger.Warnf("Failed to connect to RabbitMQ (attempt %d): %s", attempt, err)
			return err
		}
		conn = c
		return nil
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), constants.RabbitMQReconnectTries)
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempt, err)
	}

	logger.Info("Connected to RabbitMQ")
	return conn, nil
}

func NewRabbitMQChannel(conn *amqp.Connection) (channel.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	return channel.NewAmqpChannel(ch), nil
}
