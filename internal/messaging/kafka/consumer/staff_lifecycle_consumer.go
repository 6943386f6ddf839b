package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"farmstaff/internal/events"
	"farmstaff/internal/leavebalance"
	balanceerrors "farmstaff/internal/leavebalance/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BalanceProvisioner is the slice of the leave balance service the
// consumer needs.
type BalanceProvisioner interface {
	ProvisionDefault(ctx context.Context, staffID string) (leavebalance.BalanceResponse, error)
}

type StaffLifecycleConsumer struct {
	reader      *kafkago.Reader
	provisioner BalanceProvisioner
	logger      *zap.Logger
}

func NewStaffLifecycleConsumer(broker, groupID string, provisioner BalanceProvisioner, logger ...*zap.Logger) *StaffLifecycleConsumer {
	l := zap.L().Named("consumer.staff_lifecycle")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("consumer.staff_lifecycle")
	}
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		GroupID: groupID,
		Topic:   events.StaffCreatedTopic,
	})
	return &StaffLifecycleConsumer{reader: reader, provisioner: provisioner, logger: l}
}

// Run blocks until the context is cancelled. Each staff.created event
// provisions the default leave allowance; duplicate deliveries are
// committed and skipped since the balance already exists.
func (c *StaffLifecycleConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("fetch message failed", zap.Error(err))
			return err
		}

		if err := c.handle(ctx, msg); err != nil {
			c.logger.Error("handle staff.created failed",
				zap.String("key", string(msg.Key)),
				zap.Error(err),
			)
			// Leave the message uncommitted so it is redelivered.
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("commit failed", zap.Error(err))
		}
	}
}

func (c *StaffLifecycleConsumer) handle(ctx context.Context, msg kafkago.Message) error {
	var event events.StaffCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Warn("malformed staff.created payload, skipping", zap.Error(err))
		return nil
	}
	if event.EventType != "staff.created" || event.StaffID == "" {
		return nil
	}

	if _, err := c.provisioner.ProvisionDefault(ctx, event.StaffID); err != nil {
		if errors.Is(err, balanceerrors.ErrDuplicateBalance) {
			c.logger.Debug("balance already provisioned", zap.String("staff_id", event.StaffID))
			return nil
		}
		return err
	}

	c.logger.Info("default balance provisioned",
		zap.String("staff_id", event.StaffID),
		zap.String("role", event.Role),
	)
	return nil
}
