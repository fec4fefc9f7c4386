package expiry

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"

	"cinebook/internal/entities"
	"cinebook/internal/interfaces/events"
	"cinebook/internal/outbox"
)

const claimBatchSize = 100

type PaymentChecksRepo interface {
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

// Poller turns due payment-check records into PaymentWindowExpired events.
// Claiming a batch and publishing its events happens in one transaction
// through the outbox, so a crash between the two cannot lose or duplicate a
// check: unclaimed rows are retried on the next tick, and the handler behind
// the event is idempotent anyway.
type Poller struct {
	checksRepo      PaymentChecksRepo
	trManager       trm.Manager
	trGetter        *trmsqlx.CtxGetter
	watermillLogger watermill.LoggerAdapter
	interval        time.Duration
}

func NewPoller(
	checksRepo PaymentChecksRepo,
	trManager trm.Manager,
	trGetter *trmsqlx.CtxGetter,
	watermillLogger watermill.LoggerAdapter,
	interval time.Duration,
) *Poller {
	return &Poller{
		checksRepo:      checksRepo,
		trManager:       trManager,
		trGetter:        trGetter,
		watermillLogger: watermillLogger,
		interval:        interval,
	}
}

func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.dispatchDue(ctx); err != nil {
				log.FromContext(ctx).
					WithField("error", err).
					Error("Failed to dispatch due payment checks")
			}
		}
	}
}

func (p *Poller) dispatchDue(ctx context.Context) error {
	return p.trManager.Do(ctx, func(ctx context.Context) error {
		ids, err := p.checksRepo.ClaimDue(ctx, time.Now().UTC(), claimBatchSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		tr := p.trGetter.DefaultTrOrDB(ctx, nil)
		if tr == nil {
			return fmt.Errorf("failed to get transaction from context")
		}

		publisher, err := outbox.NewPublisher(tr, p.watermillLogger)
		if err != nil {
			return fmt.Errorf("failed to create outbox publisher: %w", err)
		}

		eventBus, err := events.NewEventBus(publisher, p.watermillLogger)
		if err != nil {
			return fmt.Errorf("failed to create event bus: %w", err)
		}

		for _, id := range ids {
			err := eventBus.Publish(ctx, entities.PaymentWindowExpired_v1{
				Header:    entities.NewEventHeader(),
				BookingID: id,
			})
			if err != nil {
				return fmt.Errorf("failed to publish expiry event: %w", err)
			}
		}

		return nil
	})
}
