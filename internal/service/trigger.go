package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
)

// subscriptionValidationEventType identifies the event platform's one-time
// handshake payload.
const subscriptionValidationEventType = "Microsoft.EventGrid.SubscriptionValidationEvent"

type eventGridEvent struct {
	EventType string `json:"eventType"`
	Data      struct {
		ValidationCode string `json:"validationCode"`
	} `json:"data"`
}

// triggerService implements the TriggerService interface
type triggerService struct {
	admin  services.IndexerAdmin
	sync   services.SyncService
	wait   time.Duration
	logger *slog.Logger
}

// NewTriggerService creates a new trigger service. wait is how long the
// trigger blocks after starting the indexer before syncing, standing in for
// an "indexing complete" notification the platform does not provide.
func NewTriggerService(
	admin services.IndexerAdmin,
	sync services.SyncService,
	wait time.Duration,
	logger *slog.Logger,
) services.TriggerService {
	return &triggerService{
		admin:  admin,
		sync:   sync,
		wait:   wait,
		logger: logger,
	}
}

// Handle processes one /run-indexer request body. A subscription-validation
// envelope is answered with its code, without contacting the remote indexer;
// anything else triggers the indexing job, waits, and runs the sync engine
// inline.
func (s *triggerService) Handle(ctx context.Context, body []byte) (*services.TriggerResult, error) {
	if code, ok := validationCode(body); ok {
		s.logger.Info("subscription validation handshake answered")
		return &services.TriggerResult{ValidationCode: code}, nil
	}

	if err := s.admin.RunIndexer(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("indexer triggered, waiting before sync", "wait", s.wait)
	select {
	case <-time.After(s.wait):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	result, err := s.sync.Run(ctx, services.SyncIncremental)
	if err != nil {
		return nil, err
	}

	return &services.TriggerResult{Sync: result}, nil
}

// validationCode extracts the handshake code when body is a subscription
// validation envelope.
func validationCode(body []byte) (string, bool) {
	var events []eventGridEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return "", false
	}
	if len(events) == 0 || events[0].EventType != subscriptionValidationEventType {
		return "", false
	}
	return events[0].Data.ValidationCode, true
}
