package services

import (
	"context"
	"errors"

	"starwars/application/ports"
	"starwars/domain/core/valueobjects"
	"starwars/domain/events"
	pkgerrors "starwars/pkg/errors"

	"go.uber.org/zap"
)

// CodeAlreadyRegistered tags conflicts raised for a taken natural key
const CodeAlreadyRegistered = "ALREADY_REGISTERED"

// alreadyRegistered turns a duplicate natural key into a conflict carrying
// the same message. Other errors pass through unchanged.
func alreadyRegistered(err error) error {
	if !errors.Is(err, pkgerrors.ErrDuplicateEntity) {
		return err
	}
	return pkgerrors.NewConflictError(pkgerrors.MessageOf(err)).
		WithCode(CodeAlreadyRegistered).
		WithCause(err)
}

// IsAlreadyRegistered reports whether err is a taken natural key conflict
func IsAlreadyRegistered(err error) bool {
	appErr := pkgerrors.GetAppError(err)
	return appErr != nil && appErr.Code == CodeAlreadyRegistered
}

// canonicalID returns the canonical spelling of a well formed id, or id as is
func canonicalID(id string) string {
	if parsed, err := valueobjects.NewEntityIDFromString(id); err == nil {
		return parsed.String()
	}
	return id
}

// publish hands event to the publisher. Failures are logged and dropped: the
// write already happened.
func publish(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, event events.DomainEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
			zap.Error(err),
		)
	}
}
