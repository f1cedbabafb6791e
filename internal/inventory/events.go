package inventory

import (
	"context"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/talkincode/inventory/internal/domain"
)

// Event bus topics published by the store
const (
	TopicItemCreated = "inventory:created"
	TopicItemUpdated = "inventory:updated"
	TopicItemDeleted = "inventory:deleted"
)

// Topics lists every store topic
var Topics = []string{TopicItemCreated, TopicItemUpdated, TopicItemDeleted}

// SubscribeAll attaches fn to every store topic
func SubscribeAll(bus EventBus.Bus, fn func(domain.StoreEvent)) error {
	for _, topic := range Topics {
		if err := bus.Subscribe(topic, fn); err != nil {
			return err
		}
	}
	return nil
}

func topicFor(action string) string {
	switch action {
	case domain.ActionCreate:
		return TopicItemCreated
	case domain.ActionUpdate:
		return TopicItemUpdated
	default:
		return TopicItemDeleted
	}
}

type operatorKey struct{}

// WithOperator tags ctx with the name of the operator performing a mutation
func WithOperator(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operatorKey{}, name)
}

// OperatorFrom returns the operator name stored by WithOperator
func OperatorFrom(ctx context.Context) string {
	if name, ok := ctx.Value(operatorKey{}).(string); ok {
		return name
	}
	return "system"
}
