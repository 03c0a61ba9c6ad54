package ports

import (
	"context"
	"time"
)

// OrderStatusChanged is published after a committed status transition.
type OrderStatusChanged struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	UserID      string    `json:"userId"`
	RiderID     string    `json:"riderId,omitempty"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ActorRole   string    `json:"actorRole"`
	Reason      string    `json:"reason,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OrderEventPublisher delivers order events to the notification layer.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChanged) error
}
