// Package queue defines the message payloads exchanged over the broker
// and the background consumer that turns them into the audit log.
package queue

// SubscriptionActivatedEvent is published after a subscription purchase
// completes. It carries enough for downstream consumers to log or notify
// without querying the primary database.
type SubscriptionActivatedEvent struct {
	SubscriptionID int64  `json:"subscription_id"`
	UserID         int64  `json:"user_id"`
	UserName       string `json:"user_name"`
	PlanName       string `json:"plan_name"`
	Price          string `json:"price"`
	Currency       string `json:"currency"`
	PaymentID      string `json:"payment_id"`
	BasketID       string `json:"basket_id"`
	ActivatedAt    string `json:"activated_at"`
}

// NewsletterSubscribedEvent is published when a visitor joins the
// newsletter list.
type NewsletterSubscribedEvent struct {
	Email        string `json:"email"`
	SubscribedAt string `json:"subscribed_at"`
}
