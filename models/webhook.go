package models

import "time"

// Webhook event types.
const (
	EventFriendApplied = "friend.applied"
)

// WebhookTarget is where and how an event is delivered.
type WebhookTarget struct {
	URL    string
	Secret string
}

// WebhookEvent is the JSON body posted to a webhook.
type WebhookEvent struct {
	Type       string    `json:"type"`
	Friend     *Friend   `json:"friend,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
