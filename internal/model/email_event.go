// internal/model/email_event.go
package model

import "time"

type EventType string

const (
    EventSent       EventType = "sent"
    EventDelivered  EventType = "delivered"
    EventOpened     EventType = "opened"
    EventClicked    EventType = "clicked"
    EventBounced    EventType = "bounced"
    EventComplained EventType = "complained"
)

// EmailEvent is one webhook-reported lifecycle event for one sent message.
// Records are append-only; duplicates and orphans (no matching EmailLog)
// are retained as-is.
type EmailEvent struct {
    ID                string    `db:"id" json:"id"`
    EmailLogID        *string   `db:"email_log_id" json:"email_log_id,omitempty"`
    ProviderMessageID string    `db:"provider_message_id" json:"provider_message_id"`
    EventType         EventType `db:"event_type" json:"event_type"`
    RecipientEmail    *string   `db:"recipient_email" json:"recipient_email,omitempty"`
    LinkURL           *string   `db:"link_url" json:"link_url,omitempty"`
    UserAgent         *string   `db:"user_agent" json:"user_agent,omitempty"`
    IPAddress         *string   `db:"ip_address" json:"ip_address,omitempty"`
    CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
