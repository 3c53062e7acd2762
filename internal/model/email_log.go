// internal/model/email_log.go
package model

import "time"

const (
    EmailLogSent    = "sent"
    EmailLogPartial = "partial"
)

// EmailLog summarizes one newsletter dispatch attempt. RecipientCount is the
// number of sends that succeeded, not the size of the resolved audience.
// ProviderMessageIDs holds every provider-assigned id collected during the
// dispatch; delivery events reconcile against any of them.
type EmailLog struct {
    ID                 string    `db:"id" json:"id"`
    Subject            string    `db:"subject" json:"subject"`
    PoemID             *string   `db:"poem_id" json:"poem_id,omitempty"`
    RecipientCount     int       `db:"recipient_count" json:"recipient_count"`
    Status             string    `db:"status" json:"status"` // sent, partial
    ProviderMessageIDs []string  `db:"provider_message_ids" json:"provider_message_ids"`
    OpenCount          int       `db:"open_count" json:"open_count"`
    ClickCount         int       `db:"click_count" json:"click_count"`
    UniqueOpens        int       `db:"unique_opens" json:"unique_opens"`
    UniqueClicks       int       `db:"unique_clicks" json:"unique_clicks"`
    SentAt             time.Time `db:"sent_at" json:"sent_at"`
}
