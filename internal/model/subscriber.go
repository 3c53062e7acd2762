// internal/model/subscriber.go
package model

import "time"

const (
    SubscriberActive       = "active"
    SubscriberUnsubscribed = "unsubscribed"
)

type Subscriber struct {
    ID           string    `db:"id" json:"id"`
    Email        string    `db:"email" json:"email"`
    Status       string    `db:"status" json:"status"` // active, unsubscribed
    Verified     bool      `db:"verified" json:"verified"`
    SubscribedAt time.Time `db:"subscribed_at" json:"subscribed_at"`
}
