// internal/model/like.go
package model

import "time"

type Like struct {
    ID        string    `db:"id" json:"id"`
    PoemID    string    `db:"poem_id" json:"poem_id"`
    VisitorID string    `db:"visitor_id" json:"visitor_id"`
    CreatedAt time.Time `db:"created_at" json:"created_at"`
}
