package repository

import (
    "database/sql"
    "time"

    "github.com/google/uuid"

    "github.com/blumenous/poetry-backend/internal/model"
)

type EmailEventRepositoryInterface interface {
    Insert(ev *model.EmailEvent) error
    ListByEmailLog(emailLogID string) ([]model.EmailEvent, error)
}

type EmailEventRepository struct {
    DB *sql.DB
}

// Insert appends one delivery event. When the event resolved to an email log
// and is an open or a click, the log's derived counters are incremented in
// the same transaction; the unique counter only when this is the first event
// of that type for that recipient on that log.
func (r *EmailEventRepository) Insert(ev *model.EmailEvent) error {
    if ev.ID == "" {
        ev.ID = uuid.NewString()
    }
    ev.CreatedAt = time.Now()

    tx, err := r.DB.Begin()
    if err != nil {
        return err
    }
    defer tx.Rollback()

    first := false
    if ev.EmailLogID != nil && ev.RecipientEmail != nil {
        var n int
        err = tx.QueryRow(
            `SELECT COUNT(*) FROM email_events WHERE email_log_id=$1 AND event_type=$2 AND recipient_email=$3`,
            *ev.EmailLogID, ev.EventType, *ev.RecipientEmail,
        ).Scan(&n)
        if err != nil {
            return err
        }
        first = n == 0
    }

    _, err = tx.Exec(`
        INSERT INTO email_events
        (id, email_log_id, provider_message_id, event_type, recipient_email, link_url, user_agent, ip_address, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, ev.ID, ev.EmailLogID, ev.ProviderMessageID, ev.EventType, ev.RecipientEmail,
        ev.LinkURL, ev.UserAgent, ev.IPAddress, ev.CreatedAt)
    if err != nil {
        return err
    }

    if ev.EmailLogID != nil {
        switch ev.EventType {
        case model.EventOpened:
            err = bumpCounter(tx, *ev.EmailLogID, "open_count", "unique_opens", first)
        case model.EventClicked:
            err = bumpCounter(tx, *ev.EmailLogID, "click_count", "unique_clicks", first)
        }
        if err != nil {
            return err
        }
    }

    return tx.Commit()
}

func bumpCounter(tx *sql.Tx, logID, totalCol, uniqueCol string, first bool) error {
    query := `UPDATE email_logs SET ` + totalCol + `=` + totalCol + `+1 WHERE id=$1`
    if first {
        query = `UPDATE email_logs SET ` + totalCol + `=` + totalCol + `+1, ` +
            uniqueCol + `=` + uniqueCol + `+1 WHERE id=$1`
    }
    _, err := tx.Exec(query, logID)
    return err
}

func (r *EmailEventRepository) ListByEmailLog(emailLogID string) ([]model.EmailEvent, error) {
    query := `
        SELECT id, email_log_id, provider_message_id, event_type, recipient_email, link_url, user_agent, ip_address, created_at
        FROM email_events
        WHERE email_log_id=$1
        ORDER BY created_at
    `
    rows, err := r.DB.Query(query, emailLogID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    events := []model.EmailEvent{}
    for rows.Next() {
        var ev model.EmailEvent
        if err := rows.Scan(&ev.ID, &ev.EmailLogID, &ev.ProviderMessageID, &ev.EventType,
            &ev.RecipientEmail, &ev.LinkURL, &ev.UserAgent, &ev.IPAddress, &ev.CreatedAt); err != nil {
            return nil, err
        }
        events = append(events, ev)
    }
    return events, rows.Err()
}

var _ EmailEventRepositoryInterface = (*EmailEventRepository)(nil)
