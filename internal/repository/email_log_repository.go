package repository

import (
    "database/sql"
    "time"

    "github.com/google/uuid"
    "github.com/lib/pq"

    "github.com/blumenous/poetry-backend/internal/model"
)

type EmailLogRepositoryInterface interface {
    Create(l *model.EmailLog) error
    GetByProviderMessageID(msgID string) (*model.EmailLog, error)
    List() ([]model.EmailLog, error)
}

type EmailLogRepository struct {
    DB *sql.DB
}

const emailLogColumns = `id, subject, poem_id, recipient_count, status, provider_message_ids,
        open_count, click_count, unique_opens, unique_clicks, sent_at`

func (r *EmailLogRepository) Create(l *model.EmailLog) error {
    if l.ID == "" {
        l.ID = uuid.NewString()
    }
    l.SentAt = time.Now()
    query := `
        INSERT INTO email_logs (id, subject, poem_id, recipient_count, status, provider_message_ids, sent_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
    _, err := r.DB.Exec(query, l.ID, l.Subject, l.PoemID, l.RecipientCount, l.Status,
        pq.Array(l.ProviderMessageIDs), l.SentAt)
    return err
}

// GetByProviderMessageID resolves the log a delivery event belongs to. Any of
// the ids collected during dispatch matches. A miss returns nil, nil; the
// caller records the event as orphaned.
func (r *EmailLogRepository) GetByProviderMessageID(msgID string) (*model.EmailLog, error) {
    query := `SELECT ` + emailLogColumns + ` FROM email_logs WHERE $1 = ANY(provider_message_ids)`
    l, err := scanEmailLog(r.DB.QueryRow(query, msgID))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return l, nil
}

func (r *EmailLogRepository) List() ([]model.EmailLog, error) {
    query := `SELECT ` + emailLogColumns + ` FROM email_logs ORDER BY sent_at DESC`
    rows, err := r.DB.Query(query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    logs := []model.EmailLog{}
    for rows.Next() {
        l, err := scanEmailLog(rows)
        if err != nil {
            return nil, err
        }
        logs = append(logs, *l)
    }
    return logs, rows.Err()
}

func scanEmailLog(row interface{ Scan(...any) error }) (*model.EmailLog, error) {
    var l model.EmailLog
    err := row.Scan(&l.ID, &l.Subject, &l.PoemID, &l.RecipientCount, &l.Status,
        pq.Array(&l.ProviderMessageIDs), &l.OpenCount, &l.ClickCount,
        &l.UniqueOpens, &l.UniqueClicks, &l.SentAt)
    if err != nil {
        return nil, err
    }
    return &l, nil
}

var _ EmailLogRepositoryInterface = (*EmailLogRepository)(nil)
