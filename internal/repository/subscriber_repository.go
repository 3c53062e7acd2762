package repository

import (
    "database/sql"
    "time"

    "github.com/google/uuid"

    "github.com/blumenous/poetry-backend/internal/model"
)

type SubscriberRepositoryInterface interface {
    ListActive() ([]model.Subscriber, error)
    ListAll() ([]model.Subscriber, error)
    GetByEmail(email string) (*model.Subscriber, error)
    Create(s *model.Subscriber) error
    UpdateStatus(email, status string) error
    Delete(id string) error
}

type SubscriberRepository struct {
    DB *sql.DB
}

const subscriberColumns = `id, email, status, verified, subscribed_at`

// ListActive fetches the dispatch audience. Called fresh at dispatch time,
// never cached.
func (r *SubscriberRepository) ListActive() ([]model.Subscriber, error) {
    query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE status=$1 ORDER BY subscribed_at`
    return r.list(query, model.SubscriberActive)
}

func (r *SubscriberRepository) ListAll() ([]model.Subscriber, error) {
    query := `SELECT ` + subscriberColumns + ` FROM subscribers ORDER BY subscribed_at DESC`
    return r.list(query)
}

func (r *SubscriberRepository) list(query string, args ...any) ([]model.Subscriber, error) {
    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    subs := []model.Subscriber{}
    for rows.Next() {
        var s model.Subscriber
        if err := rows.Scan(&s.ID, &s.Email, &s.Status, &s.Verified, &s.SubscribedAt); err != nil {
            return nil, err
        }
        subs = append(subs, s)
    }
    return subs, rows.Err()
}

func (r *SubscriberRepository) GetByEmail(email string) (*model.Subscriber, error) {
    query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE email=$1`
    var s model.Subscriber
    err := r.DB.QueryRow(query, email).Scan(&s.ID, &s.Email, &s.Status, &s.Verified, &s.SubscribedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &s, nil
}

func (r *SubscriberRepository) Create(s *model.Subscriber) error {
    if s.ID == "" {
        s.ID = uuid.NewString()
    }
    if s.Status == "" {
        s.Status = model.SubscriberActive
    }
    s.SubscribedAt = time.Now()
    query := `
        INSERT INTO subscribers (id, email, status, verified, subscribed_at)
        VALUES ($1, $2, $3, $4, $5)
    `
    _, err := r.DB.Exec(query, s.ID, s.Email, s.Status, s.Verified, s.SubscribedAt)
    return err
}

// UpdateStatus flips a subscriber between active and unsubscribed. When
// re-activating, the subscription timestamp is refreshed.
func (r *SubscriberRepository) UpdateStatus(email, status string) error {
    query := `UPDATE subscribers SET status=$1 WHERE email=$2`
    if status == model.SubscriberActive {
        query = `UPDATE subscribers SET status=$1, subscribed_at=NOW() WHERE email=$2`
    }
    _, err := r.DB.Exec(query, status, email)
    return err
}

func (r *SubscriberRepository) Delete(id string) error {
    _, err := r.DB.Exec(`DELETE FROM subscribers WHERE id=$1`, id)
    return err
}

var _ SubscriberRepositoryInterface = (*SubscriberRepository)(nil)
