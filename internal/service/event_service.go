// internal/service/event_service.go
package service

import (
    "encoding/json"
    "fmt"
    "log"

    "github.com/blumenous/poetry-backend/internal/model"
    "github.com/blumenous/poetry-backend/internal/queue"
    "github.com/blumenous/poetry-backend/internal/repository"
)

// ProviderEvent is the provider's webhook envelope.
type ProviderEvent struct {
    Type      string            `json:"type"`
    CreatedAt string            `json:"created_at"`
    Data      ProviderEventData `json:"data"`
}

type ProviderEventData struct {
    EmailID string         `json:"email_id"`
    From    string         `json:"from"`
    To      []string       `json:"to"`
    Subject string         `json:"subject"`
    Click   *ProviderClick `json:"click,omitempty"`
    Open    *ProviderOpen  `json:"open,omitempty"`
}

type ProviderClick struct {
    Link      string `json:"link"`
    Timestamp string `json:"timestamp"`
    UserAgent string `json:"userAgent"`
    IPAddress string `json:"ipAddress"`
}

type ProviderOpen struct {
    Timestamp string `json:"timestamp"`
    UserAgent string `json:"userAgent"`
    IPAddress string `json:"ipAddress"`
}

var eventTypes = map[string]model.EventType{
    "email.sent":       model.EventSent,
    "email.delivered":  model.EventDelivered,
    "email.opened":     model.EventOpened,
    "email.clicked":    model.EventClicked,
    "email.bounced":    model.EventBounced,
    "email.complained": model.EventComplained,
}

type EventService struct {
    EmailLogRepo   repository.EmailLogRepositoryInterface
    EmailEventRepo repository.EmailEventRepositoryInterface
    Queue          queue.Queue
}

// Ingest records one webhook-reported delivery event. Unrecognized event
// shapes are rejected rather than guessed at. A message id with no matching
// email log is not an error: the event is stored orphaned and stays that
// way.
func (s *EventService) Ingest(payload []byte) error {
    var raw ProviderEvent
    if err := json.Unmarshal(payload, &raw); err != nil {
        return fmt.Errorf("malformed event payload: %w", err)
    }

    eventType, ok := eventTypes[raw.Type]
    if !ok {
        return fmt.Errorf("unrecognized event type %q", raw.Type)
    }
    if raw.Data.EmailID == "" {
        return fmt.Errorf("event %q carries no email_id", raw.Type)
    }

    ev := &model.EmailEvent{
        ProviderMessageID: raw.Data.EmailID,
        EventType:         eventType,
    }
    if len(raw.Data.To) > 0 {
        ev.RecipientEmail = &raw.Data.To[0]
    }

    switch {
    case eventType == model.EventClicked && raw.Data.Click != nil:
        ev.LinkURL = &raw.Data.Click.Link
        ev.UserAgent = &raw.Data.Click.UserAgent
        ev.IPAddress = &raw.Data.Click.IPAddress
    case eventType == model.EventOpened && raw.Data.Open != nil:
        ev.UserAgent = &raw.Data.Open.UserAgent
        ev.IPAddress = &raw.Data.Open.IPAddress
    }

    entry, err := s.EmailLogRepo.GetByProviderMessageID(raw.Data.EmailID)
    if err != nil {
        return err
    }
    if entry != nil {
        ev.EmailLogID = &entry.ID
    }

    if err := s.EmailEventRepo.Insert(ev); err != nil {
        return err
    }

    if eventType == model.EventBounced || eventType == model.EventComplained {
        s.enqueueSuppression(ev)
    }

    return nil
}

// enqueueSuppression hands bounced and complained addresses to the worker.
// A publish failure loses one suppression job, which the next event for the
// same address will replay; it never fails the webhook.
func (s *EventService) enqueueSuppression(ev *model.EmailEvent) {
    if s.Queue == nil || ev.RecipientEmail == nil {
        return
    }
    body, err := json.Marshal(queue.SuppressionJob{
        Email:  *ev.RecipientEmail,
        Reason: string(ev.EventType),
    })
    if err != nil {
        log.Println("⚠️ failed to encode suppression job:", err)
        return
    }
    if err := s.Queue.Publish(queue.SuppressionQueue, body); err != nil {
        log.Println("⚠️ failed to enqueue suppression job:", err)
    }
}
