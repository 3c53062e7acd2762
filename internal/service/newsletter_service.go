// internal/service/newsletter_service.go
package service

import (
    "fmt"
    "log"
    "sync"

    "github.com/blumenous/poetry-backend/internal/email"
    appErrors "github.com/blumenous/poetry-backend/internal/errors"
    "github.com/blumenous/poetry-backend/internal/mailer"
    "github.com/blumenous/poetry-backend/internal/model"
    "github.com/blumenous/poetry-backend/internal/repository"
    "github.com/blumenous/poetry-backend/internal/util"
)

// DefaultBatchSize is how many recipients are dispatched concurrently before
// the next slice of the audience is issued.
const DefaultBatchSize = 50

type NewsletterService struct {
    PoemRepo       repository.PoemRepositoryInterface
    SubscriberRepo repository.SubscriberRepositoryInterface
    EmailLogRepo   repository.EmailLogRepositoryInterface
    Sender         mailer.Sender
    BatchSize      int
}

type SendNewsletterInput struct {
    Subject   string `json:"subject"`
    BodyHTML  string `json:"bodyHtml"`
    BodyText  string `json:"bodyText"`
    PoemID    string `json:"poemId,omitempty"`
    TestEmail string `json:"testEmail,omitempty"`
}

// SendNewsletterResult is what the administrator sees after a dispatch.
// Errors lists the addresses that did not receive the email so they can be
// followed up manually.
type SendNewsletterResult struct {
    Message        string   `json:"message"`
    RecipientCount int      `json:"recipientCount"`
    Errors         []string `json:"errors,omitempty"`
}

func (s *NewsletterService) batchSize() int {
    if s.BatchSize > 0 {
        return s.BatchSize
    }
    return DefaultBatchSize
}

// SendNewsletter validates the draft, resolves the audience and dispatches
// in batches. A test send goes to exactly one address with a tagged subject
// and leaves no email log behind.
func (s *NewsletterService) SendNewsletter(in SendNewsletterInput) (*SendNewsletterResult, error) {
    if util.IsBlank(in.Subject) {
        return nil, appErrors.NewValidationError("Subject is required")
    }
    if util.IsBlank(in.BodyHTML) {
        return nil, appErrors.NewValidationError("Body content is required")
    }
    if util.IsBlank(in.BodyText) {
        return nil, appErrors.NewValidationError("Body text is required")
    }

    var poemBlock *email.PoemBlock
    if in.PoemID != "" {
        poem, err := s.PoemRepo.GetByID(in.PoemID)
        if err != nil {
            return nil, err
        }
        content := poem.Content
        if poem.PlainText != nil && *poem.PlainText != "" {
            content = *poem.PlainText
        }
        poemBlock = &email.PoemBlock{Title: poem.Title, Content: content, Slug: poem.Slug}
    }

    if in.TestEmail != "" {
        return s.sendTest(in, poemBlock)
    }

    subscribers, err := s.SubscriberRepo.ListActive()
    if err != nil {
        return nil, err
    }
    if len(subscribers) == 0 {
        return nil, appErrors.NewNoRecipientsError()
    }

    sent, messageIDs, failed := s.dispatch(in, poemBlock, subscribers)

    if sent == 0 {
        log.Println("⚠️ all sends failed:", failed)
        return nil, appErrors.NewAllSendsFailedError(len(failed))
    }

    entry := &model.EmailLog{
        Subject:            in.Subject,
        RecipientCount:     sent,
        Status:             model.EmailLogSent,
        ProviderMessageIDs: messageIDs,
    }
    if in.PoemID != "" {
        entry.PoemID = &in.PoemID
    }
    if len(failed) > 0 {
        entry.Status = model.EmailLogPartial
    }
    if err := s.EmailLogRepo.Create(entry); err != nil {
        // the dispatch itself succeeded; losing the log is not worth a 500
        log.Println("⚠️ failed to record email log:", err)
    }

    msg := fmt.Sprintf("Sent to %d subscriber", sent)
    if sent != 1 {
        msg += "s"
    }
    if len(failed) > 0 {
        msg += fmt.Sprintf(" (%d failed)", len(failed))
    }

    result := &SendNewsletterResult{Message: msg, RecipientCount: sent}
    if len(failed) > 0 {
        result.Errors = failed
    }
    return result, nil
}

func (s *NewsletterService) sendTest(in SendNewsletterInput, poem *email.PoemBlock) (*SendNewsletterResult, error) {
    data := email.NewsletterData{
        Subject:          in.Subject,
        BodyHTML:         in.BodyHTML,
        BodyText:         in.BodyText,
        Poem:             poem,
        UnsubscribeEmail: in.TestEmail,
    }
    _, err := s.Sender.Send(mailer.Email{
        To:      in.TestEmail,
        Subject: "[TEST] " + in.Subject,
        HTML:    email.RenderNewsletterHTML(data),
        Text:    email.RenderNewsletterText(data),
    })
    if err != nil {
        return nil, fmt.Errorf("failed to send test email: %w", err)
    }
    return &SendNewsletterResult{Message: "Test email sent successfully", RecipientCount: 1}, nil
}

// dispatch issues sends batch by batch: the recipients within one batch go
// out concurrently, the next batch starts only after the whole batch
// resolved. One recipient's failure never aborts its siblings or later
// batches.
func (s *NewsletterService) dispatch(in SendNewsletterInput, poem *email.PoemBlock, audience []model.Subscriber) (int, []string, []string) {
    var (
        mu         sync.Mutex
        sent       int
        messageIDs []string
        failed     []string
    )

    size := s.batchSize()
    for start := 0; start < len(audience); start += size {
        end := start + size
        if end > len(audience) {
            end = len(audience)
        }

        var wg sync.WaitGroup
        for _, sub := range audience[start:end] {
            wg.Add(1)
            go func(sub model.Subscriber) {
                defer wg.Done()

                data := email.NewsletterData{
                    Subject:          in.Subject,
                    BodyHTML:         in.BodyHTML,
                    BodyText:         in.BodyText,
                    Poem:             poem,
                    UnsubscribeEmail: sub.Email,
                }
                id, err := s.Sender.Send(mailer.Email{
                    To:      sub.Email,
                    Subject: in.Subject,
                    HTML:    email.RenderNewsletterHTML(data),
                    Text:    email.RenderNewsletterText(data),
                })

                mu.Lock()
                defer mu.Unlock()
                if err != nil {
                    log.Printf("⚠️ failed to send to %s: %v\n", sub.Email, err)
                    failed = append(failed, sub.Email)
                    return
                }
                sent++
                if id != "" {
                    messageIDs = append(messageIDs, id)
                }
            }(sub)
        }
        wg.Wait()
    }

    return sent, messageIDs, failed
}
