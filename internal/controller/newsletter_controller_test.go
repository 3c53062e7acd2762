package controller

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    appErrors "github.com/blumenous/poetry-backend/internal/errors"
    "github.com/blumenous/poetry-backend/internal/mailer"
    "github.com/blumenous/poetry-backend/internal/model"
    "github.com/blumenous/poetry-backend/internal/service"
)

type stubPoemRepo struct{}

func (s *stubPoemRepo) ListPublished() ([]model.Poem, error) { return nil, nil }
func (s *stubPoemRepo) ListAll() ([]model.Poem, error)       { return nil, nil }
func (s *stubPoemRepo) GetByID(id string) (*model.Poem, error) {
    return nil, appErrors.NewNotFoundError("poem", id)
}
func (s *stubPoemRepo) GetBySlug(slug string) (*model.Poem, error) {
    return nil, appErrors.NewNotFoundError("poem", slug)
}
func (s *stubPoemRepo) Create(p *model.Poem) error { return nil }
func (s *stubPoemRepo) Update(p *model.Poem) error { return nil }
func (s *stubPoemRepo) Delete(id string) error     { return nil }

type stubSubscriberRepo struct {
    active []model.Subscriber
}

func (s *stubSubscriberRepo) ListActive() ([]model.Subscriber, error)            { return s.active, nil }
func (s *stubSubscriberRepo) ListAll() ([]model.Subscriber, error)               { return s.active, nil }
func (s *stubSubscriberRepo) GetByEmail(email string) (*model.Subscriber, error) { return nil, nil }
func (s *stubSubscriberRepo) Create(sub *model.Subscriber) error                 { return nil }
func (s *stubSubscriberRepo) UpdateStatus(email, status string) error            { return nil }
func (s *stubSubscriberRepo) Delete(id string) error                             { return nil }

type stubSender struct {
    fail bool
}

func (s *stubSender) Send(e mailer.Email) (string, error) {
    if s.fail {
        return "", appErrors.NewValidationError("provider down")
    }
    return "msg-1", nil
}

func newNewsletterController(subs []model.Subscriber, sender mailer.Sender) *NewsletterController {
    logRepo := &stubEmailLogRepo{}
    return &NewsletterController{
        NewsletterService: &service.NewsletterService{
            PoemRepo:       &stubPoemRepo{},
            SubscriberRepo: &stubSubscriberRepo{active: subs},
            EmailLogRepo:   logRepo,
            Sender:         sender,
        },
        EmailLogRepo:   logRepo,
        EmailEventRepo: &stubEmailEventRepo{},
    }
}

func postSend(ctrl *NewsletterController, body string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(http.MethodPost, "/api/admin/send-email", strings.NewReader(body))
    rec := httptest.NewRecorder()
    ctrl.SendEmail(rec, req)
    return rec
}

func TestSendEmailSuccess(t *testing.T) {
    ctrl := newNewsletterController([]model.Subscriber{
        {Email: "a@x.com", Status: model.SubscriberActive},
        {Email: "b@x.com", Status: model.SubscriberActive},
    }, &stubSender{})

    rec := postSend(ctrl, `{"subject":"Spring","bodyHtml":"<p>Hi</p>","bodyText":"Hi"}`)
    if rec.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
    }

    var result service.SendNewsletterResult
    if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
        t.Fatalf("invalid response body: %v", err)
    }
    if result.Message != "Sent to 2 subscribers" {
        t.Errorf("unexpected message %q", result.Message)
    }
    if result.RecipientCount != 2 {
        t.Errorf("expected recipientCount 2, got %d", result.RecipientCount)
    }
}

func TestSendEmailValidation(t *testing.T) {
    ctrl := newNewsletterController(nil, &stubSender{})

    rec := postSend(ctrl, `{"subject":"","bodyHtml":"<p>Hi</p>","bodyText":"Hi"}`)
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", rec.Code)
    }
    var body map[string]string
    json.NewDecoder(rec.Body).Decode(&body)
    if body["error"] != "Subject is required" {
        t.Errorf("unexpected error message %q", body["error"])
    }
}

func TestSendEmailMalformedBody(t *testing.T) {
    ctrl := newNewsletterController(nil, &stubSender{})

    rec := postSend(ctrl, `{not json`)
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", rec.Code)
    }
}

func TestSendEmailNoSubscribers(t *testing.T) {
    ctrl := newNewsletterController(nil, &stubSender{})

    rec := postSend(ctrl, `{"subject":"Spring","bodyHtml":"<p>Hi</p>","bodyText":"Hi"}`)
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", rec.Code)
    }
    var body map[string]string
    json.NewDecoder(rec.Body).Decode(&body)
    if body["error"] != "No active subscribers" {
        t.Errorf("unexpected error message %q", body["error"])
    }
}

func TestSendEmailUnknownPoem(t *testing.T) {
    ctrl := newNewsletterController([]model.Subscriber{
        {Email: "a@x.com", Status: model.SubscriberActive},
    }, &stubSender{})

    rec := postSend(ctrl, `{"subject":"Spring","bodyHtml":"<p>Hi</p>","bodyText":"Hi","poemId":"nope"}`)
    if rec.Code != http.StatusNotFound {
        t.Fatalf("expected 404, got %d", rec.Code)
    }
}

func TestSendEmailAllSendsFailed(t *testing.T) {
    ctrl := newNewsletterController([]model.Subscriber{
        {Email: "a@x.com", Status: model.SubscriberActive},
    }, &stubSender{fail: true})

    rec := postSend(ctrl, `{"subject":"Spring","bodyHtml":"<p>Hi</p>","bodyText":"Hi"}`)
    if rec.Code != http.StatusInternalServerError {
        t.Fatalf("expected 500, got %d", rec.Code)
    }
    var body map[string]string
    json.NewDecoder(rec.Body).Decode(&body)
    if !strings.Contains(body["error"], "Check your email configuration") {
        t.Errorf("unexpected error message %q", body["error"])
    }
}
