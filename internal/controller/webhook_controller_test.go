package controller

import (
    "bytes"
    "crypto/hmac"
    "crypto/sha256"
    "encoding/base64"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/blumenous/poetry-backend/internal/model"
    "github.com/blumenous/poetry-backend/internal/service"
)

type stubEmailLogRepo struct {
    byMessageID map[string]*model.EmailLog
}

func (s *stubEmailLogRepo) Create(l *model.EmailLog) error { return nil }
func (s *stubEmailLogRepo) GetByProviderMessageID(msgID string) (*model.EmailLog, error) {
    return s.byMessageID[msgID], nil
}
func (s *stubEmailLogRepo) List() ([]model.EmailLog, error) { return nil, nil }

type stubEmailEventRepo struct {
    inserted []*model.EmailEvent
}

func (s *stubEmailEventRepo) Insert(ev *model.EmailEvent) error {
    s.inserted = append(s.inserted, ev)
    return nil
}
func (s *stubEmailEventRepo) ListByEmailLog(emailLogID string) ([]model.EmailEvent, error) {
    return nil, nil
}

func signPayload(payload []byte, secret string) string {
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write(payload)
    return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newWebhookController() (*WebhookController, *stubEmailEventRepo) {
    events := &stubEmailEventRepo{}
    ctrl := &WebhookController{EventService: &service.EventService{
        EmailLogRepo:   &stubEmailLogRepo{},
        EmailEventRepo: events,
    }}
    return ctrl, events
}

func postWebhook(ctrl *WebhookController, payload []byte, signature string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(http.MethodPost, "/api/webhooks/email", bytes.NewReader(payload))
    if signature != "" {
        req.Header.Set("svix-signature", signature)
    }
    rec := httptest.NewRecorder()
    ctrl.HandleEmailEvent(rec, req)
    return rec
}

func TestWebhookAcceptsSignedEvent(t *testing.T) {
    t.Setenv("RESEND_WEBHOOK_SECRET", "whsec_test")
    ctrl, events := newWebhookController()

    payload := []byte(`{"type":"email.delivered","data":{"email_id":"msg-1","to":["reader@x.com"]}}`)
    rec := postWebhook(ctrl, payload, signPayload(payload, "whsec_test"))

    if rec.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
    }
    var body map[string]bool
    if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
        t.Fatalf("invalid response body: %v", err)
    }
    if !body["received"] {
        t.Error("expected received: true")
    }
    if len(events.inserted) != 1 {
        t.Fatalf("expected 1 recorded event, got %d", len(events.inserted))
    }
}

func TestWebhookRejectsBadSignature(t *testing.T) {
    t.Setenv("RESEND_WEBHOOK_SECRET", "whsec_test")
    ctrl, events := newWebhookController()

    payload := []byte(`{"type":"email.delivered","data":{"email_id":"msg-1"}}`)
    rec := postWebhook(ctrl, payload, signPayload(payload, "wrong-secret"))

    if rec.Code != http.StatusUnauthorized {
        t.Fatalf("expected 401, got %d", rec.Code)
    }
    if len(events.inserted) != 0 {
        t.Error("event must not be recorded when the signature fails")
    }
}

func TestWebhookAcceptsUnverifiedWhenNoSecret(t *testing.T) {
    t.Setenv("RESEND_WEBHOOK_SECRET", "")
    ctrl, events := newWebhookController()

    payload := []byte(`{"type":"email.opened","data":{"email_id":"msg-2","to":["reader@x.com"]}}`)
    rec := postWebhook(ctrl, payload, "")

    if rec.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rec.Code)
    }
    if len(events.inserted) != 1 {
        t.Fatalf("expected 1 recorded event, got %d", len(events.inserted))
    }
}

func TestWebhookSwallowsUnknownEventType(t *testing.T) {
    t.Setenv("RESEND_WEBHOOK_SECRET", "")
    ctrl, events := newWebhookController()

    payload := []byte(`{"type":"email.exploded","data":{"email_id":"msg-3"}}`)
    rec := postWebhook(ctrl, payload, "")

    // unknown shapes are skipped but still acknowledged
    if rec.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rec.Code)
    }
    if len(events.inserted) != 0 {
        t.Error("unknown event types must not be recorded")
    }
}
