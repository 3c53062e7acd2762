package service

import (
    "testing"

    "github.com/stretchr/testify/require"

    appErrors "github.com/blumenous/poetry-backend/internal/errors"
    "github.com/blumenous/poetry-backend/internal/model"
)

// recordingSubscriberRepo tracks creates and status changes against a small
// in-memory set.
type recordingSubscriberRepo struct {
    mockSubscriberRepo
    existing map[string]*model.Subscriber
    created  []string
    statuses map[string]string
}

func (m *recordingSubscriberRepo) GetByEmail(email string) (*model.Subscriber, error) {
    return m.existing[email], nil
}
func (m *recordingSubscriberRepo) Create(s *model.Subscriber) error {
    m.created = append(m.created, s.Email)
    return nil
}
func (m *recordingSubscriberRepo) UpdateStatus(email, status string) error {
    if m.statuses == nil {
        m.statuses = map[string]string{}
    }
    m.statuses[email] = status
    return nil
}

func TestSubscribeNewAddress(t *testing.T) {
    repo := &recordingSubscriberRepo{}
    svc := &SubscriberService{SubscriberRepo: repo}

    msg, err := svc.Subscribe("  reader@x.com  ")
    require.NoError(t, err)
    require.Equal(t, "Successfully subscribed!", msg)
    require.Equal(t, []string{"reader@x.com"}, repo.created)
}

func TestSubscribeInvalidAddress(t *testing.T) {
    svc := &SubscriberService{SubscriberRepo: &recordingSubscriberRepo{}}

    for _, addr := range []string{"", "not-an-email", "a b@x.com", "Reader <reader@x.com>"} {
        _, err := svc.Subscribe(addr)
        var validation *appErrors.ValidationError
        require.ErrorAs(t, err, &validation, "address %q", addr)
    }
}

func TestSubscribeAlreadyActive(t *testing.T) {
    repo := &recordingSubscriberRepo{existing: map[string]*model.Subscriber{
        "reader@x.com": {Email: "reader@x.com", Status: model.SubscriberActive},
    }}
    svc := &SubscriberService{SubscriberRepo: repo}

    _, err := svc.Subscribe("reader@x.com")
    var validation *appErrors.ValidationError
    require.ErrorAs(t, err, &validation)
    require.Empty(t, repo.created)
}

func TestSubscribeReactivates(t *testing.T) {
    repo := &recordingSubscriberRepo{existing: map[string]*model.Subscriber{
        "reader@x.com": {Email: "reader@x.com", Status: model.SubscriberUnsubscribed},
    }}
    svc := &SubscriberService{SubscriberRepo: repo}

    msg, err := svc.Subscribe("reader@x.com")
    require.NoError(t, err)
    require.Equal(t, "Successfully resubscribed!", msg)
    require.Equal(t, model.SubscriberActive, repo.statuses["reader@x.com"])
    require.Empty(t, repo.created)
}

func TestUnsubscribe(t *testing.T) {
    repo := &recordingSubscriberRepo{}
    svc := &SubscriberService{SubscriberRepo: repo}

    require.NoError(t, svc.Unsubscribe("reader@x.com"))
    require.Equal(t, model.SubscriberUnsubscribed, repo.statuses["reader@x.com"])

    // unknown addresses are indistinguishable from known ones
    require.NoError(t, svc.Unsubscribe("stranger@x.com"))
}

func TestSuppress(t *testing.T) {
    repo := &recordingSubscriberRepo{}
    svc := &SubscriberService{SubscriberRepo: repo}

    require.NoError(t, svc.Suppress("gone@x.com", "bounced"))
    require.Equal(t, model.SubscriberUnsubscribed, repo.statuses["gone@x.com"])
}
