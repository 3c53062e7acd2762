package service

import (
    "net/mail"
    "strings"

    appErrors "github.com/blumenous/poetry-backend/internal/errors"
    "github.com/blumenous/poetry-backend/internal/model"
    "github.com/blumenous/poetry-backend/internal/repository"
)

type SubscriberService struct {
    SubscriberRepo repository.SubscriberRepositoryInterface
}

func validEmail(address string) bool {
    addr, err := mail.ParseAddress(address)
    return err == nil && addr.Address == address
}

// Subscribe adds a new subscriber or re-activates one who previously
// unsubscribed. Subscribing an already-active address is an input error.
func (s *SubscriberService) Subscribe(emailAddr string) (string, error) {
    emailAddr = strings.TrimSpace(emailAddr)
    if !validEmail(emailAddr) {
        return "", appErrors.NewValidationError("Invalid email address")
    }

    existing, err := s.SubscriberRepo.GetByEmail(emailAddr)
    if err != nil {
        return "", err
    }

    if existing != nil {
        if existing.Status == model.SubscriberActive {
            return "", appErrors.NewValidationError("This email is already subscribed")
        }
        if err := s.SubscriberRepo.UpdateStatus(emailAddr, model.SubscriberActive); err != nil {
            return "", err
        }
        return "Successfully resubscribed!", nil
    }

    sub := &model.Subscriber{Email: emailAddr, Status: model.SubscriberActive}
    if err := s.SubscriberRepo.Create(sub); err != nil {
        return "", err
    }
    return "Successfully subscribed!", nil
}

// Unsubscribe flips a subscriber to unsubscribed. Unknown addresses are
// treated as success so unsubscribe links cannot probe the subscriber list.
func (s *SubscriberService) Unsubscribe(emailAddr string) error {
    emailAddr = strings.TrimSpace(emailAddr)
    if !validEmail(emailAddr) {
        return appErrors.NewValidationError("Invalid email address")
    }
    return s.SubscriberRepo.UpdateStatus(emailAddr, model.SubscriberUnsubscribed)
}

// Suppress unsubscribes an address reported as bounced or complained by the
// delivery provider. Called from the suppression worker.
func (s *SubscriberService) Suppress(emailAddr, reason string) error {
    return s.SubscriberRepo.UpdateStatus(emailAddr, model.SubscriberUnsubscribed)
}

func (s *SubscriberService) List() ([]model.Subscriber, error) {
    return s.SubscriberRepo.ListAll()
}

func (s *SubscriberService) Delete(id string) error {
    return s.SubscriberRepo.Delete(id)
}
