package mailer

// Email is a fully rendered message ready for delivery.
type Email struct {
    To      string
    Subject string
    HTML    string
    Text    string
}

// Sender delivers one email through the transactional-email provider and
// returns the provider-assigned message id. Retry and backoff, if any, are
// the provider client's concern, not the caller's.
type Sender interface {
    Send(email Email) (string, error)
}
