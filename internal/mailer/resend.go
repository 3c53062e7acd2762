package mailer

import (
    "bytes"
    "encoding/json"
    "fmt"
    "net/http"
    "sync"
    "time"

    "github.com/blumenous/poetry-backend/internal/util"
)

// ResendClient talks to the Resend HTTP API. It is stateless apart from the
// shared http.Client, so one instance serves the whole process.
type ResendClient struct {
    apiKey     string
    from       string
    baseURL    string
    httpClient *http.Client
}

var (
    defaultOnce   sync.Once
    defaultClient *ResendClient
)

// Default returns the process-wide client, constructed on first use from the
// environment. No teardown is needed.
func Default() *ResendClient {
    defaultOnce.Do(func() {
        defaultClient = NewResendClient(
            util.GetEnv("RESEND_API_KEY", ""),
            util.GetEnv("EMAIL_FROM_NAME", "Blumenous Poetry")+" <"+util.GetEnv("EMAIL_FROM", "newsletter@blumenous.com")+">",
        )
    })
    return defaultClient
}

func NewResendClient(apiKey, from string) *ResendClient {
    return &ResendClient{
        apiKey:  apiKey,
        from:    from,
        baseURL: "https://api.resend.com",
        httpClient: &http.Client{Timeout: 30 * time.Second},
    }
}

type sendRequest struct {
    From    string   `json:"from"`
    To      []string `json:"to"`
    Subject string   `json:"subject"`
    HTML    string   `json:"html"`
    Text    string   `json:"text,omitempty"`
}

type sendResponse struct {
    ID string `json:"id"`
}

func (c *ResendClient) Send(email Email) (string, error) {
    body, err := json.Marshal(sendRequest{
        From:    c.from,
        To:      []string{email.To},
        Subject: email.Subject,
        HTML:    email.HTML,
        Text:    email.Text,
    })
    if err != nil {
        return "", err
    }

    req, err := http.NewRequest(http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
    if err != nil {
        return "", err
    }
    req.Header.Set("Authorization", "Bearer "+c.apiKey)
    req.Header.Set("Content-Type", "application/json")

    resp, err := c.httpClient.Do(req)
    if err != nil {
        return "", err
    }
    defer resp.Body.Close()

    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return "", fmt.Errorf("resend: unexpected status %s", resp.Status)
    }

    var out sendResponse
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
        return "", err
    }
    return out.ID, nil
}

var _ Sender = (*ResendClient)(nil)
