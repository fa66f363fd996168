package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clinvetia/config"
)

// Result is the verifier's verdict on a proof token.
type Result struct {
	OK     bool
	Reason string
	Score  float64
}

// Verifier is the anti-automation boundary collaborator. Booking and ROI
// session creation reject with the verifier's reason when OK is false.
type Verifier interface {
	Verify(ctx context.Context, token, expectedAction string, minScore float64, ip string) (*Result, error)
}

// RecaptchaVerifier verifies proof tokens against a reCAPTCHA-style endpoint.
type RecaptchaVerifier struct {
	secret    string
	verifyURL string
	client    *http.Client
}

// NewRecaptchaVerifier constructs a verifier from the loaded config.
func NewRecaptchaVerifier() *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secret:    config.AppConfig.RecaptchaSecret,
		verifyURL: config.AppConfig.RecaptchaVerifyURL,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify calls the remote verifier and checks score and action.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token, expectedAction string, minScore float64, ip string) (*Result, error) {
	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if ip != "" {
		form.Set("remoteip", ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling verifier: %w", err)
	}
	defer resp.Body.Close()

	var body siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding verifier response: %w", err)
	}

	if !body.Success {
		reason := "verification failed"
		if len(body.ErrorCodes) > 0 {
			reason = strings.Join(body.ErrorCodes, ", ")
		}
		return &Result{OK: false, Reason: reason, Score: body.Score}, nil
	}
	if expectedAction != "" && body.Action != expectedAction {
		return &Result{OK: false, Reason: "unexpected action", Score: body.Score}, nil
	}
	if body.Score < minScore {
		return &Result{OK: false, Reason: "score below threshold", Score: body.Score}, nil
	}
	return &Result{OK: true, Score: body.Score}, nil
}
