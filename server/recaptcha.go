package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const reCaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// CaptchaVerifier checks a captcha response token from a form post.
type CaptchaVerifier interface {
	Verify(ctx context.Context, response, remoteIP string) (bool, error)
}

// ReCaptcha verifies Google reCAPTCHA v2 responses.
type ReCaptcha struct {
	secret    string
	verifyURL string
	client    *http.Client
}

var _ CaptchaVerifier = (*ReCaptcha)(nil)

func NewReCaptcha(secret string, timeout time.Duration) *ReCaptcha {
	return &ReCaptcha{
		secret:    secret,
		verifyURL: reCaptchaVerifyURL,
		client:    &http.Client{Timeout: timeout},
	}
}

// WithVerifyURL points the verifier at another siteverify endpoint.
func (c *ReCaptcha) WithVerifyURL(u string) *ReCaptcha {
	c.verifyURL = u
	return c
}

func (c *ReCaptcha) Verify(ctx context.Context, response, remoteIP string) (bool, error) {
	if strings.TrimSpace(response) == "" {
		return false, nil
	}
	form := url.Values{
		"secret":   {c.secret},
		"response": {response},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("recaptcha verify: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("recaptcha verify: status %d", resp.StatusCode)
	}

	var body struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("recaptcha verify: %w", err)
	}
	return body.Success, nil
}

func remoteIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return strings.Trim(host, "[]")
}
