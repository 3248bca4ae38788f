package services

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendOTPEmail(email, code string) error
}

const otpEmailSubject = "Committee Login OTP"

func otpEmailBody(code string) string {
	return fmt.Sprintf(
		"Your one-time passcode (OTP) for the Apt Bill Manager is: %s.\n\nThis code is valid for 5 minutes. Do not share it.",
		code,
	)
}

// mailgunEmailService delivers OTP mail through the Mailgun messages API.
type mailgunEmailService struct {
	domain  string
	apiKey  string
	sender  string
	baseURL string
	client  *http.Client
}

func NewMailgunEmailService(domain, apiKey, sender string) EmailService {
	return NewMailgunEmailServiceWithBaseURL(domain, apiKey, sender, "https://api.mailgun.net")
}

func NewMailgunEmailServiceWithBaseURL(domain, apiKey, sender, baseURL string) EmailService {
	return &mailgunEmailService{
		domain:  domain,
		apiKey:  apiKey,
		sender:  sender,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (s *mailgunEmailService) SendOTPEmail(email, code string) error {
	// dry-run when no real key is configured, so local setups work offline
	if s.apiKey == "" || strings.HasPrefix(s.apiKey, "key-xxx") {
		log.Printf("[email][dry-run] to=%s otp=%s", email, code)
		return nil
	}

	form := url.Values{
		"from":    {fmt.Sprintf("Apt Bill Manager <%s>", s.sender)},
		"to":      {email},
		"subject": {otpEmailSubject},
		"text":    {otpEmailBody(code)},
	}

	endpoint := fmt.Sprintf("%s/v3/%s/messages", s.baseURL, s.domain)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build mailgun request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send OTP email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mailgun returned status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}

// smtpEmailService delivers OTP mail through a plain SMTP relay.
type smtpEmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPEmailService(host string, port int, user, password, from string) EmailService {
	return &smtpEmailService{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (s *smtpEmailService) SendOTPEmail(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", otpEmailSubject)
	m.SetBody("text/plain", otpEmailBody(code))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send OTP email: %w", err)
	}
	return nil
}
