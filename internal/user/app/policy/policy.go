package policy

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

const (
	DefaultEmailVerificationTTL = 24 * time.Hour
	DefaultPasswordResetTTL     = time.Hour
)

type (
	AuthPolicy interface {
		// IsAllowedEmail is a local deterministic check, it never performs network calls
		IsAllowedEmail(email string) bool
		EmailVerificationTTL() time.Duration
		PasswordResetTTL() time.Duration
	}

	// Config with empty allow-lists allows every valid email address
	Config struct {
		AllowedEmailDomains  []string
		AllowedEmails        []string
		EmailVerificationTTL time.Duration
		PasswordResetTTL     time.Duration
	}

	authPolicy struct {
		allowedDomains       map[string]struct{}
		allowedEmails        map[string]struct{}
		emailVerificationTTL time.Duration
		passwordResetTTL     time.Duration
	}
)

func New(config Config) (AuthPolicy, error) {
	if config.EmailVerificationTTL < 0 {
		return nil, errors.New("email verification ttl must be non-negative")
	}
	if config.PasswordResetTTL < 0 {
		return nil, errors.New("password reset ttl must be non-negative")
	}

	p := &authPolicy{
		allowedDomains:       make(map[string]struct{}, len(config.AllowedEmailDomains)),
		allowedEmails:        make(map[string]struct{}, len(config.AllowedEmails)),
		emailVerificationTTL: config.EmailVerificationTTL,
		passwordResetTTL:     config.PasswordResetTTL,
	}
	for _, domain := range config.AllowedEmailDomains {
		domain = strings.TrimPrefix(NormalizeEmail(domain), "@")
		if domain == "" {
			continue
		}
		p.allowedDomains[domain] = struct{}{}
	}
	for _, email := range config.AllowedEmails {
		email = NormalizeEmail(email)
		if _, ok := splitEmail(email); !ok {
			return nil, errors.New("allowed email list contains invalid address " + email)
		}
		p.allowedEmails[email] = struct{}{}
	}

	return p, nil
}

func (p *authPolicy) IsAllowedEmail(email string) bool {
	email = NormalizeEmail(email)
	domain, ok := splitEmail(email)
	if !ok {
		return false
	}
	if len(p.allowedEmails) == 0 && len(p.allowedDomains) == 0 {
		return true
	}
	if _, ok = p.allowedEmails[email]; ok {
		return true
	}

	_, ok = p.allowedDomains[domain]
	return ok
}

func (p *authPolicy) EmailVerificationTTL() time.Duration {
	return p.emailVerificationTTL
}

func (p *authPolicy) PasswordResetTTL() time.Duration {
	return p.passwordResetTTL
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func splitEmail(email string) (domain string, ok bool) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return "", false
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return "", false
	}

	return domain, true
}
