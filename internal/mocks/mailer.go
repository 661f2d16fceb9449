package mocks

import (
	"sync"

	"github.com/magala-news-api/internal/email"
)

// SentMail records a single delivery made through the mock mailer
type SentMail struct {
	To   string
	Name string
	Link string
}

// MockMailer is an in-memory implementation of email.Mailer
type MockMailer struct {
	mu            sync.Mutex
	SendError     error
	verifications []SentMail
	resets        []SentMail
}

var _ email.Mailer = (*MockMailer)(nil)

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) SendVerification(to, name, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendError != nil {
		return m.SendError
	}
	m.verifications = append(m.verifications, SentMail{To: to, Name: name, Link: link})
	return nil
}

func (m *MockMailer) SendPasswordReset(to, name, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendError != nil {
		return m.SendError
	}
	m.resets = append(m.resets, SentMail{To: to, Name: name, Link: link})
	return nil
}

// Verifications returns a snapshot of the verification mails sent so far
func (m *MockMailer) Verifications() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail{}, m.verifications...)
}

// Resets returns a snapshot of the reset mails sent so far
func (m *MockMailer) Resets() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail{}, m.resets...)
}
