package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zeon-projects/beach-cleanup-api/internal/models"
	"github.com/zeon-projects/beach-cleanup-api/pkg/config"
)

var testEvent = config.EventConfig{
	Name:         "Beach Cleanup 2025",
	Date:         "July, 2025",
	Location:     "Girgaon Chowpatty",
	TimeWindow:   "7:30 am to 9:30 am",
	WhatsAppLink: "https://chat.whatsapp.com/abc",
}

type mockSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *mockSender) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return m.err
}

func (m *mockSender) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func waitForSends(t *testing.T, sender *mockSender, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for sender.sentCount() < want {
		select {
		case <-deadline:
			t.Fatalf("expected %d sends, got %d", want, sender.sentCount())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestComposeRendersRegistrationDetails(t *testing.T) {
	email := Compose(models.Registration{
		Name:   "Asha Patil",
		Email:  "asha@example.com",
		RollNo: "42",
		Year:   models.YearSE,
		Branch: "Comps A",
	}, testEvent)

	assert.Equal(t, "asha@example.com", email.To)
	assert.Equal(t, "Registration Confirmation - Beach Cleanup 2025", email.Subject)
	assert.Contains(t, email.Body, "Dear Asha Patil,")
	assert.Contains(t, email.Body, "Girgaon Chowpatty")
	assert.Contains(t, email.Body, "7:30 am to 9:30 am")
	assert.Contains(t, email.Body, "<strong>Roll No:</strong> 42")
	assert.Contains(t, email.Body, "<strong>Branch:</strong> Comps A")
}

func TestComposeMissingFieldsRenderNA(t *testing.T) {
	email := Compose(models.Registration{Name: "Asha", Email: "a@b.c"}, testEvent)

	assert.Contains(t, email.Body, "<strong>Roll No:</strong> N/A")
	assert.Contains(t, email.Body, "<strong>Year:</strong> N/A")
	assert.Contains(t, email.Body, "<strong>Branch:</strong> N/A")
}

func TestNotifierSendsQueuedEmail(t *testing.T) {
	sender := &mockSender{}
	n := New(sender, testEvent, Config{Workers: 1, Logger: zap.NewNop()})
	n.Start(context.Background())
	defer n.Stop()

	n.NotifyRegistered(models.Registration{Name: "Asha", Email: "asha@example.com"})

	waitForSends(t, sender, 1)
	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "asha@example.com", sender.sent[0])
}

func TestNotifierSwallowsSendFailure(t *testing.T) {
	sender := &mockSender{err: errors.New("smtp down")}
	n := New(sender, testEvent, Config{Workers: 1, Logger: zap.NewNop()})
	n.Start(context.Background())
	defer n.Stop()

	n.NotifyRegistered(models.Registration{Name: "Asha", Email: "asha@example.com"})

	// The attempt happens exactly once and the failure stays internal.
	waitForSends(t, sender, 1)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, sender.sentCount())
}

func TestNotifierNotStartedDropsJob(t *testing.T) {
	sender := &mockSender{}
	n := New(sender, testEvent, Config{Workers: 1, Logger: zap.NewNop()})

	n.NotifyRegistered(models.Registration{Name: "Asha", Email: "asha@example.com"})

	assert.Zero(t, sender.sentCount())
}
