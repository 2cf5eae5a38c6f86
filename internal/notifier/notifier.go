package notifier

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/zeon-projects/beach-cleanup-api/internal/models"
	"github.com/zeon-projects/beach-cleanup-api/pkg/config"
	"github.com/zeon-projects/beach-cleanup-api/pkg/mailer"
)

// metricsRecorder captures email dispatch outcomes.
type metricsRecorder interface {
	ObserveEmailAttempt(success bool)
}

// Config sizes the dispatch worker pool.
type Config struct {
	Workers    int
	BufferSize int
	Logger     *zap.Logger
	Metrics    metricsRecorder
}

// EmailNotifier sends confirmation emails through a pool of detached
// workers. Delivery is best-effort: a single attempt per registration,
// failures are logged and never reach the caller.
type EmailNotifier struct {
	sender  mailer.Sender
	event   config.EventConfig
	logger  *zap.Logger
	metrics metricsRecorder

	workers    int
	bufferSize int

	jobs    chan models.Registration
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// New builds an EmailNotifier around the given sender.
func New(sender mailer.Sender, event config.EventConfig, cfg Config) *EmailNotifier {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &EmailNotifier{
		sender:     sender,
		event:      event,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		workers:    cfg.Workers,
		bufferSize: cfg.BufferSize,
		jobs:       make(chan models.Registration, cfg.BufferSize),
	}
}

// Start begins worker consumption. Safe to call once.
func (n *EmailNotifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.started {
		return
	}
	n.ctx, n.cancel = context.WithCancel(ctx)
	for i := 0; i < n.workers; i++ {
		n.wg.Add(1)
		go n.worker()
	}
	n.started = true
	n.logger.Sugar().Infow("notifier started", "workers", n.workers)
}

// Stop cancels workers and waits for them to exit.
func (n *EmailNotifier) Stop() {
	n.mu.Lock()
	if !n.started {
		n.mu.Unlock()
		return
	}
	n.cancel()
	n.mu.Unlock()
	n.wg.Wait()
	n.logger.Sugar().Infow("notifier stopped")
}

// NotifyRegistered queues a confirmation email for a persisted
// registration. Enqueue failures are swallowed like delivery failures:
// the registration already succeeded. Safe on a nil receiver so a
// disabled mail transport degrades to a no-op.
func (n *EmailNotifier) NotifyRegistered(reg models.Registration) {
	if n == nil {
		return
	}
	if err := n.enqueue(reg); err != nil {
		n.logger.Sugar().Errorw("confirmation email dropped", "email", reg.Email, "error", err)
		if n.metrics != nil {
			n.metrics.ObserveEmailAttempt(false)
		}
	}
}

func (n *EmailNotifier) enqueue(reg models.Registration) error {
	n.mu.Lock()
	ctx := n.ctx
	started := n.started
	n.mu.Unlock()

	if !started {
		return fmt.Errorf("notifier not started")
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("notifier stopped: %w", ctx.Err())
	case n.jobs <- reg:
		return nil
	default:
		return fmt.Errorf("notifier queue full")
	}
}

func (n *EmailNotifier) worker() {
	defer n.wg.Done()
	for {
		select {
		case <-n.ctx.Done():
			return
		case reg := <-n.jobs:
			n.send(reg)
		}
	}
}

func (n *EmailNotifier) send(reg models.Registration) {
	email := Compose(reg, n.event)
	err := n.sender.Send(email.To, email.Subject, email.Body)
	if n.metrics != nil {
		n.metrics.ObserveEmailAttempt(err == nil)
	}
	if err != nil {
		n.logger.Sugar().Errorw("confirmation email failed", "email", reg.Email, "error", err)
		return
	}
	n.logger.Sugar().Infow("confirmation email sent", "email", reg.Email)
}
