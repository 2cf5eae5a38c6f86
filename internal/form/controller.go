package form

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zeon-projects/beach-cleanup-api/internal/models"
)

// DefaultResetDelay is how long the success state stays visible before
// the form returns to its initial state.
const DefaultResetDelay = 5 * time.Second

// Registrar submits a completed form to the registration endpoint.
type Registrar interface {
	Register(ctx context.Context, values Values) (*models.Registration, error)
}

// Snapshot is an immutable view of the controller state handed to
// observers on every state change.
type Snapshot struct {
	Values        Values
	Errors        Errors
	Submitting    bool
	Submitted     bool
	BranchOptions []string
}

// Options configures a Controller.
type Options struct {
	ResetDelay time.Duration
	OnChange   func(Snapshot)
	OnAlert    func(string)
	Logger     *zap.Logger
}

// Controller owns the registration form state: field values, per-field
// errors, the submission flags and the branch options offered for the
// selected year. It enforces at most one in-flight submission.
type Controller struct {
	mu            sync.Mutex
	values        Values
	errors        Errors
	submitting    bool
	submitted     bool
	branchOptions []string

	registrar  Registrar
	resetDelay time.Duration
	onChange   func(Snapshot)
	onAlert    func(string)
	logger     *zap.Logger
	resetTimer *time.Timer
}

// NewController constructs a Controller around the given registrar.
func NewController(registrar Registrar, opts Options) *Controller {
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		errors:     Errors{},
		registrar:  registrar,
		resetDelay: opts.ResetDelay,
		onChange:   opts.OnChange,
		onAlert:    opts.OnAlert,
		logger:     opts.Logger,
	}
}

// SetField updates a single field value. Changing the year recomputes
// the offered branch list and clears a branch selection that is no
// longer valid. Any existing error for the changed field is cleared.
func (c *Controller) SetField(field, value string) {
	c.mu.Lock()

	switch field {
	case FieldName:
		c.values.Name = value
	case FieldEmail:
		c.values.Email = value
	case FieldPhone:
		c.values.Phone = value
	case FieldRollNo:
		c.values.RollNo = value
	case FieldEmergencyContact:
		c.values.EmergencyContact = value
	case FieldEmergencyPhone:
		c.values.EmergencyPhone = value
	case FieldYear:
		c.values.Year = value
		c.branchOptions = models.BranchesForYear(value)
		if !models.BranchValidForYear(value, c.values.Branch) {
			c.values.Branch = ""
		}
	case FieldBranch:
		c.values.Branch = value
	default:
		c.mu.Unlock()
		return
	}

	delete(c.errors, field)
	c.mu.Unlock()
	c.notify()
}

// Submit validates the form and, when valid, sends it to the
// registration endpoint. On success the submitted state is shown and
// the form resets after the configured delay; on failure the values
// are preserved so the user can retry.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return
	}

	errs := Validate(c.values)
	if len(errs) > 0 {
		c.errors = errs
		c.mu.Unlock()
		c.notify()
		return
	}

	c.errors = Errors{}
	c.submitting = true
	values := c.values
	c.mu.Unlock()
	c.notify()

	reg, err := c.registrar.Register(ctx, values)
	if err != nil {
		c.logger.Sugar().Warnw("registration submit failed", "error", err)
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
		c.notify()
		c.alert("Registration failed. Please try again.")
		return
	}

	c.logger.Sugar().Infow("registration submitted", "id", reg.ID)
	c.mu.Lock()
	c.submitting = false
	c.submitted = true
	c.resetTimer = time.AfterFunc(c.resetDelay, c.reset)
	c.mu.Unlock()
	c.notify()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close stops a pending reset timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}

func (c *Controller) reset() {
	c.mu.Lock()
	c.values = Values{}
	c.submitted = false
	c.branchOptions = nil
	c.resetTimer = nil
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) snapshotLocked() Snapshot {
	errs := make(Errors, len(c.errors))
	for k, v := range c.errors {
		errs[k] = v
	}
	options := make([]string, len(c.branchOptions))
	copy(options, c.branchOptions)
	return Snapshot{
		Values:        c.values,
		Errors:        errs,
		Submitting:    c.submitting,
		Submitted:     c.submitted,
		BranchOptions: options,
	}
}

func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}
	c.mu.Lock()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.onChange(snap)
}

func (c *Controller) alert(message string) {
	if c.onAlert != nil {
		c.onAlert(message)
	}
}
