package signup

import (
	"context"
	"sync"
	"time"

	"github.com/frontendfusion/signup/pkg/logger"
	"github.com/frontendfusion/signup/pkg/metrics"
)

// UserCreator is the remote "create user" operation.
type UserCreator interface {
	CreateUser(ctx context.Context, data FormData) error
}

// Outcome is what a submit attempt leaves behind for rendering.
// Errors is non-empty only when the schema blocked the attempt; Result is
// then the previous, untouched banner.
type Outcome struct {
	Result Result
	Errors FieldErrors
}

// Valid reports whether the schema accepted the submission.
func (o Outcome) Valid() bool { return len(o.Errors) == 0 }

// Form is one live instance of the signup form, the equivalent of a single
// page load. Its Result has exactly one writer: Submit.
type Form struct {
	schema  *Schema
	creator UserCreator
	logger  logger.Logger

	mu       sync.Mutex
	result   Result
	values   FormData
	inFlight bool
	closed   bool

	lifetime context.Context
	cancel   context.CancelFunc
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithFormLogger sets the logger used for submission diagnostics.
func WithFormLogger(l logger.Logger) FormOption {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewForm creates an empty form instance with no banner.
func NewForm(schema *Schema, creator UserCreator, opts ...FormOption) *Form {
	f := &Form{
		schema:  schema,
		creator: creator,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = logger.Named("form")
	}
	f.lifetime, f.cancel = context.WithCancel(context.Background())
	return f
}

// Result returns the current banner.
func (f *Form) Result() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Values returns the last submitted (normalized) field values.
func (f *Form) Values() FormData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// InFlight reports whether a create-user call is pending.
func (f *Form) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// Vacancies returns the positions offered by this form.
func (f *Form) Vacancies() []string { return f.schema.Vacancies() }

// Submit validates data and, when valid, issues exactly one create-user call.
// Any failure of that call, whatever its kind, becomes the generic error
// banner. A second Submit while a call is pending returns ErrSubmitInFlight.
func (f *Form) Submit(ctx context.Context, data FormData) (Outcome, error) {
	f.mu.Lock()
	switch {
	case f.closed:
		r := f.result
		f.mu.Unlock()
		metrics.RecordSubmission(metrics.OutcomeClosed)
		return Outcome{Result: r}, ErrFormClosed
	case f.inFlight:
		r := f.result
		f.mu.Unlock()
		metrics.RecordSubmission(metrics.OutcomeInFlight)
		return Outcome{Result: r}, ErrSubmitInFlight
	}

	data = f.schema.Normalize(data)
	f.values = data
	if errs := f.schema.Validate(data); len(errs) > 0 {
		r := f.result
		f.mu.Unlock()
		metrics.RecordSubmission(metrics.OutcomeInvalid)
		for field := range errs {
			metrics.RecordValidationFailure(field)
		}
		return Outcome{Result: r, Errors: errs}, nil
	}

	f.inFlight = true
	callCtx, cancel := context.WithCancel(f.lifetime)
	f.mu.Unlock()

	stop := context.AfterFunc(ctx, cancel)
	err := f.create(callCtx, data)
	stop()
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false

	if f.closed {
		// settled after the page went away; nobody is left to show it
		f.logger.Debug(ctx, "discarding late create user response", logger.Bool("failed", err != nil))
		return Outcome{Result: f.result}, ErrFormClosed
	}

	if err != nil {
		f.logger.Error(ctx, "create user failed", logger.String("position", data.Position), logger.Error(err))
		f.result = failureResult()
		metrics.RecordSubmission(metrics.OutcomeError)
	} else {
		f.result = successResult()
		metrics.RecordSubmission(metrics.OutcomeSuccess)
	}
	return Outcome{Result: f.result}, nil
}

func (f *Form) create(ctx context.Context, data FormData) error {
	start := time.Now()
	metrics.AddInFlight(1)
	defer metrics.AddInFlight(-1)

	err := f.creator.CreateUser(ctx, data)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	metrics.RecordCreateUserLatency(outcome, float64(time.Since(start).Milliseconds()))
	return err
}

// Close ends the instance lifetime and cancels a pending create-user call.
// It is safe to call more than once.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.cancel()
}
