package signup_test

import (
	"context"
	"sync"

	"github.com/frontendfusion/signup/internal/domain/signup"
	"github.com/frontendfusion/signup/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var testVacancies = []string{"Frontend Developer", "Backend Developer", "UI/UX Designer"}

func validData() signup.FormData {
	return signup.FormData{
		Name:        "Ana",
		LastName:    "Souza",
		Email:       "ana.souza@example.com",
		Position:    "Frontend Developer",
		Description: "Trabalho com React há três anos.",
	}
}

func mustSchema() *signup.Schema {
	s, err := signup.NewSchema(testVacancies)
	if err != nil {
		panic(err)
	}
	return s
}

// fakeCreator records every call and can be told to fail or to block until
// released.
type fakeCreator struct {
	mu      sync.Mutex
	calls   []signup.FormData
	err     error
	release chan struct{}
	started chan struct{}
}

func (c *fakeCreator) CreateUser(ctx context.Context, d signup.FormData) error {
	c.mu.Lock()
	c.calls = append(c.calls, d)
	err := c.err
	c.mu.Unlock()

	if c.started != nil {
		c.started <- struct{}{}
	}
	if c.release != nil {
		select {
		case <-c.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (c *fakeCreator) setErr(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

func (c *fakeCreator) Calls() []signup.FormData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]signup.FormData(nil), c.calls...)
}
