// Package auth gates the privileged console roles behind a password kept in
// plain text, one file per role. It decides which menu a person at the
// terminal may open; it is not a security boundary.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/unmoha/restaurant-customer-order-management/model"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleCashier  Role = "cashier"
	RoleChef     Role = "chef"
)

const DefaultPassword = "123"

type Gate interface {
	// Required reports whether the role needs a password at all.
	Required(role Role) bool
	Verify(role Role, password string) bool
	Change(ctx context.Context, role Role, current, next string) error
}

// NewFileGate loads one password file per role. A missing file is created
// with DefaultPassword.
func NewFileGate(paths map[Role]string, log zerolog.Logger) (Gate, error) {
	g := &fileGate{
		paths:     paths,
		passwords: make(map[Role]string, len(paths)),
		log:       log.With().Str("component", "auth").Logger(),
	}
	for role, path := range paths {
		raw, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			if err := writePassword(path, DefaultPassword); err != nil {
				return nil, err
			}
			g.passwords[role] = DefaultPassword
			continue
		}
		if err != nil {
			return nil, model.IOError("read", path, err)
		}
		g.passwords[role] = firstLine(string(raw))
	}
	return g, nil
}

type fileGate struct {
	mu        sync.Mutex
	paths     map[Role]string
	passwords map[Role]string
	log       zerolog.Logger
}

func (g *fileGate) Required(role Role) bool {
	_, ok := g.paths[role]
	return ok
}

func (g *fileGate) Verify(role Role, password string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	want, ok := g.passwords[role]
	if !ok {
		return true
	}
	return password == want
}

func (g *fileGate) Change(ctx context.Context, role Role, current, next string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	path, ok := g.paths[role]
	if !ok {
		return fmt.Errorf("%w: role %s has no password", model.ErrValidation, role)
	}
	if current != g.passwords[role] {
		return model.ErrWrongPassword
	}
	if next == "" {
		return model.ErrEmptyPassword
	}
	if err := writePassword(path, next); err != nil {
		return err
	}
	g.passwords[role] = next

	g.log.Info().Str("role", string(role)).Msg("password changed")
	return nil
}

func writePassword(path, password string) error {
	if err := os.WriteFile(path, []byte(password), 0600); err != nil {
		return model.IOError("write", path, err)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
