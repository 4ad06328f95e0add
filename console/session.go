// Package console is the interactive front end: a role prompt followed by a
// numbered menu per role. Each command runs to completion, persistence
// included, before the next prompt is shown.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/unmoha/restaurant-customer-order-management/model"
	"github.com/unmoha/restaurant-customer-order-management/service/auth"
	"github.com/unmoha/restaurant-customer-order-management/service/feedback"
	"github.com/unmoha/restaurant-customer-order-management/service/menu"
	"github.com/unmoha/restaurant-customer-order-management/service/order"
	"github.com/unmoha/restaurant-customer-order-management/service/report"
)

// errQuit ends the session when the input is exhausted.
var errQuit = errors.New("input closed")

// PasswordReader reads a password without echoing it.
type PasswordReader interface {
	ReadPassword() (string, error)
}

type terminalPassword struct {
	fd int
}

// TerminalPassword returns a reader for the terminal on fd, or nil when fd is
// not a terminal. With a nil reader passwords are read as ordinary lines.
func TerminalPassword(fd int) PasswordReader {
	if !term.IsTerminal(fd) {
		return nil
	}
	return terminalPassword{fd: fd}
}

func (t terminalPassword) ReadPassword() (string, error) {
	raw, err := term.ReadPassword(t.fd)
	return string(raw), err
}

type Deps struct {
	Orders    order.IService
	Menu      menu.IService
	Feedback  feedback.IService
	Reports   report.IService
	Gate      auth.Gate
	Passwords PasswordReader
	Popular   report.Filter
	// PopularLabel names the popularity banner, e.g. "Food".
	PopularLabel string
	Log          zerolog.Logger
	Now          func() time.Time
}

type Session struct {
	Deps
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer, deps Deps) *Session {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Popular == nil {
		deps.Popular = report.CategoryFilter(model.CategoryFood)
		deps.PopularLabel = "Food"
	}
	if deps.PopularLabel == "" {
		deps.PopularLabel = "Item"
	}
	return &Session{
		Deps: deps,
		in:   bufio.NewReader(in),
		out:  out,
	}
}

// NewStdio binds a session to the process terminal.
func NewStdio(deps Deps) *Session {
	if deps.Passwords == nil {
		deps.Passwords = TerminalPassword(int(os.Stdin.Fd()))
	}
	return New(os.Stdin, os.Stdout, deps)
}

// Run shows the role prompt until the user exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		role, err := s.readInt("Select role:\n1. Customer\n2. Cashier\n3. Chef\n0. Exit\nChoice: ")
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			s.println("Invalid role selected.")
			continue
		}

		switch role {
		case 0:
			s.println("Goodbye!")
			return nil
		case 1:
			err = s.customerLoop(ctx)
		case 2:
			err = s.cashierLoop(ctx)
		case 3:
			err = s.chefLoop(ctx)
		default:
			s.println("Invalid role selected.")
		}
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return err
		}
	}
	s.println("Goodbye!")
	return nil
}

func (s *Session) customerLoop(ctx context.Context) error {
	return s.menuLoop(ctx, true, customerMenu, map[int]func(context.Context) error{
		1: s.createOrder,
		2: s.searchOrder,
		3: s.updateOrder,
		4: s.deleteOrder,
		5: s.submitFeedback,
	})
}

func (s *Session) cashierLoop(ctx context.Context) error {
	ok, err := s.login(auth.RoleCashier, "Enter cashier password: ")
	if err != nil || !ok {
		return err
	}
	return s.menuLoop(ctx, true, cashierMenu, map[int]func(context.Context) error{
		1: s.createOrder,
		2: s.listOrders,
		3: s.updateOrder,
		4: s.deleteOrder,
		5: s.searchOrder,
		6: s.sortOrders,
		7: s.updateMenu,
		8: s.dailyReport,
		9: func(ctx context.Context) error { return s.changePassword(ctx, auth.RoleCashier) },
	})
}

func (s *Session) chefLoop(ctx context.Context) error {
	ok, err := s.login(auth.RoleChef, "Enter chef password: ")
	if err != nil || !ok {
		return err
	}
	return s.menuLoop(ctx, false, chefMenu, map[int]func(context.Context) error{
		1: s.viewFeedback,
		2: s.listOrders,
		3: func(ctx context.Context) error { return s.changePassword(ctx, auth.RoleChef) },
	})
}

func (s *Session) menuLoop(ctx context.Context, banner bool, prompt string, actions map[int]func(context.Context) error) error {
	for {
		if banner {
			s.popularBanner()
		}
		choice, err := s.readInt(prompt)
		if errors.Is(err, errQuit) {
			return err
		}
		if err != nil {
			s.println("Invalid choice.")
			continue
		}
		if choice == 0 {
			return nil
		}
		action, ok := actions[choice]
		if !ok {
			s.println("Invalid choice.")
			continue
		}
		if err := action(ctx); err != nil {
			if errors.Is(err, errQuit) {
				return err
			}
			s.fail(err)
		}
	}
}

func (s *Session) login(role auth.Role, prompt string) (bool, error) {
	if s.Gate == nil || !s.Gate.Required(role) {
		return true, nil
	}
	pwd, err := s.readPassword(prompt)
	if err != nil {
		return false, err
	}
	if !s.Gate.Verify(role, pwd) {
		s.println("\nWrong password.")
		s.Log.Warn().Str("role", string(role)).Msg("login refused")
		return false, nil
	}
	return true, nil
}

// fail reports a failed command and returns to the prompt.
func (s *Session) fail(err error) {
	s.println(message(err))
	if errors.Is(err, model.ErrIO) {
		s.Log.Error().Err(err).Msg("command failed")
		return
	}
	s.Log.Warn().Err(err).Msg("command rejected")
}

func message(err error) string {
	switch {
	case errors.Is(err, model.ErrCapacityExceeded):
		return "Maximum order limit reached!"
	case errors.Is(err, model.ErrNotFoundOrder):
		return "Order ID not found."
	case errors.Is(err, model.ErrOrderNotFound):
		return "Order ID not found or invalid."
	case errors.Is(err, model.ErrUnknownItem):
		return "Invalid selection."
	case errors.Is(err, model.ErrInvalidName):
		return "Invalid name. Use letters and spaces only."
	case errors.Is(err, model.ErrInvalidQuantity):
		return "Invalid quantity."
	case errors.Is(err, model.ErrEmptyMessage):
		return "Feedback cannot be empty."
	case errors.Is(err, model.ErrWrongPassword):
		return "\nIncorrect current password."
	case errors.Is(err, model.ErrEmptyPassword):
		return "\nPassword cannot be empty."
	case errors.Is(err, model.ErrIO):
		return "Could not save changes: " + err.Error()
	}
	return err.Error()
}

func (s *Session) readLine(prompt string) (string, error) {
	s.print(prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", errQuit
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) readInt(prompt string) (int, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(line))
}

func (s *Session) readPassword(prompt string) (string, error) {
	if s.Passwords == nil {
		return s.readLine(prompt)
	}
	s.print(prompt)
	pwd, err := s.Passwords.ReadPassword()
	s.println("")
	return pwd, err
}

func (s *Session) print(a ...any) {
	fmt.Fprint(s.out, a...)
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
