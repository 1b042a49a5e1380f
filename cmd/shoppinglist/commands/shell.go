package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/i18n"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/router"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/state"
)

// shell: read commands from stdin and render every screen after each one.
func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse and edit shopping lists interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newShell(appCtx, cmd.InOrStdin(), cmd.OutOrStdout()).run(cmd.Context())
		},
	}
}

type shellCommand struct {
	verb string
	args []string
}

func parseCommand(line string) shellCommand {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return shellCommand{}
	}
	return shellCommand{verb: strings.ToLower(fields[0]), args: fields[1:]}
}

type shell struct {
	app  *shoppinglist.App
	in   *bufio.Scanner
	out  io.Writer
	last state.ScreenState
}

func newShell(app *shoppinglist.App, in io.Reader, out io.Writer) *shell {
	return &shell{app: app, in: bufio.NewScanner(in), out: out}
}

func (s *shell) run(ctx context.Context) error {
	r := router.New(s.app.Navigator)
	for _, kind := range []router.Kind{
		router.KindShoppingListCurrent,
		router.KindShoppingListArchived,
		router.KindProductListCurrent,
		router.KindProductListArchived,
	} {
		r.Register(kind, s.screen)
	}
	r.OnTransition(s.transition)
	return r.Run(ctx)
}

// screen renders the settled state and reads the next command.
func (s *shell) screen(ctx context.Context, _ router.Screen) (any, error) {
	settleCtx, cancel := context.WithTimeout(ctx, constants.DefaultSettleTimeout)
	st, err := s.app.Settle(settleCtx)
	cancel()
	if err != nil {
		return nil, err
	}
	s.last = st
	s.reportFailures()

	fmt.Fprintln(s.out)
	renderState(s.out, s.app.Localizer, st)
	if s.app.Navigator.Depth() > 1 {
		fmt.Fprintf(s.out, "%s back\n", constants.Back)
	}
	fmt.Fprint(s.out, "> ")

	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return nil, err
		}
		return shellCommand{verb: "quit"}, nil
	}
	return parseCommand(s.in.Text()), nil
}

func (s *shell) reportFailures() {
	for {
		select {
		case err, ok := <-s.app.State.Failures():
			if !ok {
				return
			}
			fmt.Fprintln(s.out, constants.Failed, s.app.Localizer.Failure(err))
		default:
			return
		}
	}
}

func (s *shell) transition(_ router.Screen, result any, nav *router.Navigator) bool {
	cmd := result.(shellCommand)
	loc := s.app.Localizer

	switch cmd.verb {
	case "quit", "exit", "q":
		return false
	case "", "help", "?":
		fmt.Fprintln(s.out, loc.Text(i18n.ShellHelp, nil))
	case "back":
		nav.Pop()
	case "archived":
		nav.Push(router.ShoppingListArchived())
	case "open":
		if list, ok := s.listAt(cmd); ok {
			nav.Push(productScreen(list))
		}
	case "archive", "unarchive":
		if list, ok := s.listAt(cmd); ok {
			s.app.State.UpdateShoppingList(list, cmd.verb == "archive")
		}
	case "new":
		s.app.State.CreateShoppingList(strings.Join(cmd.args, " "))
	case "add":
		if s.last.SelectedShoppingList == nil {
			fmt.Fprintln(s.out, loc.Text(i18n.ShellNoList, nil))
			break
		}
		name, quantity := nameAndQuantity(cmd.args)
		s.app.State.CreateProduct(name, quantity, s.last.SelectedShoppingList.ID)
	case "rm":
		if product, ok := s.productAt(cmd); ok {
			s.app.State.DeleteProduct(product)
		}
	default:
		fmt.Fprintln(s.out, loc.Text(i18n.ShellUnknownCommand, map[string]any{"Command": cmd.verb}))
	}
	return true
}

// nameAndQuantity splits "Oat milk 2" into "Oat milk" and 2.
func nameAndQuantity(args []string) (string, int64) {
	if n := len(args); n > 1 {
		if quantity, err := strconv.ParseInt(args[n-1], 10, 64); err == nil {
			return strings.Join(args[:n-1], " "), quantity
		}
	}
	return strings.Join(args, " "), constants.DefaultProductQuantity
}

func (s *shell) index(cmd shellCommand, size int) (int, bool) {
	if len(cmd.args) == 1 {
		if n, err := strconv.Atoi(cmd.args[0]); err == nil && n >= 1 && n <= size {
			return n - 1, true
		}
	}
	fmt.Fprintln(s.out, s.app.Localizer.Text(i18n.ShellNoItem, map[string]any{"Index": strings.Join(cmd.args, " ")}))
	return 0, false
}

func (s *shell) listAt(cmd shellCommand) (state.ShoppingListUI, bool) {
	lists, _ := s.last.ShoppingLists.Data()
	i, ok := s.index(cmd, len(lists))
	if !ok {
		return state.ShoppingListUI{}, false
	}
	return lists[i], true
}

func (s *shell) productAt(cmd shellCommand) (state.ProductUI, bool) {
	products, _ := s.last.Products.Data()
	i, ok := s.index(cmd, len(products))
	if !ok {
		return state.ProductUI{}, false
	}
	return products[i], true
}
