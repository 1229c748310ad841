package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chrisdamba/foodstore/internal/cart"
	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/session"
	"github.com/spf13/cobra"
)

var errQuit = errors.New("quit")

const shellHelp = `Commands:
  categories                 list categories
  cat <id|name|all>          show the restaurants of a category
  search <text>              search restaurants
  sort <relevance|rating|deliveryTime|deliveryFee>
  open <restaurant-id>       show a restaurant and its menu
  add <item-id>[:<qty>] ...  put menu items in the cart (replaces the cart)
  cart                       open the cart
  qty <line> <quantity>      change a cart line (0 removes it)
  rm <line>                  remove a cart line
  pay <type>                 choose payment: mbway, credit_card, multibanco, cash
  delivery <option>          choose delivery: standard, express, scheduled
  checkout                   place the order
  back                       go back
  home                       return to the start page
  help                       show this help
  quit                       leave the shell`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse restaurants and place orders interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := newClient(cfg)
		recorders, closeRecorders := buildRecorders(ctx, cfg)
		defer closeRecorders()

		out := cmd.OutOrStdout()
		ctrl := session.NewController(session.Dependencies{
			Catalog:   client,
			Fallback:  catalog.NewFallback(),
			Submitter: client,
			Recorders: recorders,
			Notifier:  session.NotifierFunc(func(n session.Notification) { renderNotification(out, n) }),
			Logger:    logger,
		})

		return NewShell(ctrl, client, cmd.InOrStdin(), out).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

type profileSource interface {
	IsAuthenticated() bool
	Profile(ctx context.Context) (*models.User, error)
}

// Shell is a line-oriented storefront. It reads commands, drives the
// controller and prints the resulting snapshot.
type Shell struct {
	ctrl     *session.Controller
	profiles profileSource
	in       io.Reader
	out      io.Writer

	sortBy   string
	payment  models.PaymentMethod
	delivery models.DeliveryOption
}

func NewShell(ctrl *session.Controller, profiles profileSource, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		ctrl:     ctrl,
		profiles: profiles,
		in:       in,
		out:      out,
		sortBy:   models.SortRelevance,
		payment:  models.PaymentMethods[0],
		delivery: models.DeliveryOptions[0],
	}
}

// Run loads the catalog and processes commands until quit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	s.ctrl.Load(ctx)
	s.render()

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		err := s.exec(ctx, strings.ToLower(fields[0]), fields[1:])
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *Shell) render() {
	renderSnapshot(s.out, s.ctrl.Snapshot(), s.sortBy)
}

func (s *Shell) exec(ctx context.Context, command string, args []string) error {
	switch command {
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "categories":
		renderCategories(s.out, s.ctrl.Snapshot().Categories)
		return nil
	case "cat", "category":
		return s.selectCategory(ctx, strings.Join(args, " "))
	case "search":
		if len(args) == 0 {
			return errors.New("usage: search <text>")
		}
		return s.then(s.ctrl.Search(ctx, strings.Join(args, " ")))
	case "sort":
		return s.setSort(args)
	case "open":
		return s.openRestaurant(ctx, args)
	case "add":
		return s.addToCart(args)
	case "cart":
		return s.then(s.ctrl.OpenCart())
	case "qty":
		return s.updateQuantity(args)
	case "rm", "remove":
		if len(args) != 1 {
			return errors.New("usage: rm <line>")
		}
		index, err := lineIndex(args[0])
		if err != nil {
			return err
		}
		return s.then(s.ctrl.RemoveItem(index))
	case "pay":
		return s.setPayment(args)
	case "delivery":
		return s.setDelivery(args)
	case "checkout":
		return s.checkout(ctx)
	case "back":
		return s.then(s.ctrl.Back(ctx))
	case "home":
		return s.home(ctx)
	default:
		return fmt.Errorf("unknown command %q, type help", command)
	}
}

func (s *Shell) then(err error) error {
	if err != nil {
		return err
	}
	s.render()
	return nil
}

func (s *Shell) selectCategory(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("usage: cat <id|name|all>")
	}
	category, ok := s.ctrl.Snapshot().FindCategory(key)
	if !ok {
		if !strings.EqualFold(key, models.CategoryAll) {
			return fmt.Errorf("unknown category %q", key)
		}
		category = models.Category{ID: models.CategoryAll, Name: models.CategoryAll}
	}
	return s.then(s.ctrl.SelectCategory(ctx, category))
}

func (s *Shell) setSort(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sort <relevance|rating|deliveryTime|deliveryFee>")
	}
	switch args[0] {
	case models.SortRelevance, models.SortRating, models.SortDeliveryTime, models.SortDeliveryFee:
		s.sortBy = args[0]
	default:
		return fmt.Errorf("unknown sort order %q", args[0])
	}
	s.render()
	return nil
}

func (s *Shell) openRestaurant(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: open <restaurant-id>")
	}
	snap := s.ctrl.Snapshot()
	restaurant, ok := snap.FindRestaurant(args[0])
	if !ok && snap.SelectedRestaurant != nil && snap.SelectedRestaurant.ID == args[0] {
		restaurant, ok = *snap.SelectedRestaurant, true
	}
	if !ok {
		return fmt.Errorf("no restaurant %q on screen", args[0])
	}
	return s.then(s.ctrl.OpenRestaurant(ctx, restaurant))
}

func (s *Shell) addToCart(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: add <item-id>[:<qty>] ...")
	}
	snap := s.ctrl.Snapshot()
	selections := make([]cart.Selection, 0, len(args))
	for _, arg := range args {
		id, quantity, err := parseSelection(arg)
		if err != nil {
			return err
		}
		item, ok := snap.FindMenuItem(id)
		if !ok {
			return fmt.Errorf("no menu item %q", id)
		}
		if !item.IsAvailable {
			return fmt.Errorf("%s is not available", item.Name)
		}
		selections = append(selections, cart.Selection{Item: item, Quantity: quantity})
	}
	return s.then(s.ctrl.AddToCart(selections))
}

// parseSelection reads "id" or "id:quantity".
func parseSelection(arg string) (string, int, error) {
	id, qty, found := strings.Cut(arg, ":")
	if !found {
		return arg, 1, nil
	}
	quantity, err := strconv.Atoi(qty)
	if err != nil || id == "" {
		return "", 0, fmt.Errorf("invalid selection %q", arg)
	}
	return id, quantity, nil
}

func lineIndex(arg string) (int, error) {
	line, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid line %q", arg)
	}
	return line - 1, nil
}

func (s *Shell) updateQuantity(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: qty <line> <quantity>")
	}
	index, err := lineIndex(args[0])
	if err != nil {
		return err
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	return s.then(s.ctrl.UpdateQuantity(index, quantity))
}

func (s *Shell) setPayment(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: pay <type>")
	}
	method, ok := models.FindPaymentMethod(args[0])
	if !ok {
		return fmt.Errorf("unknown payment method %q", args[0])
	}
	s.payment = method
	fmt.Fprintf(s.out, "Payment: %s %s\n", method.Icon, method.Name)
	return nil
}

func (s *Shell) setDelivery(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delivery <option>")
	}
	option, ok := models.FindDeliveryOption(args[0])
	if !ok {
		return fmt.Errorf("unknown delivery option %q", args[0])
	}
	s.delivery = option
	fmt.Fprintf(s.out, "Delivery: %s\n", option.Label)
	if option.Surcharge > 0 {
		fmt.Fprintf(s.out, "Surcharge of %s is charged on delivery.\n", formatMoney(option.Surcharge))
	}
	return nil
}

// deliveryAddress prefers the default address of the signed in user.
func (s *Shell) deliveryAddress(ctx context.Context) models.Address {
	if s.profiles != nil && s.profiles.IsAuthenticated() {
		user, err := s.profiles.Profile(ctx)
		if err != nil {
			logger.Warn("could not load profile addresses", "error", err)
		} else if address, ok := user.DefaultAddress(); ok {
			return address.Address()
		}
	}
	return catalog.DemoAddresses[0].Address()
}

func (s *Shell) checkout(ctx context.Context) error {
	address := s.deliveryAddress(ctx)
	fmt.Fprintf(s.out, "Delivering to %s, %s %s with %s\n", address.Street, address.PostalCode, address.City, s.payment.Name)

	placed, err := s.ctrl.Checkout(ctx, session.CheckoutRequest{
		Address:        address,
		PaymentMethod:  s.payment,
		DeliveryOption: s.delivery,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Order %s total %s\n", placed.Reference(), formatMoney(placed.Draft.Totals.Total))
	s.render()
	return nil
}

func (s *Shell) home(ctx context.Context) error {
	for s.ctrl.Snapshot().View != session.ViewHome {
		if err := s.ctrl.Back(ctx); err != nil {
			return err
		}
	}
	s.render()
	return nil
}
