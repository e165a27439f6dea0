package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/klwxsrx/go-storefront/internal/storefront"
	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/app/service"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	"github.com/klwxsrx/go-storefront/pkg/auth"
)

var errUsage = errors.New("invalid usage")

type (
	command struct {
		usage   string
		summary string
		run     func(ctx context.Context, a app, args []string) error
	}

	app struct {
		container storefront.DependencyContainer
		out       io.Writer
	}
)

func newApp(container storefront.DependencyContainer, out io.Writer) app {
	return app{container: container, out: out}
}

var commands = map[string]command{
	"login":                {usage: "<username> <password>", summary: "start a session", run: login},
	"logout":               {summary: "end the session", run: logout},
	"whoami":               {summary: "show the logged in user", run: whoami},
	"products":             {usage: "[-category c] [-q text] [-min 0.00] [-max 0.00] [-in-stock] [-sort name|price_asc|price_desc]", summary: "list products", run: listProducts},
	"product":              {usage: "<id>", summary: "show a product", run: showProduct},
	"checkout":             {usage: "<productID>:<qty>...", summary: "place an order", run: checkout},
	"orders":               {summary: "list your orders", run: listOrders},
	"order":                {usage: "<id>", summary: "show an order", run: showOrder},
	"cancel-order":         {usage: "<id>", summary: "cancel a pending or paid order", run: cancelOrder},
	"profile":              {summary: "show your profile", run: showProfile},
	"update-profile":       {usage: "[-name n] [-email e] [-address a]", summary: "change your profile", run: updateProfile},
	"dashboard":            {summary: "show profile, orders and products", run: dashboard},
	"admin-create-product": {usage: "-name n -price 0.00 [-description d] [-category c] [-stock n]", summary: "create a product", run: createProduct},
	"admin-update-product": {usage: "<id> [-name n] [-price 0.00] [-description d] [-category c] [-stock n]", summary: "change a product", run: updateProduct},
	"admin-delete-product": {usage: "<id>", summary: "delete a product", run: deleteProduct},
	"admin-users":          {summary: "list users", run: listUsers},
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage: storefront <command> [arguments]")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	tw := newTable(w)
	for _, name := range names {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\n", name, commands[name].summary)
	}
	_ = tw.Flush()
}

func describeError(err error) string {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn), errors.Is(err, backend.ErrUnauthorized):
		return fmt.Sprintf("%v\nsession is not valid, run: storefront login <username> <password>", err)
	case errors.Is(err, auth.ErrPermissionDenied):
		return fmt.Sprintf("%v\nthe command requires the %s role", err, domain.RoleAdmin)
	default:
		return err.Error()
	}
}

func login(ctx context.Context, a app, args []string) error {
	if len(args) != 2 {
		return errUsage
	}

	user, err := a.container.AuthService.MustLoad().Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	printUser(a.out, *user)
	return nil
}

func logout(ctx context.Context, a app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}

	err := a.container.AuthService.MustLoad().Logout(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(a.out, "logged out")
	return nil
}

func whoami(ctx context.Context, a app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}

	user, err := a.container.AuthService.MustLoad().CurrentUser(ctx)
	if err != nil {
		return err
	}

	printUser(a.out, *user)
	return nil
}

func listProducts(ctx context.Context, a app, args []string) error {
	filter, err := parseProductFilter(args)
	if err != nil {
		return err
	}

	products, err := a.container.CatalogService.MustLoad().ListProducts(ctx, filter)
	if err != nil {
		return err
	}

	printProducts(a.out, products)
	return nil
}

func parseProductFilter(args []string) (domain.ProductFilter, error) {
	fs := newFlagSet("products")
	category := fs.String("category", "", "")
	query := fs.String("q", "", "")
	minPrice := fs.String("min", "", "")
	maxPrice := fs.String("max", "", "")
	inStock := fs.Bool("in-stock", false, "")
	sort := fs.String("sort", "", "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return domain.ProductFilter{}, errUsage
	}

	filter := domain.ProductFilter{
		Category:    *category,
		Query:       *query,
		InStockOnly: *inStock,
	}

	var err error
	if filter.Sort, err = domain.ParseProductSort(*sort); err != nil {
		return domain.ProductFilter{}, err
	}
	if filter.MinPriceCents, err = parseOptionalCents(*minPrice); err != nil {
		return domain.ProductFilter{}, err
	}
	if filter.MaxPriceCents, err = parseOptionalCents(*maxPrice); err != nil {
		return domain.ProductFilter{}, err
	}

	return filter, nil
}

func showProduct(ctx context.Context, a app, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	id, err := domain.ParseProductID(args[0])
	if err != nil {
		return err
	}

	product, err := a.container.CatalogService.MustLoad().GetProduct(ctx, id)
	if err != nil {
		return err
	}

	printProduct(a.out, *product)
	return nil
}

func checkout(ctx context.Context, a app, args []string) error {
	items, err := parseOrderItems(args)
	if err != nil {
		return err
	}

	checkoutService := a.container.CheckoutService.MustLoad()
	cart, err := checkoutService.BuildCart(ctx, items)
	if err != nil {
		return err
	}

	order, err := checkoutService.PlaceOrder(ctx, cart)
	if err != nil {
		return err
	}

	printOrder(a.out, *order)
	return nil
}

// parseOrderItems reads "<productID>:<qty>" pairs; a missing quantity means one.
func parseOrderItems(args []string) ([]backend.OrderItem, error) {
	if len(args) == 0 {
		return nil, errUsage
	}

	items := make([]backend.OrderItem, 0, len(args))
	for _, arg := range args {
		rawID, rawQuantity, hasQuantity := strings.Cut(arg, ":")
		id, err := domain.ParseProductID(rawID)
		if err != nil {
			return nil, err
		}

		quantity := 1
		if hasQuantity {
			quantity, err = strconv.Atoi(rawQuantity)
			if err != nil || quantity <= 0 {
				return nil, fmt.Errorf("%w: %q", domain.ErrInvalidQuantity, arg)
			}
		}

		items = append(items, backend.OrderItem{ProductID: id, Quantity: quantity})
	}

	return items, nil
}

func listOrders(ctx context.Context, a app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}

	orders, err := a.container.OrdersService.MustLoad().List(ctx)
	if err != nil {
		return err
	}

	printOrders(a.out, orders)
	return nil
}

func showOrder(ctx context.Context, a app, args []string) error {
	return withOrderID(args, func(id domain.OrderID) error {
		order, err := a.container.OrdersService.MustLoad().Get(ctx, id)
		if err != nil {
			return err
		}

		printOrder(a.out, *order)
		return nil
	})
}

func cancelOrder(ctx context.Context, a app, args []string) error {
	return withOrderID(args, func(id domain.OrderID) error {
		order, err := a.container.OrdersService.MustLoad().Cancel(ctx, id)
		if err != nil {
			return err
		}

		printOrder(a.out, *order)
		return nil
	})
}

func withOrderID(args []string, fn func(domain.OrderID) error) error {
	if len(args) != 1 {
		return errUsage
	}

	id, err := domain.ParseOrderID(args[0])
	if err != nil {
		return err
	}
	return fn(id)
}

func showProfile(ctx context.Context, a app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}

	profile, err := a.container.AccountService.MustLoad().Profile(ctx)
	if err != nil {
		return err
	}

	printProfile(a.out, *profile)
	return nil
}

func updateProfile(ctx context.Context, a app, args []string) error {
	update, err := parseProfileUpdate(args)
	if err != nil {
		return err
	}

	profile, err := a.container.AccountService.MustLoad().UpdateProfile(ctx, update)
	if err != nil {
		return err
	}

	printProfile(a.out, *profile)
	return nil
}

func parseProfileUpdate(args []string) (domain.ProfileUpdate, error) {
	fs := newFlagSet("update-profile")
	name := fs.String("name", "", "")
	email := fs.String("email", "", "")
	address := fs.String("address", "", "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return domain.ProfileUpdate{}, errUsage
	}

	var update domain.ProfileUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			update.FullName = name
		case "email":
			update.Email = email
		case "address":
			update.Address = address
		}
	})
	if update.IsEmpty() {
		return domain.ProfileUpdate{}, errUsage
	}

	return update, nil
}

func dashboard(ctx context.Context, a app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}

	data, err := a.container.DashboardService.MustLoad().Load(ctx)
	if err != nil {
		return err
	}

	printDashboard(a.out, *data)
	return nil
}

func createProduct(ctx context.Context, a app, args []string) error {
	update, err := parseProductUpdate("admin-create-product", args)
	if err != nil {
		return err
	}
	if update.Name == nil || update.PriceCents == nil {
		return errUsage
	}

	product, err := update.ApplyTo(domain.Product{})
	if err != nil {
		return err
	}

	created, err := a.container.AdminService.MustLoad().CreateProduct(ctx, product)
	if err != nil {
		return err
	}

	printProduct(a.out, *created)
	return nil
}

func updateProduct(ctx context.Context, a app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	id, err := domain.ParseProductID(args[0])
	if err != nil {
		return err
	}

	update, err := parseProductUpdate("admin-update-product", args[1:])
	if err != nil {
		return err
	}
	if update.IsEmpty() {
		return errUsage
	}

	product, err := a.container.AdminService.MustLoad().UpdateProduct(ctx, id, update)
	if err != nil {
		return err
	}

	printProduct(a.out, *product)
	return nil
}

func parseProductUpdate(name string, args []string) (domain.ProductUpdate, error) {
	fs := newFlagSet(name)
	productName := fs.String("name", "", "")
	description := fs.String("description", "", "")
	category := fs.String("category", "", "")
	price := fs.String("price", "", "")
	stock := fs.Int("stock", 0, "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return domain.ProductUpdate{}, errUsage
	}

	var (
		update domain.ProductUpdate
		err    error
	)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			update.Name = productName
		case "description":
			update.Description = description
		case "category":
			update.Category = category
		case "price":
			var cents int64
			cents, err = domain.ParseCents(*price)
			update.PriceCents = &cents
		case "stock":
			update.Stock = stock
		}
	})
	if err != nil {
		return domain.ProductUpdate{}, err
	}

	return update, nil
}

func deleteProduct(ctx context.Context, a app, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	id, err := domain.ParseProductID(args[0])
	if err != nil {
		return err
	}

	err = a.container.AdminService.MustLoad().DeleteProduct(ctx, id)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.out, "product %s deleted\n", id)
	return nil
}

func listUsers(ctx context.Context, a app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}

	users, err := a.container.AdminService.MustLoad().ListUsers(ctx)
	if err != nil {
		return err
	}

	printUsers(a.out, users)
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseOptionalCents(value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}

	cents, err := domain.ParseCents(value)
	if err != nil {
		return nil, err
	}
	return &cents, nil
}
