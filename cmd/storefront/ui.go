package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/wishcrate/storefront/client"
	"github.com/wishcrate/storefront/internal/app"
)

// ui is the console screen loop. It implements app.Navigator: a forced
// navigation (expired session) is recorded and picked up between
// commands, since the console cannot interrupt a pending prompt.
type ui struct {
	app *app.App
	in  *bufio.Scanner
	out io.Writer

	screen     string
	screenArg  int64
	forceLogin atomic.Bool
	quit       bool
}

func newUI(in io.Reader, out io.Writer) *ui {
	return &ui{
		in:     bufio.NewScanner(in),
		out:    out,
		screen: "home",
	}
}

// NavigateLogin implements app.Navigator.
func (u *ui) NavigateLogin() { u.forceLogin.Store(true) }

func (u *ui) Run() {
	u.printf("WishCrate storefront\n")
	for !u.quit {
		if u.forceLogin.Swap(false) {
			u.printf("\nYour session has expired. Please sign in again.\n")
			u.screen = "login"
		}

		scope := app.NewViewScope(context.Background())
		switch u.screen {
		case "home":
			u.homeScreen(scope.Context())
		case "login":
			u.loginScreen(scope.Context())
		case "register":
			u.registerScreen(scope.Context())
		case "products":
			u.productsScreen(scope.Context())
		case "product":
			u.productScreen(scope.Context(), u.screenArg)
		case "cart":
			u.cartScreen(scope.Context())
		case "checkout":
			u.checkoutScreen(scope.Context())
		case "orders":
			u.ordersScreen(scope.Context())
		case "admin":
			u.adminScreen(scope.Context())
		default:
			u.screen = "home"
		}
		scope.Teardown()
	}
	u.printf("Bye.\n")
}

func (u *ui) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

// prompt reads one line. Returns false on EOF, which quits the loop.
func (u *ui) prompt(label string) (string, bool) {
	u.printf("%s> ", label)
	if !u.in.Scan() {
		u.quit = true
		return "", false
	}
	return strings.TrimSpace(u.in.Text()), true
}

func (u *ui) reportError(err error) {
	if client.IsUnauthorized(err) {
		// The coordinator has already queued the login navigation.
		return
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		u.printf("Error: %s\n", apiErr.Message)
		return
	}
	u.printf("Error: %v\n", err)
}

func money(d interface{ StringFixed(int32) string }) string {
	return "$" + d.StringFixed(2)
}

// =============================================================================
// Screens
// =============================================================================

func (u *ui) homeScreen(ctx context.Context) {
	featured, err := u.app.LoadFeatured(ctx)
	if err != nil {
		u.reportError(err)
	}

	u.printf("\n== Home ==\n")
	if session := u.app.Session(); session.Authenticated() {
		if p := session.Profile(); p != nil {
			u.printf("Signed in as %s %s (%s)\n", p.FirstName, p.LastName, p.Role)
		}
	}
	if len(featured) > 0 {
		u.printf("Featured:\n")
		for _, p := range featured {
			u.printf("  [%d] %-24s %s\n", p.ID, p.Name, money(p.EffectivePrice()))
		}
	}

	u.printf("Commands: browse, view <id>, cart, orders, login, register, logout")
	if u.app.Session().CanAccessAdmin() {
		u.printf(", admin")
	}
	u.printf(", quit\n")

	line, ok := u.prompt("home")
	if !ok {
		return
	}
	u.dispatchCommon(line)
}

func (u *ui) loginScreen(ctx context.Context) {
	u.printf("\n== Sign in ==\n")
	email, ok := u.prompt("email")
	if !ok || email == "" {
		u.screen = "home"
		return
	}
	password, ok := u.prompt("password")
	if !ok {
		return
	}

	if err := u.app.SignIn(ctx, email, password); err != nil {
		u.printf("Sign in failed: %v\n", err)
		return
	}
	u.printf("Welcome back.\n")
	u.screen = "home"
}

func (u *ui) registerScreen(ctx context.Context) {
	u.printf("\n== Create account ==\n")
	first, ok := u.prompt("first name")
	if !ok {
		return
	}
	last, ok := u.prompt("last name")
	if !ok {
		return
	}
	email, ok := u.prompt("email")
	if !ok {
		return
	}
	password, ok := u.prompt("password")
	if !ok {
		return
	}

	err := u.app.SignUp(ctx, client.RegisterRequest{
		FirstName: first, LastName: last, Email: email, Password: password,
	})
	if err != nil {
		u.reportError(err)
		return
	}
	u.printf("Account created.\n")
	u.screen = "home"
}

func (u *ui) productsScreen(ctx context.Context) {
	params := app.BrowseParams{}
	for {
		page, err := u.app.BrowseProducts(ctx, params)
		if err != nil {
			u.reportError(err)
			u.screen = "home"
			return
		}

		u.printf("\n== Products (page %d/%d, %d total) ==\n",
			page.Number+1, max(page.TotalPages, 1), page.TotalElements)
		for _, p := range page.Content {
			u.printf("  [%d] %-24s %-12s %s", p.ID, p.Name, p.Brand, money(p.EffectivePrice()))
			if p.StockQuantity == 0 {
				u.printf("  (out of stock)")
			}
			u.printf("\n")
		}

		line, ok := u.prompt("products (view <id> | search <kw> | next | prev | back)")
		if !ok {
			return
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "view":
			if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
				u.screen, u.screenArg = "product", id
				return
			}
			u.printf("Usage: view <id>\n")
		case "search":
			params.Keyword = arg
			params.Page = 0
		case "next":
			if params.Page+1 < page.TotalPages {
				params.Page++
			}
		case "prev":
			if params.Page > 0 {
				params.Page--
			}
		case "back", "":
			u.screen = "home"
			return
		default:
			u.dispatchCommon(line)
			return
		}
	}
}

func (u *ui) productScreen(ctx context.Context, id int64) {
	p, err := u.app.LoadProduct(ctx, id)
	if err != nil {
		u.reportError(err)
		u.screen = "products"
		return
	}

	u.printf("\n== %s ==\n", p.Name)
	if p.Brand != "" {
		u.printf("Brand: %s\n", p.Brand)
	}
	u.printf("Price: %s", money(p.Price))
	if p.DiscountPrice != nil {
		u.printf(" (now %s)", money(*p.DiscountPrice))
	}
	u.printf("\nIn stock: %d\n", p.StockQuantity)
	if p.Description != "" {
		u.printf("%s\n", p.Description)
	}

	line, ok := u.prompt("product (add <qty> | back)")
	if !ok {
		return
	}
	cmd, arg := splitCommand(line)
	switch cmd {
	case "add":
		qty, err := strconv.Atoi(arg)
		if err != nil {
			qty = 1
		}
		if err := u.app.AddToCart(ctx, p.ID, qty); err != nil {
			u.reportError(err)
			return
		}
		u.printf("Added. Cart now holds %d item(s).\n", u.app.CartState().ItemCount())
	case "back", "":
		u.screen = "products"
	default:
		u.dispatchCommon(line)
	}
}

func (u *ui) cartScreen(ctx context.Context) {
	if err := u.app.LoadCart(ctx); err != nil {
		u.reportError(err)
		u.screen = "home"
		return
	}

	snap := u.app.CartState().Snapshot()
	u.printf("\n== Cart ==\n")
	if snap == nil || len(snap.Items) == 0 {
		u.printf("Your cart is empty.\n")
	} else {
		for _, item := range snap.Items {
			u.printf("  [%d] %-24s x%d  %s\n", item.ID, item.ProductName, item.Quantity, money(item.Subtotal))
		}
		u.printf("Total: %s (%d items)\n", money(snap.TotalAmount), snap.TotalItems)
	}

	line, ok := u.prompt("cart (qty <line> <n> | remove <line> | clear | checkout | back)")
	if !ok {
		return
	}
	cmd, arg := splitCommand(line)
	switch cmd {
	case "qty":
		parts := strings.Fields(arg)
		if len(parts) != 2 {
			u.printf("Usage: qty <line> <n>\n")
			return
		}
		lineID, err1 := strconv.ParseInt(parts[0], 10, 64)
		qty, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			u.printf("Usage: qty <line> <n>\n")
			return
		}
		if err := u.app.ChangeQuantity(ctx, lineID, qty); err != nil {
			u.reportError(err)
		}
	case "remove":
		lineID, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			u.printf("Usage: remove <line>\n")
			return
		}
		if err := u.app.RemoveLine(ctx, lineID); err != nil {
			u.reportError(err)
		}
	case "clear":
		if err := u.app.ClearCart(ctx); err != nil {
			u.reportError(err)
		}
	case "checkout":
		u.screen = "checkout"
	case "back", "":
		u.screen = "home"
	default:
		u.dispatchCommon(line)
	}
}

func (u *ui) checkoutScreen(ctx context.Context) {
	u.printf("\n== Checkout ==\n")

	addrs, err := u.app.LoadAddresses(ctx)
	if err != nil {
		u.reportError(err)
		u.screen = "cart"
		return
	}

	var addr client.ShippingAddress
	if len(addrs) > 0 {
		u.printf("Saved addresses:\n")
		for i, a := range addrs {
			u.printf("  [%d] %s, %s, %s\n", i+1, a.AddressLine1, a.City, a.Country)
		}
		line, ok := u.prompt("use saved # or press enter for new")
		if !ok {
			return
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(addrs) {
			a := addrs[n-1]
			addr = client.ShippingAddress{
				FullName: a.FullName, PhoneNumber: a.PhoneNumber,
				AddressLine1: a.AddressLine1, AddressLine2: a.AddressLine2,
				City: a.City, State: a.State, Country: a.Country, ZipCode: a.ZipCode,
			}
		}
	}
	if addr.AddressLine1 == "" {
		if addr, ok := u.readAddress(); ok {
			if save, ok2 := u.prompt("save this address? (y/n)"); ok2 && save == "y" {
				if _, err := u.app.SaveAddress(ctx, client.Address{
					FullName: addr.FullName, PhoneNumber: addr.PhoneNumber,
					AddressLine1: addr.AddressLine1, AddressLine2: addr.AddressLine2,
					City: addr.City, State: addr.State, Country: addr.Country,
					ZipCode: addr.ZipCode, Type: client.AddressHome,
				}); err != nil {
					u.reportError(err)
				}
			}
			u.placeOrder(ctx, addr)
			return
		}
		u.screen = "cart"
		return
	}
	u.placeOrder(ctx, addr)
}

func (u *ui) readAddress() (client.ShippingAddress, bool) {
	var addr client.ShippingAddress
	fields := []struct {
		label string
		dst   *string
	}{
		{"full name", &addr.FullName},
		{"phone", &addr.PhoneNumber},
		{"address line", &addr.AddressLine1},
		{"city", &addr.City},
		{"state", &addr.State},
		{"country", &addr.Country},
		{"zip", &addr.ZipCode},
	}
	for _, f := range fields {
		v, ok := u.prompt(f.label)
		if !ok {
			return addr, false
		}
		*f.dst = v
	}
	return addr, true
}

func (u *ui) placeOrder(ctx context.Context, addr client.ShippingAddress) {
	u.printf("Payment methods: CREDIT_CARD, DEBIT_CARD, PAYPAL, STRIPE, COD\n")
	methodStr, ok := u.prompt("payment method")
	if !ok {
		return
	}
	method := client.PaymentMethod(strings.ToUpper(methodStr))

	order, err := u.app.PlaceOrder(ctx, addr, method)
	if err != nil {
		u.reportError(err)
		return
	}
	u.printf("Order %s placed. Total %s.\n", order.OrderNumber, money(order.TotalAmount))
	u.screen = "orders"
}

func (u *ui) ordersScreen(ctx context.Context) {
	page, err := u.app.LoadOrders(ctx, 0, 20)
	if err != nil {
		u.reportError(err)
		u.screen = "home"
		return
	}

	u.printf("\n== Orders ==\n")
	if len(page.Content) == 0 {
		u.printf("No orders yet.\n")
	}
	for _, o := range page.Content {
		u.printf("  [%d] %s  %-10s %s  %s\n",
			o.ID, o.OrderNumber, o.Status, money(o.TotalAmount),
			o.OrderDate.Format("2006-01-02"))
	}

	line, ok := u.prompt("orders (show <id> | cancel <id> | back)")
	if !ok {
		return
	}
	cmd, arg := splitCommand(line)
	switch cmd {
	case "show":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			u.printf("Usage: show <id>\n")
			return
		}
		order, err := u.app.LoadOrder(ctx, id)
		if err != nil {
			u.reportError(err)
			return
		}
		u.printOrder(order)
	case "cancel":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			u.printf("Usage: cancel <id>\n")
			return
		}
		order, err := u.app.CancelOrder(ctx, id)
		if err != nil {
			u.reportError(err)
			return
		}
		u.printf("Order %s is now %s.\n", order.OrderNumber, order.Status)
	case "back", "":
		u.screen = "home"
	default:
		u.dispatchCommon(line)
	}
}

func (u *ui) printOrder(o *client.Order) {
	u.printf("\nOrder %s (%s)\n", o.OrderNumber, o.Status)
	for _, item := range o.Items {
		name := "?"
		if item.Product != nil {
			name = item.Product.Name
		}
		u.printf("  %-24s x%d  %s\n", name, item.Quantity, money(item.Subtotal))
	}
	u.printf("Subtotal %s + tax %s + shipping %s = %s\n",
		money(o.Subtotal), money(o.Tax), money(o.ShippingCost), money(o.TotalAmount))
	if o.ShippingAddress != nil {
		u.printf("Ships to: %s, %s\n", o.ShippingAddress.AddressLine1, o.ShippingAddress.City)
	}
}

func (u *ui) adminScreen(ctx context.Context) {
	if !u.app.Session().CanAccessAdmin() {
		u.printf("Admin access required.\n")
		u.screen = "home"
		return
	}

	table, err := u.app.LoadAdminProducts(ctx)
	if err != nil {
		u.reportError(err)
		u.screen = "home"
		return
	}

	for {
		u.printf("\n== Admin: products (%d) ==\n", len(table))
		for _, p := range table {
			u.printf("  [%d] %-24s %-12s %s  stock %d\n",
				p.ID, p.Name, p.Brand, money(p.EffectivePrice()), p.StockQuantity)
		}

		line, ok := u.prompt("admin (filter <q> | delete <id> | stats | back)")
		if !ok {
			return
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "filter":
			table = u.app.FilterAdminProducts(arg)
		case "delete":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				u.printf("Usage: delete <id>\n")
				continue
			}
			if err := u.app.DeleteProduct(ctx, id); err != nil {
				u.reportError(err)
				continue
			}
			table = u.app.AdminProducts()
		case "stats":
			stats, err := u.app.LoadStats(ctx)
			if err != nil {
				u.reportError(err)
				continue
			}
			u.printf("Products: %d (%d active)  Orders: %d (%d pending)  Users: %d  Categories: %d\n",
				stats.TotalProducts, stats.ActiveProducts,
				stats.TotalOrders, stats.PendingOrders,
				stats.TotalUsers, stats.TotalCategories)
		case "back", "":
			u.screen = "home"
			return
		default:
			u.dispatchCommon(line)
			return
		}
	}
}

// dispatchCommon handles the commands available from any screen.
func (u *ui) dispatchCommon(line string) {
	cmd, arg := splitCommand(line)
	switch cmd {
	case "browse":
		u.screen = "products"
	case "view":
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
			u.screen, u.screenArg = "product", id
		}
	case "cart":
		u.screen = "cart"
	case "orders":
		u.screen = "orders"
	case "admin":
		u.screen = "admin"
	case "login":
		u.screen = "login"
	case "register":
		u.screen = "register"
	case "logout":
		if err := u.app.SignOut(); err != nil {
			u.printf("Sign out failed: %v\n", err)
		} else {
			u.printf("Signed out.\n")
		}
		u.screen = "home"
	case "quit", "exit":
		u.quit = true
	case "":
	default:
		u.printf("Unknown command %q\n", cmd)
	}
}

func splitCommand(line string) (string, string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}
