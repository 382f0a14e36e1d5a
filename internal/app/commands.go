package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dragon98048/EverstMart/internal/checkout"
	"github.com/dragon98048/EverstMart/internal/domain/address"
	"github.com/dragon98048/EverstMart/internal/domain/cart"
	"github.com/dragon98048/EverstMart/internal/geocode"
	"github.com/dragon98048/EverstMart/internal/session"
	"github.com/dragon98048/EverstMart/internal/storeapi"
)

const usage = `usage: storefront <command> [options]

commands:
  products [-category C] [-search S]   list the catalog
  login <email> <password>             sign in and store the session
  logout                               clear session and cart
  cart                                 show the cart
  add <product-id> [qty]               add a product to the cart
  qty <product-id> <n>                 set a line item's quantity
  remove <product-id>                  remove a line item
  clear                                empty the cart
  locate                               resolve the current location to an address
  resolve <query>                      resolve a place query to an address
  checkout [options]                   place the order (see checkout -h)
  orders                               show order history
  status                               show profile and recent orders
`

func dispatch(ctx context.Context, c *Client, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("command required")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return cmdProducts(ctx, c, rest)
	case "login":
		return cmdLogin(ctx, c, rest)
	case "logout":
		return c.Session.Clear(ctx)
	case "cart":
		return cmdShowCart(ctx, c)
	case "add":
		return cmdAdd(ctx, c, rest)
	case "qty":
		return cmdQty(ctx, c, rest)
	case "remove":
		return cmdRemove(ctx, c, rest)
	case "clear":
		return c.Cart.Clear(ctx)
	case "locate":
		return cmdLocate(ctx, c)
	case "resolve":
		return cmdResolve(ctx, c, rest)
	case "checkout":
		return cmdCheckout(ctx, c, rest)
	case "orders":
		return cmdOrders(ctx, c)
	case "status":
		return cmdStatus(ctx, c)
	default:
		fmt.Fprint(os.Stderr, usage)
		return errors.Errorf("unknown command %q", cmd)
	}
}

func cmdProducts(ctx context.Context, c *Client, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	category := fs.String("category", "", "filter by category")
	search := fs.String("search", "", "filter by name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := c.API.Products(ctx, storeapi.ProductFilter{Category: *category, Search: *search})
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%-24s  %-20s  ₹%-8s  %s %s\n",
			p.ID, p.Name, p.Price.StringFixed(2), p.UnitQuantity, p.Unit)
	}
	return nil
}

func cmdLogin(ctx context.Context, c *Client, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}
	token, profile, err := c.API.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	err = c.Session.SaveLogin(ctx, token, session.User{
		ID:    profile.ID,
		Name:  profile.Name,
		Email: profile.Email,
		Phone: profile.Phone,
	})
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", profile.Name)
	return nil
}

func cmdShowCart(ctx context.Context, c *Client) error {
	items, err := c.Cart.Load(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, item := range items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Printf("%-24s  %-20s  %2d × ₹%-8s = ₹%s\n",
			item.ProductID, item.Name, item.Quantity, item.UnitPrice.StringFixed(2), lineTotal.StringFixed(2))
	}
	fmt.Printf("total: %d items, ₹%s\n", cart.TotalItems(items), cart.TotalPrice(items).StringFixed(2))
	return nil
}

func cmdAdd(ctx context.Context, c *Client, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: add <product-id> [qty]")
	}
	qty := 1
	if len(args) == 2 {
		var err error
		qty, err = strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrap(err, "parse quantity")
		}
	}

	product, err := c.API.ProductByID(ctx, args[0])
	if err != nil {
		return err
	}
	return c.Cart.Add(ctx, product.CartProduct(), qty)
}

func cmdQty(ctx context.Context, c *Client, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: qty <product-id> <n>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Wrap(err, "parse quantity")
	}
	return c.Cart.UpdateQuantity(ctx, args[0], n)
}

func cmdRemove(ctx context.Context, c *Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <product-id>")
	}
	return c.Cart.Remove(ctx, args[0])
}

func cmdLocate(ctx context.Context, c *Client) error {
	fields, coord, err := geocode.LocateAddress(ctx, c.Location, c.Geocoder)
	if err != nil {
		return describeLocationError(err)
	}
	fmt.Printf("location: %f,%f\n", coord.Latitude, coord.Longitude)
	printFields(fields)
	return nil
}

func printFields(fields address.Fields) {
	fmt.Printf("street:   %s\n", fields.Street)
	fmt.Printf("area:     %s\n", fields.Area)
	fmt.Printf("city:     %s, %s - %s\n", fields.City, fields.State, fields.ZipCode)
}

func cmdResolve(ctx context.Context, c *Client, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: resolve <query>")
	}
	fields, err := c.Geocoder.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return describeLocationError(err)
	}
	printFields(fields)
	return nil
}

func cmdCheckout(ctx context.Context, c *Client, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	method := fs.String("method", "cod", "payment method: cod or online")
	useLocation := fs.Bool("use-location", false, "resolve the delivery address from the current location")
	out := fs.String("out", "payment.html", "file for the payment gateway form (online only)")

	name := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	street := fs.String("street", "", "house/flat and street")
	landmark := fs.String("landmark", "", "landmark")
	area := fs.String("area", "", "area")
	city := fs.String("city", "", "city")
	state := fs.String("state", "", "state")
	zip := fs.String("zip", "", "postal code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	addr := address.ShippingAddress{}

	// Prefill contact details from the stored profile, as the cart view
	// does on load.
	if user := c.Session.CurrentUser(ctx); user != nil {
		addr.Name = user.Name
		addr.Phone = user.Phone
	}

	if *useLocation {
		fields, coord, err := geocode.LocateAddress(ctx, c.Location, c.Geocoder)
		if err != nil {
			return describeLocationError(err)
		}
		addr = addr.Apply(fields.Patch())
		addr.Location = &coord
	}

	// Explicit flags override both prefill and resolution; unset flags
	// leave resolved or prefilled values alone.
	patch := address.Patch{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "phone":
			patch.Phone = phone
		case "street":
			patch.Street = street
		case "landmark":
			patch.Landmark = landmark
		case "area":
			patch.Area = area
		case "city":
			patch.City = city
		case "state":
			patch.State = state
		case "zip":
			patch.ZipCode = zip
		}
	})
	addr = addr.Apply(patch)

	switch *method {
	case "cod":
		if err := c.Checkout.SubmitCOD(ctx, addr); err != nil {
			return describeCheckoutError(err)
		}
		fmt.Println("order placed, pay on delivery")
		return nil
	case "online":
		post, err := c.Checkout.SubmitOnlinePayment(ctx, addr)
		if err != nil {
			return describeCheckoutError(err)
		}
		doc, err := post.HTML()
		if err != nil {
			return err
		}
		if err := os.WriteFile(*out, doc, 0o600); err != nil {
			return errors.Wrap(err, "write gateway form")
		}
		fmt.Printf("open %s in a browser to complete the payment\n", *out)
		return nil
	default:
		return errors.Errorf("unknown payment method %q", *method)
	}
}

func cmdOrders(ctx context.Context, c *Client) error {
	orders, err := c.API.MyOrders(ctx)
	if err != nil {
		return err
	}
	printOrders(orders)
	return nil
}

func cmdStatus(ctx context.Context, c *Client) error {
	var (
		profile storeapi.Profile
		orders  []storeapi.OrderSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = c.API.Profile(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = c.API.MyOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", profile.Name, profile.Email)
	printOrders(orders)
	return nil
}

func printOrders(orders []storeapi.OrderSummary) {
	for _, o := range orders {
		fmt.Printf("%-24s  ₹%-10s  %2d items  %-10s  %s\n",
			o.ID, o.TotalAmount.StringFixed(2), o.ItemCount, o.Status,
			o.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

// describeLocationError maps the location failure taxonomy onto the
// messages shown to the user. Each cause keeps its own message.
func describeLocationError(err error) error {
	switch {
	case errors.Is(err, geocode.ErrPermissionDenied):
		return errors.New("location error: please enable location permission")
	case errors.Is(err, geocode.ErrUnavailable):
		return errors.New("location error: location unavailable")
	case errors.Is(err, geocode.ErrLocationTimeout):
		return errors.New("location error: request timeout")
	case errors.Is(err, geocode.ErrNoResults), errors.Is(err, geocode.ErrMissingAPIKey):
		return errors.New("location detected but the address could not be resolved, please enter it manually")
	default:
		return err
	}
}

func describeCheckoutError(err error) error {
	switch {
	case errors.Is(err, checkout.ErrNotAuthenticated):
		return errors.New("please login first")
	case errors.Is(err, checkout.ErrMissingPhone):
		return errors.New("please provide a phone number (-phone)")
	case errors.Is(err, checkout.ErrMissingStreet):
		return errors.New("please provide a delivery address (-street) or use -use-location")
	default:
		return err
	}
}
