// Command shop is a small storefront client: it drives the data access
// layer against a running backend, keeping its catalog mirror and cart in a
// local sqlite file. The bearer token is persisted in SHOP_TOKEN between
// invocations.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"storefront/internal/api"
	"storefront/internal/config"
	"storefront/internal/data"
	"storefront/internal/session"
	"storefront/internal/store"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.Load()

	cacheStore, err := store.Open(cfg.CachePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open cache")
	}

	tokens := session.NewHolder()
	client := api.NewClient(cfg.APIBaseURL, tokens)
	repo := data.NewRepository(cacheStore, client, tokens, log)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := run(ctx, repo, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Msg(os.Args[1])
	}
}

func run(ctx context.Context, repo *data.Repository, cmd string, args []string) error {
	switch cmd {
	case "register":
		if len(args) < 3 {
			return fmt.Errorf("usage: shop register <username> <email> <password> [dateOfBirth]")
		}
		req := api.RegisterRequest{Username: args[0], Email: args[1], Password: args[2]}
		if len(args) > 3 {
			req.DateOfBirth = args[3]
		}
		if err := repo.RegisterRemote(ctx, req); err != nil {
			return err
		}
		fmt.Println("registered; run `shop login` to sign in")
		return nil

	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: shop login <username> <password>")
		}
		user, err := repo.LoginRemote(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		token, _ := repo.Token()
		fmt.Printf("logged in as %s\nexport SHOP_TOKEN=%s\n", user.Username, token)
		return nil

	case "logout":
		restore(ctx, repo)
		repo.Logout(ctx)
		fmt.Println("logged out; unset SHOP_TOKEN")
		return nil

	case "products":
		restore(ctx, repo)
		repo.RefreshProducts(ctx)
		if len(args) == 1 {
			for _, p := range <-repo.ProductsByCategory(ctx, args[0]) {
				fmt.Printf("%4d  %-24s %8s  %s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Category)
			}
			return nil
		}
		for _, p := range <-repo.Products(ctx) {
			fmt.Printf("%4d  %-24s %8s  %s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Category)
		}
		return nil

	case "categories":
		restore(ctx, repo)
		repo.RefreshProducts(ctx)
		for _, cat := range <-repo.Categories(ctx) {
			fmt.Println(cat)
		}
		return nil

	case "cart":
		for _, item := range <-repo.CartItems(ctx) {
			fmt.Printf("%4d  %-24s x%-3d %8s\n", item.ProductID, item.Name, item.Quantity, item.Price.StringFixed(2))
		}
		return nil

	case "add", "inc", "dec", "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: shop %s <productID>", cmd)
		}
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("bad product id %q", args[0])
		}
		switch cmd {
		case "add":
			return repo.AddToCart(ctx, uint(id))
		case "inc":
			return repo.IncreaseQuantity(ctx, uint(id))
		case "dec":
			return repo.DecreaseQuantity(ctx, uint(id))
		default:
			return repo.RemoveFromCart(ctx, uint(id))
		}

	case "clear":
		return repo.ClearCart(ctx)

	case "order":
		restore(ctx, repo)
		orderID, err := repo.PlaceOrder(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("order %d placed\n", orderID)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// restore re-populates the session from the persisted token, if any. Reads
// from the local cache work without it; remote calls will be rejected by the
// server when it is missing.
func restore(ctx context.Context, repo *data.Repository) {
	token := os.Getenv("SHOP_TOKEN")
	if token == "" {
		return
	}
	if _, err := repo.RestoreSession(ctx, token); err != nil {
		fmt.Fprintln(os.Stderr, "session expired, continuing anonymously")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shop <command> [args]

  register <username> <email> <password> [dateOfBirth]
  login <username> <password>
  logout
  products [category]
  categories
  cart
  add|inc|dec|rm <productID>
  clear
  order`)
}
