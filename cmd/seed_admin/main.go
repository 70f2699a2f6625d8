// Command seed_admin creates an admin account, or promotes an existing one.
// Registration over HTTP only ever creates customers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/foodexplorer-backend/internal/app"
	"github.com/yungbote/foodexplorer-backend/internal/services"
)

func main() {
	var (
		email    = flag.String("email", "", "admin email (required)")
		name     = flag.String("name", "Admin", "display name used when the account is created")
		password = flag.String("password", "", "password; required for a new account, resets it for an existing one")
	)
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "-email is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	u, err := a.Services.User.EnsureAdmin(ctx, services.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		a.Log.Error("Seed admin failed", "error", err)
		a.Close()
		os.Exit(1)
	}
	fmt.Printf("admin ready: id=%d email=%s\n", u.ID, u.Email)
}
