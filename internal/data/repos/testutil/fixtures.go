package testutil

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/foodexplorer-backend/internal/data/db"
	"github.com/yungbote/foodexplorer-backend/internal/domain/user"
)

// SeedUser inserts a user whose password is the plain text "pw".
func SeedUser(tb testing.TB, ctx context.Context, client *db.Client, email, role string) *user.User {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	u := &user.User{
		Name:     "Seed " + role,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := client.DB().WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// CountRows counts rows of table matching column = value.
func CountRows(tb testing.TB, client *db.Client, table, column string, value any) int64 {
	tb.Helper()
	var n int64
	if err := client.DB().Table(table).Where(column+" = ?", value).Count(&n).Error; err != nil {
		tb.Fatalf("count %s: %v", table, err)
	}
	return n
}
