package testutil

import (
	"context"

	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
)

const DemoPassword = "test123"

var (
	User1 = &entity.User{
		Base:  entity.Base{ID: "user1"},
		Email: "test@demo.nl",
		Name:  "Demo User",
	}

	User2 = &entity.User{
		Base:  entity.Base{ID: "user2"},
		Email: "second@demo.nl",
		Name:  "Second User",
	}
)

// CreateFixtureDb inserts the fixture users, whose password is DemoPassword,
// into the database of ctx.
func CreateFixtureDb(ctx context.Context) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	for _, u := range []*entity.User{User1, User2} {
		user := *u
		user.PasswordHash = string(hash)
		if err := xcontext.DB(ctx).Create(&user).Error; err != nil {
			panic(err)
		}
	}
}
