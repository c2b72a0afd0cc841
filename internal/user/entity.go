// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/reviewboard/internal/policy"
)

type User struct {
	ID                   string    `db:"id"`
	Username             string    `db:"username"`
	Email                string    `db:"email"`
	FirstName            string    `db:"first_name"`
	LastName             string    `db:"last_name"`
	Bio                  string    `db:"bio"`
	Role                 string    `db:"role"`
	IsSuperuser          bool      `db:"is_superuser"`
	PasswordHash         *string   `db:"password_hash"`
	ConfirmationCodeHash *string   `db:"confirmation_code_hash"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

func (u *User) Actor() policy.Actor {
	return policy.Actor{
		ID:            u.ID,
		Username:      u.Username,
		Role:          policy.Role(u.Role),
		Superuser:     u.IsSuperuser,
		Authenticated: true,
	}
}
