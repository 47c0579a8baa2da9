package http

import (
	"context"

	"github.com/go-chi/jwtauth/v5"

	"github.com/haergo/workforce-backend-go/internal/domain/user"
)

// actorFromContext rebuilds the acting principal from the verified token
// claims. AuthRequired has already run, so a failure here means a token
// minted without the expected claims.
func actorFromContext(ctx context.Context) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Actor{}, user.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)
	if userID == "" || !user.ValidRole(roleStr) {
		return user.Actor{}, user.ErrInvalidToken
	}

	employeeID, _ := claims["employee_id"].(string)
	return user.Actor{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       user.Role(roleStr),
	}, nil
}
