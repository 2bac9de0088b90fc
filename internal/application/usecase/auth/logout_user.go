package auth

import (
	"context"

	"github.com/ddduartediego/dimdim-backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute invalidates the refresh token. An already invalid token is not
// an error, logout is idempotent.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) error {
	_ = uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken)
	return nil
}
