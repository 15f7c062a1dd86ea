package commands

import (
	"context"
	"strings"

	"rbxasset/internal/application"
	"rbxasset/internal/domain"
	"rbxasset/internal/ports"
)

// ResolveCommand resolves a raw asset token, e.g. "logo.png"
type ResolveCommand struct {
	assets ports.AssetResolver
	Token  string
}

// NewResolveCommand creates a new ResolveCommand
func NewResolveCommand(assets ports.AssetResolver, token string) *ResolveCommand {
	return &ResolveCommand{
		assets: assets,
		Token:  token,
	}
}

// Validate checks the token is usable
func (c *ResolveCommand) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return &application.ValidationError{
			Field:   "token",
			Message: "token is required",
		}
	}
	return nil
}

// Execute resolves the token. Unknown and ambiguous tokens are reported as
// domain.Unresolved, not as errors.
func (c *ResolveCommand) Execute(ctx context.Context) (domain.Resolution, error) {
	if err := c.Validate(); err != nil {
		return domain.Unresolved, err
	}
	if c.assets == nil {
		return domain.Unresolved, application.ErrNoCoordinator
	}
	return c.assets.Resolve(ctx, c.Token)
}
