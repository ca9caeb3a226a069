package handler

import (
	"context"
	"errors"

	"northpole/wishhub/internal/handler/middleware"
	"northpole/wishhub/internal/service"
)

var errPrincipalMismatch = errors.New("authenticated principal does not match required principal")

// contextAuthorizer approves an operation when the JWT-authenticated
// subject on the request context equals the principal the service
// demands. One check per call, nothing is cached across requests.
type contextAuthorizer struct{}

func NewContextAuthorizer() service.Authorizer {
	return contextAuthorizer{}
}

func (contextAuthorizer) Authorize(ctx context.Context, principal string) error {
	subject, ok := middleware.PrincipalFromContext(ctx)
	if !ok || subject != principal {
		return errPrincipalMismatch
	}
	return nil
}
