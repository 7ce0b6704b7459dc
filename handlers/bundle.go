package handlers

import (
	userRepoPkg "citylinker/database/repository/user"
)

// HandlerBundle aggregates the route handlers and the repositories the
// route-level middleware needs.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Categories *CategoryHandler
	Providers  *ProviderHandler
	Reviews    *ReviewHandler
	Users      *UserHandler
	Admin      *AdminHandler
	Auth       *AuthHandler
	Storage    *StorageHandler
}
