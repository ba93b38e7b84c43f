package recipe

import "errors"

var (
	ErrNoVisibleRecipes = errors.New("no recipe visible to user")
	ErrDataIntegrity    = errors.New("related row outside selected recipe set")
	ErrStoreUnavailable = errors.New("recipe store unavailable")
)
