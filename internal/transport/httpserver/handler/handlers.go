package handler

import (
	recipedomain "recipe-api-go/internal/domain/recipe"
	"recipe-api-go/pkg/logger"
)

type Handlers struct {
	Recipes *recipedomain.Service
	log     logger.Logger
}

func New(recipes *recipedomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Recipes: recipes,
		log:     log,
	}
}
