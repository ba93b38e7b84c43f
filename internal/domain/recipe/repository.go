package recipe

import "context"

// Repository is the read-only recipe store. All List* methods are keyed
// by a recipe-id batch, exclude soft-deleted rows (reactions have none),
// and return rows already ordered per entity: ingredients, sections and
// steps ascending by position; notes, reactions and timeline events
// descending by creation time.
type Repository interface {
	// ReadTx runs fn against a consistent read-only snapshot so the
	// selected recipe cannot disappear between selection and the
	// related fetches.
	ReadTx(ctx context.Context, fn func(Repository) error) error

	// SelectRandomVisible picks up to limit recipes uniformly at random
	// among those visible to the user: owned directly, or owned by a
	// team the user holds an active membership in.
	SelectRandomVisible(ctx context.Context, userID int64, limit int) ([]Recipe, error)

	ListIngredients(ctx context.Context, recipeIDs []int64) ([]Ingredient, error)
	ListSections(ctx context.Context, recipeIDs []int64) ([]Section, error)
	ListSteps(ctx context.Context, recipeIDs []int64) ([]Step, error)
	ListNotes(ctx context.Context, recipeIDs []int64) ([]Note, error)
	ListReactions(ctx context.Context, recipeIDs []int64) ([]Reaction, error)
	ListTimelineEvents(ctx context.Context, recipeIDs []int64) ([]TimelineEvent, error)
}
