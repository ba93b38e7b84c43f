package recipe

import (
	"context"
	"fmt"
)

// selectionLimit is fixed at one: the endpoint serves a single random
// recipe as a stand-in for a detail view. The fetch layer still batches
// by id set so the limit can grow without query changes.
const selectionLimit = 1

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RandomDetail selects one recipe visible to the user uniformly at
// random and assembles its full document. The selection and all related
// fetches share one read-only snapshot.
func (s *Service) RandomDetail(ctx context.Context, userID int64) (*Detail, error) {
	var detail *Detail

	err := s.repo.ReadTx(ctx, func(tx Repository) error {
		recipes, err := tx.SelectRandomVisible(ctx, userID, selectionLimit)
		if err != nil {
			return fmt.Errorf("select recipes: %w", err)
		}
		if len(recipes) == 0 {
			return ErrNoVisibleRecipes
		}

		recipeIDs := make([]int64, 0, len(recipes))
		for _, r := range recipes {
			recipeIDs = append(recipeIDs, r.ID)
		}

		ingredients, err := tx.ListIngredients(ctx, recipeIDs)
		if err != nil {
			return fmt.Errorf("list ingredients: %w", err)
		}
		sections, err := tx.ListSections(ctx, recipeIDs)
		if err != nil {
			return fmt.Errorf("list sections: %w", err)
		}
		steps, err := tx.ListSteps(ctx, recipeIDs)
		if err != nil {
			return fmt.Errorf("list steps: %w", err)
		}
		notes, err := tx.ListNotes(ctx, recipeIDs)
		if err != nil {
			return fmt.Errorf("list notes: %w", err)
		}
		reactions, err := tx.ListReactions(ctx, recipeIDs)
		if err != nil {
			return fmt.Errorf("list reactions: %w", err)
		}
		events, err := tx.ListTimelineEvents(ctx, recipeIDs)
		if err != nil {
			return fmt.Errorf("list timeline events: %w", err)
		}

		detail, err = assemble(recipes[0], recipeIDs, ingredients, sections, steps, notes, reactions, events)
		return err
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}
