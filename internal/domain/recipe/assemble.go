package recipe

import (
	"fmt"
	"sort"
)

// assemble builds the detail document from the selected recipe and its
// related rows. Every non-reaction row must belong to a recipe in
// recipeIDs; a violation is a DataIntegrity fault. Assembly is
// all-or-nothing.
func assemble(r Recipe, recipeIDs []int64, ingredients []Ingredient, sections []Section, steps []Step, notes []Note, reactions []Reaction, events []TimelineEvent) (*Detail, error) {
	idSet := make(map[int64]struct{}, len(recipeIDs))
	for _, id := range recipeIDs {
		idSet[id] = struct{}{}
	}

	entries := make([]IngredientEntry, 0, len(ingredients)+len(sections))
	for i := range ingredients {
		if _, ok := idSet[ingredients[i].RecipeID]; !ok {
			return nil, fmt.Errorf("%w: ingredient %d references recipe %d", ErrDataIntegrity, ingredients[i].ID, ingredients[i].RecipeID)
		}
		entries = append(entries, IngredientEntry{Kind: EntryIngredient, Ingredient: &ingredients[i]})
	}
	for i := range sections {
		if _, ok := idSet[sections[i].RecipeID]; !ok {
			return nil, fmt.Errorf("%w: section %d references recipe %d", ErrDataIntegrity, sections[i].ID, sections[i].RecipeID)
		}
		entries = append(entries, IngredientEntry{Kind: EntrySection, Section: &sections[i]})
	}
	// The two sources are each position-sorted but not globally; a
	// stable sort makes the merge hold across sources while keeping
	// ingredients ahead of sections on equal positions.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Position() < entries[j].Position()
	})

	for _, s := range steps {
		if _, ok := idSet[s.RecipeID]; !ok {
			return nil, fmt.Errorf("%w: step %d references recipe %d", ErrDataIntegrity, s.ID, s.RecipeID)
		}
	}
	if steps == nil {
		steps = []Step{}
	}

	for _, n := range notes {
		if _, ok := idSet[n.RecipeID]; !ok {
			return nil, fmt.Errorf("%w: note %d references recipe %d", ErrDataIntegrity, n.ID, n.RecipeID)
		}
	}

	// Reactions arrive newest-first; grouping preserves that order.
	// A reaction keyed to a note outside the fetched set belongs to a
	// soft-deleted note and is dropped.
	byNote := make(map[int64][]Reaction, len(notes))
	for i := range notes {
		byNote[notes[i].ID] = []Reaction{}
	}
	for _, re := range reactions {
		if _, ok := idSet[re.RecipeID]; !ok {
			return nil, fmt.Errorf("%w: reaction %d references recipe %d", ErrDataIntegrity, re.ID, re.RecipeID)
		}
		if group, ok := byNote[re.NoteID]; ok {
			byNote[re.NoteID] = append(group, re)
		}
	}

	timeline := make([]TimelineEntry, 0, len(events)+len(notes))
	for i := range events {
		if _, ok := idSet[events[i].RecipeID]; !ok {
			return nil, fmt.Errorf("%w: timeline event %d references recipe %d", ErrDataIntegrity, events[i].ID, events[i].RecipeID)
		}
		timeline = append(timeline, TimelineEntry{Kind: EntryEvent, Event: &events[i]})
	}
	for i := range notes {
		timeline = append(timeline, TimelineEntry{
			Kind: EntryNote,
			Note: &NoteWithReactions{Note: notes[i], Reactions: byNote[notes[i].ID]},
		})
	}
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].CreatedAt().After(timeline[j].CreatedAt())
	})

	return &Detail{
		Recipe:      r,
		Ingredients: entries,
		Steps:       steps,
		Timeline:    timeline,
	}, nil
}
