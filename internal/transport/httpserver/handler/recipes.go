package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	recipedomain "recipe-api-go/internal/domain/recipe"
	"recipe-api-go/internal/transport/httpserver/middleware"
)

type recipeResponse struct {
	ID          int64                     `json:"id"`
	Name        string                    `json:"name"`
	Author      string                    `json:"author"`
	Source      string                    `json:"source"`
	Time        string                    `json:"time"`
	Servings    string                    `json:"servings"`
	Tags        []string                  `json:"tags"`
	ArchivedAt  *time.Time                `json:"archived_at"`
	CreatedAt   time.Time                 `json:"created_at"`
	Ingredients []ingredientEntryResponse `json:"ingredients"`
	Steps       []stepResponse            `json:"steps"`
	Timeline    []timelineEntryResponse   `json:"timeline"`
}

// ingredientEntryResponse marshals as either an ingredient or a section,
// discriminated by "kind".
type ingredientEntryResponse struct {
	ingredient *ingredientResponse
	section    *sectionResponse
}

func (e ingredientEntryResponse) MarshalJSON() ([]byte, error) {
	if e.section != nil {
		return json.Marshal(e.section)
	}
	return json.Marshal(e.ingredient)
}

type ingredientResponse struct {
	Kind        string `json:"kind"`
	ID          int64  `json:"id"`
	Position    string `json:"position"`
	Quantity    string `json:"quantity"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type sectionResponse struct {
	Kind     string `json:"kind"`
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Position string `json:"position"`
}

type stepResponse struct {
	ID       int64  `json:"id"`
	Position string `json:"position"`
	Text     string `json:"text"`
}

// timelineEntryResponse marshals as either a timeline event or a note,
// discriminated by "kind".
type timelineEntryResponse struct {
	event *timelineEventResponse
	note  *noteResponse
}

func (e timelineEntryResponse) MarshalJSON() ([]byte, error) {
	if e.note != nil {
		return json.Marshal(e.note)
	}
	return json.Marshal(e.event)
}

type timelineEventResponse struct {
	Kind          string    `json:"kind"`
	ID            int64     `json:"id"`
	Action        string    `json:"action"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedByID   *int64    `json:"created_by_id"`
	CreatedByName *string   `json:"created_by_name"`
}

type noteResponse struct {
	Kind       string             `json:"kind"`
	ID         int64              `json:"id"`
	Text       string             `json:"text"`
	Email      string             `json:"email"`
	Name       *string            `json:"name"`
	ModifiedAt time.Time          `json:"modified_at"`
	CreatedAt  time.Time          `json:"created_at"`
	Reactions  []reactionResponse `json:"reactions"`
}

type reactionResponse struct {
	ID          int64  `json:"id"`
	Emoji       string `json:"emoji"`
	CreatedByID int64  `json:"created_by_id"`
}

// GetRecipe serves GET /api/v1/recipes: one random recipe visible to the
// authenticated user, fully assembled.
func (h *Handlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authed")
		return
	}

	detail, err := h.Recipes.RandomDetail(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, recipedomain.ErrNoVisibleRecipes):
			h.log.BusinessError("recipes.detail: no visible recipes", err, "user_id", userID)
			writeError(w, http.StatusNotFound, "no recipe found")
		case errors.Is(err, recipedomain.ErrStoreUnavailable):
			h.log.InternalError("recipes.detail: store unavailable", err, "user_id", userID)
			writeError(w, http.StatusServiceUnavailable, "service unavailable")
		case errors.Is(err, recipedomain.ErrDataIntegrity):
			h.log.InternalError("recipes.detail: data integrity fault", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal error")
		default:
			h.log.InternalError("recipes.detail: fetch failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toRecipeResponse(detail))
}

func toRecipeResponse(detail *recipedomain.Detail) recipeResponse {
	r := detail.Recipe

	ingredients := make([]ingredientEntryResponse, 0, len(detail.Ingredients))
	for _, entry := range detail.Ingredients {
		ingredients = append(ingredients, toIngredientEntryResponse(entry))
	}

	steps := make([]stepResponse, 0, len(detail.Steps))
	for _, step := range detail.Steps {
		steps = append(steps, stepResponse{
			ID:       step.ID,
			Position: step.Position,
			Text:     step.Text,
		})
	}

	timeline := make([]timelineEntryResponse, 0, len(detail.Timeline))
	for _, entry := range detail.Timeline {
		timeline = append(timeline, toTimelineEntryResponse(entry))
	}

	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}

	return recipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Author:      r.Author,
		Source:      r.Source,
		Time:        r.Time,
		Servings:    r.Servings,
		Tags:        tags,
		ArchivedAt:  r.ArchivedAt,
		CreatedAt:   r.CreatedAt,
		Ingredients: ingredients,
		Steps:       steps,
		Timeline:    timeline,
	}
}

func toIngredientEntryResponse(entry recipedomain.IngredientEntry) ingredientEntryResponse {
	if entry.Kind == recipedomain.EntrySection {
		return ingredientEntryResponse{section: &sectionResponse{
			Kind:     string(recipedomain.EntrySection),
			ID:       entry.Section.ID,
			Title:    entry.Section.Title,
			Position: entry.Section.Position,
		}}
	}
	return ingredientEntryResponse{ingredient: &ingredientResponse{
		Kind:        string(recipedomain.EntryIngredient),
		ID:          entry.Ingredient.ID,
		Position:    entry.Ingredient.Position,
		Quantity:    entry.Ingredient.Quantity,
		Name:        entry.Ingredient.Name,
		Description: entry.Ingredient.Description,
	}}
}

func toTimelineEntryResponse(entry recipedomain.TimelineEntry) timelineEntryResponse {
	if entry.Kind == recipedomain.EntryNote {
		note := entry.Note
		reactions := make([]reactionResponse, 0, len(note.Reactions))
		for _, reaction := range note.Reactions {
			reactions = append(reactions, reactionResponse{
				ID:          reaction.ID,
				Emoji:       reaction.Emoji,
				CreatedByID: reaction.CreatedByID,
			})
		}
		return timelineEntryResponse{note: &noteResponse{
			Kind:       string(recipedomain.EntryNote),
			ID:         note.Note.ID,
			Text:       note.Note.Text,
			Email:      note.Note.CreatedByEmail,
			Name:       note.Note.CreatedByName,
			ModifiedAt: note.Note.ModifiedAt,
			CreatedAt:  note.Note.CreatedAt,
			Reactions:  reactions,
		}}
	}
	event := entry.Event
	return timelineEntryResponse{event: &timelineEventResponse{
		Kind:          string(recipedomain.EntryEvent),
		ID:            event.ID,
		Action:        event.Action,
		CreatedAt:     event.CreatedAt,
		CreatedByID:   event.CreatedByID,
		CreatedByName: event.CreatedByEmail,
	}}
}
