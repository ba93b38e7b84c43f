package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	recipedomain "recipe-api-go/internal/domain/recipe"
	"recipe-api-go/internal/transport/httpserver/middleware"
	"recipe-api-go/pkg/logger"
)

type fakeRecipeRepo struct {
	recipes     []recipedomain.Recipe
	ingredients []recipedomain.Ingredient
	sections    []recipedomain.Section
	steps       []recipedomain.Step
	notes       []recipedomain.Note
	reactions   []recipedomain.Reaction
	events      []recipedomain.TimelineEvent

	selectErr error
}

func (r *fakeRecipeRepo) ReadTx(ctx context.Context, fn func(recipedomain.Repository) error) error {
	return fn(r)
}

func (r *fakeRecipeRepo) SelectRandomVisible(ctx context.Context, userID int64, limit int) ([]recipedomain.Recipe, error) {
	if r.selectErr != nil {
		return nil, r.selectErr
	}
	if limit > len(r.recipes) {
		limit = len(r.recipes)
	}
	return r.recipes[:limit], nil
}

func (r *fakeRecipeRepo) ListIngredients(ctx context.Context, recipeIDs []int64) ([]recipedomain.Ingredient, error) {
	return r.ingredients, nil
}

func (r *fakeRecipeRepo) ListSections(ctx context.Context, recipeIDs []int64) ([]recipedomain.Section, error) {
	return r.sections, nil
}

func (r *fakeRecipeRepo) ListSteps(ctx context.Context, recipeIDs []int64) ([]recipedomain.Step, error) {
	return r.steps, nil
}

func (r *fakeRecipeRepo) ListNotes(ctx context.Context, recipeIDs []int64) ([]recipedomain.Note, error) {
	return r.notes, nil
}

func (r *fakeRecipeRepo) ListReactions(ctx context.Context, recipeIDs []int64) ([]recipedomain.Reaction, error) {
	return r.reactions, nil
}

func (r *fakeRecipeRepo) ListTimelineEvents(ctx context.Context, recipeIDs []int64) ([]recipedomain.TimelineEvent, error) {
	return r.events, nil
}

func newHandlers(repo *fakeRecipeRepo) *Handlers {
	log := logger.New(io.Discard, slog.LevelError, "text")
	return New(recipedomain.NewService(repo), log)
}

func serveRecipe(h *Handlers, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.GetRecipe(rec, req)
	return rec
}

func TestGetRecipeFullDocument(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	email := "cook@example.com"
	repo := &fakeRecipeRepo{
		recipes: []recipedomain.Recipe{{
			ID:       7,
			Name:     "Sourdough",
			Author:   "Jo",
			Source:   "grandma",
			Time:     "3h",
			Servings: "4",
			Tags:     []string{"bread", "slow"},
			CreatedAt: created,
		}},
		ingredients: []recipedomain.Ingredient{
			{ID: 1, RecipeID: 7, Position: "b", Quantity: "500g", Name: "flour"},
		},
		sections: []recipedomain.Section{
			{ID: 2, RecipeID: 7, Title: "dough", Position: "a"},
		},
		steps: []recipedomain.Step{
			{ID: 3, RecipeID: 7, Position: "a", Text: "mix"},
		},
		notes: []recipedomain.Note{
			{ID: 4, RecipeID: 7, Text: "great", CreatedByEmail: email, CreatedAt: created.Add(time.Hour), ModifiedAt: created.Add(time.Hour)},
		},
		reactions: []recipedomain.Reaction{
			{ID: 5, NoteID: 4, RecipeID: 7, Emoji: "🔥", CreatedByID: 2},
			{ID: 6, NoteID: 4, RecipeID: 7, Emoji: "👍", CreatedByID: 3},
		},
		events: []recipedomain.TimelineEvent{
			{ID: 8, RecipeID: 7, Action: "created", CreatedAt: created},
		},
	}

	rec := serveRecipe(newHandlers(repo), 1)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Fatalf("expected application/json, got %s", got)
	}

	var body struct {
		ID          int64            `json:"id"`
		Tags        []string         `json:"tags"`
		Ingredients []map[string]any `json:"ingredients"`
		Steps       []map[string]any `json:"steps"`
		Timeline    []map[string]any `json:"timeline"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body.ID != 7 {
		t.Fatalf("expected id 7, got %d", body.ID)
	}
	if len(body.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", body.Tags)
	}

	if len(body.Ingredients) != 2 {
		t.Fatalf("expected 2 merged ingredient entries, got %d", len(body.Ingredients))
	}
	// section position "a" sorts ahead of ingredient position "b"
	if kind := body.Ingredients[0]["kind"]; kind != "section" {
		t.Fatalf("expected first entry kind section, got %v", kind)
	}
	if kind := body.Ingredients[1]["kind"]; kind != "ingredient" {
		t.Fatalf("expected second entry kind ingredient, got %v", kind)
	}
	if _, ok := body.Ingredients[0]["quantity"]; ok {
		t.Fatal("section entries must not carry a quantity")
	}
	if title := body.Ingredients[0]["title"]; title != "dough" {
		t.Fatalf("expected section title dough, got %v", title)
	}

	if len(body.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(body.Steps))
	}

	if len(body.Timeline) != 2 {
		t.Fatalf("expected 2 timeline entries, got %d", len(body.Timeline))
	}
	// note is newer than the event
	if kind := body.Timeline[0]["kind"]; kind != "note" {
		t.Fatalf("expected first timeline entry note, got %v", kind)
	}
	if kind := body.Timeline[1]["kind"]; kind != "event" {
		t.Fatalf("expected second timeline entry event, got %v", kind)
	}
	reactions, ok := body.Timeline[0]["reactions"].([]any)
	if !ok {
		t.Fatalf("expected reactions list, got %T", body.Timeline[0]["reactions"])
	}
	if len(reactions) != 2 {
		t.Fatalf("expected 2 reactions, got %d", len(reactions))
	}
	if got := body.Timeline[0]["email"]; got != email {
		t.Fatalf("expected note email %s, got %v", email, got)
	}
}

func TestGetRecipeNoteWithoutReactions(t *testing.T) {
	repo := &fakeRecipeRepo{
		recipes: []recipedomain.Recipe{{ID: 1, CreatedAt: time.Now().UTC()}},
		notes: []recipedomain.Note{
			{ID: 2, RecipeID: 1, Text: "plain", CreatedAt: time.Now().UTC()},
		},
	}

	rec := serveRecipe(newHandlers(repo), 1)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Timeline []map[string]any `json:"timeline"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	reactions, ok := body.Timeline[0]["reactions"].([]any)
	if !ok {
		t.Fatal("reactions must be an empty list, not null or missing")
	}
	if len(reactions) != 0 {
		t.Fatalf("expected no reactions, got %d", len(reactions))
	}
}

func TestGetRecipeWithoutUserContext(t *testing.T) {
	rec := serveRecipe(newHandlers(&fakeRecipeRepo{}), 0)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"not authed"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestGetRecipeNoneVisible(t *testing.T) {
	rec := serveRecipe(newHandlers(&fakeRecipeRepo{}), 1)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"no recipe found"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestGetRecipeStoreUnavailable(t *testing.T) {
	repo := &fakeRecipeRepo{selectErr: recipedomain.ErrStoreUnavailable}

	rec := serveRecipe(newHandlers(repo), 1)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestGetRecipeIntegrityFault(t *testing.T) {
	repo := &fakeRecipeRepo{
		recipes: []recipedomain.Recipe{{ID: 1}},
		ingredients: []recipedomain.Ingredient{
			{ID: 2, RecipeID: 99, Position: "a"},
		},
	}

	rec := serveRecipe(newHandlers(repo), 1)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"internal error"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}
