package recipe

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	recipedomain "recipe-api-go/internal/domain/recipe"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ReadTx wraps fn in a read-only transaction: one connection, one
// consistent snapshot for the selection and all related fetches.
func (r *PostgresRepository) ReadTx(ctx context.Context, fn func(recipedomain.Repository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	}, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return classify(err)
	}
	return nil
}

func (r *PostgresRepository) SelectRandomVisible(ctx context.Context, userID int64, limit int) ([]recipedomain.Recipe, error) {
	activeTeams := r.db.
		Model(&recipedomain.TeamMembership{}).
		Select("team_id").
		Where("user_id = ? AND is_active", userID)

	// order by random() stands in for a detail-view access pattern;
	// uniform choice among the eligible set is part of the contract.
	var recipes []recipedomain.Recipe
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ? OR owner_team_id IN (?)", userID, activeTeams).
		Order("random()").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, classify(err)
	}
	return recipes, nil
}

func (r *PostgresRepository) ListIngredients(ctx context.Context, recipeIDs []int64) ([]recipedomain.Ingredient, error) {
	if len(recipeIDs) == 0 {
		return []recipedomain.Ingredient{}, nil
	}

	var rows []recipedomain.Ingredient
	err := r.db.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Order("ingredients.position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (r *PostgresRepository) ListSections(ctx context.Context, recipeIDs []int64) ([]recipedomain.Section, error) {
	if len(recipeIDs) == 0 {
		return []recipedomain.Section{}, nil
	}

	var rows []recipedomain.Section
	err := r.db.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Order("sections.position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (r *PostgresRepository) ListSteps(ctx context.Context, recipeIDs []int64) ([]recipedomain.Step, error) {
	if len(recipeIDs) == 0 {
		return []recipedomain.Step{}, nil
	}

	var rows []recipedomain.Step
	err := r.db.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Order("steps.position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (r *PostgresRepository) ListNotes(ctx context.Context, recipeIDs []int64) ([]recipedomain.Note, error) {
	if len(recipeIDs) == 0 {
		return []recipedomain.Note{}, nil
	}

	var rows []recipedomain.Note
	err := r.db.WithContext(ctx).
		Model(&recipedomain.Note{}).
		Select(`notes.*,
			creators.email AS created_by_email,
			creators.name AS created_by_name,
			modifiers.email AS modified_by_email,
			modifiers.name AS modified_by_name`).
		Joins("JOIN users AS creators ON creators.id = notes.created_by_id").
		Joins("LEFT JOIN users AS modifiers ON modifiers.id = notes.last_modified_by_id").
		Where("notes.recipe_id IN ?", recipeIDs).
		Order("notes.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (r *PostgresRepository) ListReactions(ctx context.Context, recipeIDs []int64) ([]recipedomain.Reaction, error) {
	if len(recipeIDs) == 0 {
		return []recipedomain.Reaction{}, nil
	}

	// Scoped through the parent note; the note's soft-delete flag is
	// deliberately not checked here, grouping drops the orphans.
	var rows []recipedomain.Reaction
	err := r.db.WithContext(ctx).
		Model(&recipedomain.Reaction{}).
		Select("reactions.*, notes.recipe_id AS recipe_id").
		Joins("JOIN notes ON notes.id = reactions.note_id").
		Where("notes.recipe_id IN ?", recipeIDs).
		Order("reactions.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (r *PostgresRepository) ListTimelineEvents(ctx context.Context, recipeIDs []int64) ([]recipedomain.TimelineEvent, error) {
	if len(recipeIDs) == 0 {
		return []recipedomain.TimelineEvent{}, nil
	}

	var rows []recipedomain.TimelineEvent
	err := r.db.WithContext(ctx).
		Model(&recipedomain.TimelineEvent{}).
		Select("timeline_events.*, users.email AS created_by_email").
		Joins("LEFT JOIN users ON users.id = timeline_events.created_by_id").
		Where("timeline_events.recipe_id IN ?", recipeIDs).
		Order("timeline_events.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", recipedomain.ErrStoreUnavailable, err)
	}
	return err
}
