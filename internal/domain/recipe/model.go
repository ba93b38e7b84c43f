package recipe

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Recipe is owned either directly by a user or by a team. Exactly one of
// OwnerUserID / OwnerTeamID is set.
type Recipe struct {
	ID          int64          `gorm:"primaryKey"`
	Name        string         `gorm:"not null"`
	Author      string         `gorm:"not null"`
	Source      string         `gorm:"not null"`
	Time        string         `gorm:"not null"`
	Servings    string         `gorm:"not null"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	OwnerUserID *int64
	OwnerTeamID *int64
	ArchivedAt  *time.Time
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TeamMembership links a user to a team. Only active memberships grant
// visibility to the team's recipes.
type TeamMembership struct {
	ID       int64 `gorm:"primaryKey"`
	TeamID   int64 `gorm:"not null;index"`
	UserID   int64 `gorm:"not null;index"`
	IsActive bool  `gorm:"not null;default:true"`
}

// Position columns are opaque lexicographically sortable keys; all
// ordering of ingredients, sections and steps goes through them.
type Ingredient struct {
	ID          int64  `gorm:"primaryKey"`
	RecipeID    int64  `gorm:"not null;index"`
	Position    string `gorm:"not null"`
	Quantity    string
	Name        string
	Description string
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type Section struct {
	ID        int64  `gorm:"primaryKey"`
	RecipeID  int64  `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	Position  string `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Step struct {
	ID        int64  `gorm:"primaryKey"`
	RecipeID  int64  `gorm:"not null;index"`
	Position  string `gorm:"not null"`
	Text      string `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Note carries its creator's identity (inner join, always present) and
// its last modifier's (left join, fetched but not exposed in responses).
type Note struct {
	ID               int64  `gorm:"primaryKey"`
	RecipeID         int64  `gorm:"not null;index"`
	Text             string `gorm:"not null"`
	CreatedByID      int64  `gorm:"not null"`
	LastModifiedByID *int64
	CreatedByEmail   string  `gorm:"->;column:created_by_email"`
	CreatedByName    *string `gorm:"->;column:created_by_name"`
	ModifiedByEmail  *string `gorm:"->;column:modified_by_email"`
	ModifiedByName   *string `gorm:"->;column:modified_by_name"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	ModifiedAt       time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// Reaction has no soft-delete column; it disappears with its note.
// RecipeID is joined in from the parent note for batch scoping.
type Reaction struct {
	ID          int64  `gorm:"primaryKey"`
	NoteID      int64  `gorm:"not null;index"`
	Emoji       string `gorm:"not null"`
	CreatedByID int64  `gorm:"not null"`
	RecipeID    int64  `gorm:"->;column:recipe_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	ModifiedAt  time.Time
}

// TimelineEvent is a discrete audit entry on a recipe. The creator's
// email doubles as its display name in responses.
type TimelineEvent struct {
	ID             int64  `gorm:"primaryKey"`
	RecipeID       int64  `gorm:"not null;index"`
	Action         string `gorm:"not null"`
	CreatedByID    *int64
	CreatedByEmail *string `gorm:"->;column:created_by_email"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// IngredientEntryKind discriminates the members of the merged
// ingredients list.
type IngredientEntryKind string

const (
	EntryIngredient IngredientEntryKind = "ingredient"
	EntrySection    IngredientEntryKind = "section"
)

// IngredientEntry is a tagged union of Ingredient and Section. Exactly
// one of the two pointers is set, matching Kind.
type IngredientEntry struct {
	Kind       IngredientEntryKind
	Ingredient *Ingredient
	Section    *Section
}

func (e IngredientEntry) Position() string {
	if e.Kind == EntrySection {
		return e.Section.Position
	}
	return e.Ingredient.Position
}

// TimelineEntryKind discriminates the members of the merged timeline.
type TimelineEntryKind string

const (
	EntryEvent TimelineEntryKind = "event"
	EntryNote  TimelineEntryKind = "note"
)

// NoteWithReactions pairs a note with its reactions, newest first. The
// slice is never nil.
type NoteWithReactions struct {
	Note      Note
	Reactions []Reaction
}

// TimelineEntry is a tagged union of TimelineEvent and NoteWithReactions.
type TimelineEntry struct {
	Kind  TimelineEntryKind
	Event *TimelineEvent
	Note  *NoteWithReactions
}

func (e TimelineEntry) CreatedAt() time.Time {
	if e.Kind == EntryNote {
		return e.Note.Note.CreatedAt
	}
	return e.Event.CreatedAt
}

// Detail is the fully assembled recipe document.
type Detail struct {
	Recipe      Recipe
	Ingredients []IngredientEntry
	Steps       []Step
	Timeline    []TimelineEntry
}
