package cli

import (
	"context"

	"github.com/donow-app/donow/internal/workitems/application/commands"
	"github.com/donow-app/donow/internal/workitems/application/queries"
	"github.com/google/uuid"
)

// doNowListHandler is satisfied both by *queries.GetDoNowListHandler
// and its Redis-cached decorator, so the CLI never needs to know
// whether caching is wired in.
type doNowListHandler interface {
	Handle(ctx context.Context, query queries.GetDoNowListQuery) ([]queries.ActionDTO, error)
}

// App holds the CLI application dependencies: the C8 command handlers
// and query handlers the workitems commands bind against.
type App struct {
	NewItemHandler         *commands.NewItemHandler
	FinishItemHandler      *commands.FinishItemHandler
	FieldHandler           *commands.FieldHandler
	ParentItemHandler      *commands.ParentItemHandler
	CoverItemHandler       *commands.CoverItemHandler
	DependencyHandler      *commands.DependencyHandler
	EventHandler           *commands.EventHandler
	RecordTimeSpentHandler *commands.RecordTimeSpentHandler
	DeclarePriorityHandler *commands.DeclarePriorityHandler

	GetItemHandler      *queries.GetItemHandler
	ListItemsHandler    *queries.ListItemsHandler
	GetDoNowListHandler doNowListHandler

	CurrentUserID uuid.UUID
}

// NewApp constructs an App from the handlers wired by the container.
func NewApp(
	newItemHandler *commands.NewItemHandler,
	finishItemHandler *commands.FinishItemHandler,
	fieldHandler *commands.FieldHandler,
	parentItemHandler *commands.ParentItemHandler,
	coverItemHandler *commands.CoverItemHandler,
	dependencyHandler *commands.DependencyHandler,
	eventHandler *commands.EventHandler,
	recordTimeSpentHandler *commands.RecordTimeSpentHandler,
	declarePriorityHandler *commands.DeclarePriorityHandler,
	getItemHandler *queries.GetItemHandler,
	listItemsHandler *queries.ListItemsHandler,
	getDoNowListHandler doNowListHandler,
) *App {
	return &App{
		NewItemHandler:         newItemHandler,
		FinishItemHandler:      finishItemHandler,
		FieldHandler:           fieldHandler,
		ParentItemHandler:      parentItemHandler,
		CoverItemHandler:       coverItemHandler,
		DependencyHandler:      dependencyHandler,
		EventHandler:           eventHandler,
		RecordTimeSpentHandler: recordTimeSpentHandler,
		DeclarePriorityHandler: declarePriorityHandler,
		GetItemHandler:         getItemHandler,
		ListItemsHandler:       listItemsHandler,
		GetDoNowListHandler:    getDoNowListHandler,
		CurrentUserID:          uuid.Nil,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

var app *App

// SetApp sets the active CLI application.
func SetApp(a *App) {
	app = a
}

// GetApp returns the active CLI application, or nil if not initialized.
func GetApp() *App {
	return app
}
