package royaltyledger

import (
	"log/slog"
	"sync"

	httpadapter "chorus/contexts/finance-core/royalty-ledger/adapters/http"
	"chorus/contexts/finance-core/royalty-ledger/adapters/memory"
	"chorus/contexts/finance-core/royalty-ledger/application/commands"
	"chorus/contexts/finance-core/royalty-ledger/application/queries"
	"chorus/contexts/finance-core/royalty-ledger/domain/entities"
	"chorus/contexts/finance-core/royalty-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	commandUseCase := commands.UseCase{
		Repository: deps.Repository,
		Outbox:     deps.Outbox,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Mutations:  &sync.Mutex{},
		Logger:     deps.Logger,
	}
	queryUseCase := queries.UseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Commands: commandUseCase,
			Queries:  queryUseCase,
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule wires the ledger onto the in-memory store. The ledger
// starts active, owned by admin, with the given songs pre-seeded.
func NewInMemoryModule(admin string, seed []entities.Song, logger *slog.Logger) Module {
	store := memory.NewStore(admin, seed)
	module := NewModule(Dependencies{
		Repository: store,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
