package components

import (
	"garden-stock-api/internal/usecase/shared"

	"go.uber.org/fx"
)

// RepositoryModule splits the snapshot store into its read and write sides.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		func(store shared.SnapshotStore) shared.SnapshotReader { return store },
		func(store shared.SnapshotStore) shared.SnapshotWriter { return store },
	),
)
