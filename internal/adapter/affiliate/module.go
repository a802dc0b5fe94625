package affiliate

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/konsiyer/dashboard/internal/config"
)

// Module exposes the affiliate stats client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.FunctionsBaseURL, p.Logger)
}
