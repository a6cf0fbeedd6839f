package bootstrap

import (
	"log/slog"

	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

func logNavigator(logger *slog.Logger) ports.Navigator {
	return ports.NavigatorFunc(func(v routing.View) {
		logger.Debug("navigate", "view", v.String())
	})
}
