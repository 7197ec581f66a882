package providers

import (
	"github.com/samber/do/v2"

	"github.com/cardvault/cardvault-server/internal/logger"
	"github.com/cardvault/cardvault-server/internal/service"
)

// ProvideSeriesService provides the series use cases.
func ProvideSeriesService(i do.Injector) (*service.SeriesService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSeriesService(storeHandle.SeriesStore, log), nil
}
