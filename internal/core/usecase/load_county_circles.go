package usecase

import (
	"context"

	"github.com/mmcloughlin/geohash"

	"property-search-service/internal/constants"
	"property-search-service/internal/contextkeys"
	"property-search-service/internal/core/domain"
	"property-search-service/internal/core/port"
)

type LoadCountyCirclesUseCase struct {
	api port.MarketplaceAPIPort
}

func NewLoadCountyCirclesUseCase(api port.MarketplaceAPIPort) *LoadCountyCirclesUseCase {
	return &LoadCountyCirclesUseCase{api: api}
}

// Execute пересекает список округов бэкенда со статической таблицей
// центров. Округа без заранее известных координат на карту не попадают.
func (uc *LoadCountyCirclesUseCase) Execute(ctx context.Context) ([]domain.CountyCircle, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "LoadCountyCircles"})

	ucLogger.Info("Use case started", nil)

	counties, err := uc.api.FetchCounties(ctx)
	if err != nil {
		ucLogger.Error("Failed to fetch counties", err, nil)
		return nil, err
	}

	circles := make([]domain.CountyCircle, 0, len(counties))
	for _, county := range counties {
		name, center, ok := constants.CentroidFor(county)
		if !ok {
			ucLogger.Debug("County has no pre-geocoded centroid, skipping", port.Fields{"county": county})
			continue
		}
		circles = append(circles, domain.CountyCircle{
			County: name,
			Center: center,
			Cell:   geohash.EncodeWithPrecision(center.Latitude, center.Longitude, constants.CountyCellPrecision),
		})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"counties_total": len(counties),
		"circles_built":  len(circles),
	})
	return circles, nil
}
