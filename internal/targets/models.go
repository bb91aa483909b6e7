package targets

import (
	"fmt"

	"github.com/fdg312/meal-hub/internal/storage"
)

// TargetsDTO — wire-представление дневных целей.
type TargetsDTO struct {
	ProteinServings float64 `json:"protein_servings"`
	VegServings     float64 `json:"veg_servings"`
	CarbServings    float64 `json:"carb_servings"`
	SnackServings   float64 `json:"snack_servings"`
	WaterMl         float64 `json:"water_ml"`
}

type TargetsResponse struct {
	OK        bool       `json:"ok"`
	Targets   TargetsDTO `json:"targets"`
	IsDefault bool       `json:"is_default"`
}

func (t TargetsDTO) Validate() error {
	if t.ProteinServings < 0 || t.VegServings < 0 || t.CarbServings < 0 || t.SnackServings < 0 || t.WaterMl < 0 {
		return fmt.Errorf("targets must not be negative")
	}
	return nil
}

func dtoFromStorage(t storage.Targets) TargetsDTO {
	return TargetsDTO{
		ProteinServings: t.ProteinServings,
		VegServings:     t.VegServings,
		CarbServings:    t.CarbServings,
		SnackServings:   t.SnackServings,
		WaterMl:         t.WaterMl,
	}
}

func dtoToStorage(dto TargetsDTO) storage.Targets {
	return storage.Targets{
		ProteinServings: dto.ProteinServings,
		VegServings:     dto.VegServings,
		CarbServings:    dto.CarbServings,
		SnackServings:   dto.SnackServings,
		WaterMl:         dto.WaterMl,
	}
}
