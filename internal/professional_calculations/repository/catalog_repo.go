package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// CatalogRepository reads equipment presets from postgres
type CatalogRepository struct {
	db Querier
}

func NewCatalogRepository(db Querier) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func scanEquipment(row scanner, e *domain.EquipmentPreset) error {
	return row.Scan(
		&e.ID, &e.Name, &e.Type, &e.Category, &e.Brand, &e.Model,
		&e.Power, &e.Voltage, &e.PricePerUnit,
		&e.FlowRate, &e.MaxHead, &e.Consumption,
		&e.ConnectionSize, &e.FilterArea, &e.FilterDiameter,
		&e.SandRequired, &e.MinPoolVolume, &e.MaxPoolVolume,
		&e.Description, &e.IsActive,
	)
}

// ListActive returns every active equipment preset ordered by type and price
func (r *CatalogRepository) ListActive(ctx context.Context) ([]domain.EquipmentPreset, error) {
	q := `
select` + equipmentColumns + `
from equipment_presets e
where e.is_active
order by e.type, e.price_per_unit, e.name;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	out := make([]domain.EquipmentPreset, 0, 64)
	for rows.Next() {
		var e domain.EquipmentPreset
		if err := scanEquipment(rows, &e); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetEquipment returns one preset, active or not
func (r *CatalogRepository) GetEquipment(ctx context.Context, id string) (*domain.EquipmentPreset, error) {
	q := `
select` + equipmentColumns + `
from equipment_presets e
where e.id = $1;
`
	var e domain.EquipmentPreset
	if err := scanEquipment(r.db.QueryRow(ctx, q, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("get equipment %s: %w", id, err)
	}
	return &e, nil
}
