package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// ProjectRepository reads projects with their pool preset and additionals.
// Projects are never written here.
type ProjectRepository struct {
	db Querier
}

func NewProjectRepository(db Querier) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// GetProject loads a project snapshot
func (r *ProjectRepository) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	const q = `
select id, name, coalesce(client_name, ''), coalesce(pool_preset_id, ''),
       volume, perimeter, excavation_length, excavation_width, excavation_depth,
       plumbing_config, electrical_config, created_at, updated_at
from projects
where id = $1;
`
	var (
		p                    domain.Project
		plumbing, electrical []byte
	)
	err := r.db.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.ClientName, &p.PoolPresetID,
		&p.Volume, &p.Perimeter, &p.ExcavationLength, &p.ExcavationWidth, &p.ExcavationDepth,
		&plumbing, &electrical, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}

	if p.PlumbingConfig, err = decodeBlob[domain.PlumbingConfig](plumbing); err != nil {
		return nil, fmt.Errorf("project %s plumbing config: %w", id, err)
	}
	if p.ElectricalConfig, err = decodeBlob[domain.ElectricalConfig](electrical); err != nil {
		return nil, fmt.Errorf("project %s electrical config: %w", id, err)
	}

	// accessory counts come from the preset; a project without one cannot be sized
	if p.PoolPresetID == "" {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrPoolPresetMissing)
	}
	preset, err := r.getPoolPreset(ctx, p.PoolPresetID)
	if err != nil {
		return nil, err
	}
	p.PoolPreset = preset

	if p.Additionals, err = r.listAdditionals(ctx, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) getPoolPreset(ctx context.Context, id string) (*domain.PoolPreset, error) {
	const q = `
select id, name, shape, length, width, depth,
       has_skimmer, skimmer_count, returns_count, has_hydro_jets, hydro_jets_count,
       has_bottom_drain, has_vacuum_intake, vacuum_intake_count,
       has_lighting, lighting_count, coalesce(lighting_type, '')
from pool_presets
where id = $1;
`
	var pp domain.PoolPreset
	err := r.db.QueryRow(ctx, q, id).Scan(
		&pp.ID, &pp.Name, &pp.Shape, &pp.Length, &pp.Width, &pp.Depth,
		&pp.HasSkimmer, &pp.SkimmerCount, &pp.ReturnsCount, &pp.HasHydroJets, &pp.HydroJetsCount,
		&pp.HasBottomDrain, &pp.HasVacuumIntake, &pp.VacuumIntakeCount,
		&pp.HasLighting, &pp.LightingCount, &pp.LightingType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPoolPresetMissing
		}
		return nil, fmt.Errorf("get pool preset %s: %w", id, err)
	}
	return &pp, nil
}

func (r *ProjectRepository) listAdditionals(ctx context.Context, projectID string) ([]domain.ProjectAdditional, error) {
	q := `
select a.id, a.quantity,` + equipmentColumns + `
from project_additionals a
join equipment_presets e on e.id = a.equipment_id
where a.project_id = $1
order by a.created_at;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("list additionals: %w", err)
	}
	defer rows.Close()

	var out []domain.ProjectAdditional
	for rows.Next() {
		var (
			a domain.ProjectAdditional
			e domain.EquipmentPreset
		)
		err := rows.Scan(
			&a.ID, &a.Quantity,
			&e.ID, &e.Name, &e.Type, &e.Category, &e.Brand, &e.Model,
			&e.Power, &e.Voltage, &e.PricePerUnit,
			&e.FlowRate, &e.MaxHead, &e.Consumption,
			&e.ConnectionSize, &e.FilterArea, &e.FilterDiameter,
			&e.SandRequired, &e.MinPoolVolume, &e.MaxPoolVolume,
			&e.Description, &e.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("scan additional: %w", err)
		}
		a.Equipment = &e
		out = append(out, a)
	}
	return out, rows.Err()
}

// decodeBlob unmarshals a nullable jsonb column
func decodeBlob[T any](raw []byte) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
