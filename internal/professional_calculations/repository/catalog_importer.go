package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

//go:embed schema/001_init.sql
var schemaSQL string

// CatalogImporter seeds the catalog tables through database/sql
type CatalogImporter struct {
	db *sql.DB
}

func NewCatalogImporter(db *sql.DB) *CatalogImporter {
	return &CatalogImporter{db: db}
}

// Migrate applies the schema. Statements are idempotent.
func (i *CatalogImporter) Migrate(ctx context.Context) error {
	if _, err := i.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// ImportEquipment upserts presets by name in one transaction and returns the
// number of rows written.
func (i *CatalogImporter) ImportEquipment(ctx context.Context, items []domain.EquipmentPreset) (int, error) {
	const query = `
		INSERT INTO equipment_presets (
			id, name, type, category, brand, model, power, voltage, price_per_unit,
			flow_rate, max_head, consumption, connection_size, filter_area, filter_diameter,
			sand_required, min_pool_volume, max_pool_volume, description, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (name) DO UPDATE SET
			type = EXCLUDED.type,
			category = EXCLUDED.category,
			brand = EXCLUDED.brand,
			model = EXCLUDED.model,
			power = EXCLUDED.power,
			voltage = EXCLUDED.voltage,
			price_per_unit = EXCLUDED.price_per_unit,
			flow_rate = EXCLUDED.flow_rate,
			max_head = EXCLUDED.max_head,
			consumption = EXCLUDED.consumption,
			connection_size = EXCLUDED.connection_size,
			filter_area = EXCLUDED.filter_area,
			filter_diameter = EXCLUDED.filter_diameter,
			sand_required = EXCLUDED.sand_required,
			min_pool_volume = EXCLUDED.min_pool_volume,
			max_pool_volume = EXCLUDED.max_pool_volume,
			description = EXCLUDED.description,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
	`

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	n := 0
	for _, e := range items {
		if e.Name == "" || e.Type == "" {
			return 0, domain.NewValidationError("equipment", "name and type are required (row %d)", n+1)
		}
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx, query,
			e.ID, e.Name, e.Type, nullString(e.Category), nullString(e.Brand), nullString(e.Model),
			nullFloat(e.Power), nullFloat(e.Voltage), e.PricePerUnit,
			nullFloat(e.FlowRate), nullFloat(e.MaxHead), nullFloat(e.Consumption),
			nullString(e.ConnectionSize), nullFloat(e.FilterArea), nullFloat(e.FilterDiameter),
			nullFloat(e.SandRequired), nullFloat(e.MinPoolVolume), nullFloat(e.MaxPoolVolume),
			nullString(e.Description), e.IsActive,
		)
		if err != nil {
			return 0, fmt.Errorf("upsert equipment %q: %w", e.Name, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return n, nil
}

// ImportPoolPresets upserts pool presets by name
func (i *CatalogImporter) ImportPoolPresets(ctx context.Context, presets []domain.PoolPreset) (int, error) {
	const query = `
		INSERT INTO pool_presets (
			id, name, shape, length, width, depth, has_skimmer, skimmer_count, returns_count,
			has_hydro_jets, hydro_jets_count, has_bottom_drain, has_vacuum_intake, vacuum_intake_count,
			has_lighting, lighting_count, lighting_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (name) DO UPDATE SET
			shape = EXCLUDED.shape,
			length = EXCLUDED.length,
			width = EXCLUDED.width,
			depth = EXCLUDED.depth,
			has_skimmer = EXCLUDED.has_skimmer,
			skimmer_count = EXCLUDED.skimmer_count,
			returns_count = EXCLUDED.returns_count,
			has_hydro_jets = EXCLUDED.has_hydro_jets,
			hydro_jets_count = EXCLUDED.hydro_jets_count,
			has_bottom_drain = EXCLUDED.has_bottom_drain,
			has_vacuum_intake = EXCLUDED.has_vacuum_intake,
			vacuum_intake_count = EXCLUDED.vacuum_intake_count,
			has_lighting = EXCLUDED.has_lighting,
			lighting_count = EXCLUDED.lighting_count,
			lighting_type = EXCLUDED.lighting_type,
			updated_at = NOW()
	`

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	n := 0
	for _, p := range presets {
		if p.Name == "" || p.Length <= 0 || p.Width <= 0 || p.Depth <= 0 {
			return 0, domain.NewValidationError("poolPreset", "name and positive dimensions are required (row %d)", n+1)
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		shape := p.Shape
		if shape == "" {
			shape = "RECTANGULAR"
		}
		_, err := tx.ExecContext(ctx, query,
			p.ID, p.Name, shape, p.Length, p.Width, p.Depth,
			p.HasSkimmer, p.SkimmerCount, p.ReturnsCount,
			p.HasHydroJets, p.HydroJetsCount, p.HasBottomDrain, p.HasVacuumIntake, p.VacuumIntakeCount,
			p.HasLighting, p.LightingCount, nullString(p.LightingType),
		)
		if err != nil {
			return 0, fmt.Errorf("upsert pool preset %q: %w", p.Name, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: f != 0}
}
