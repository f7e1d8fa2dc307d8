package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	analysis "heatpump-insight/internal/analysis/domain"
	catalog "heatpump-insight/internal/catalog/domain"
)

const (
	defaultProfilesTable  = "property_profiles"
	defaultScenariosTable = "scenarios"
)

// DBTX is the database handle subset the repository needs.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CatalogRepository loads the scenario catalog from Postgres reference
// tables. Read-only: analysis results are never written back.
type CatalogRepository struct {
	db             DBTX
	profilesTable  string
	scenariosTable string
}

// Option configures the repository.
type Option func(*CatalogRepository)

// WithProfilesTable overrides the default profiles table name.
func WithProfilesTable(table string) Option {
	return func(r *CatalogRepository) {
		if table != "" {
			r.profilesTable = table
		}
	}
}

// WithScenariosTable overrides the default scenarios table name.
func WithScenariosTable(table string) Option {
	return func(r *CatalogRepository) {
		if table != "" {
			r.scenariosTable = table
		}
	}
}

// NewCatalogRepository constructs a repository.
func NewCatalogRepository(db DBTX, opts ...Option) *CatalogRepository {
	repo := &CatalogRepository{
		db:             db,
		profilesTable:  defaultProfilesTable,
		scenariosTable: defaultScenariosTable,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Load reads all profiles and scenarios.
func (r *CatalogRepository) Load(ctx context.Context) (*catalog.Catalog, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("catalog repo: nil db")
	}
	profiles, err := r.loadProfiles(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*catalog.PropertyProfile, len(profiles))
	for i := range profiles {
		byID[profiles[i].PropertyID] = &profiles[i]
	}
	scenarios, err := r.loadScenarios(ctx, byID)
	if err != nil {
		return nil, err
	}
	return catalog.NewCatalog(profiles, scenarios), nil
}

func (r *CatalogRepository) loadProfiles(ctx context.Context) ([]catalog.PropertyProfile, error) {
	query := fmt.Sprintf(`
SELECT property_id, profile_name, house_type, house_age, brand, model, size_kw, refrigerant,
       annual_spf, mean_flow_temp, winter_flow_temp, coldest_day_cop, coldest_day_outdoor_temp,
       annual_system_kwh, annual_heat_output_kwh
FROM %s
ORDER BY property_id`, r.profilesTable)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []catalog.PropertyProfile
	for rows.Next() {
		var p catalog.PropertyProfile
		if err := rows.Scan(
			&p.PropertyID,
			&p.ProfileName,
			&p.PropertyDetails.HouseType,
			&p.PropertyDetails.HouseAge,
			&p.HeatPumpSpecs.Brand,
			&p.HeatPumpSpecs.Model,
			&p.HeatPumpSpecs.SizeKW,
			&p.HeatPumpSpecs.Refrigerant,
			&p.PerformanceData.AnnualSPF,
			&p.PerformanceData.MeanFlowTemp,
			&p.PerformanceData.WinterFlowTemp,
			&p.PerformanceData.ColdestDayCOP,
			&p.PerformanceData.ColdestDayOutdoorTemp,
			&p.EnergyConsumption.AnnualSystemKWh,
			&p.EnergyConsumption.AnnualHeatOutputKWh,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *CatalogRepository) loadScenarios(ctx context.Context, profiles map[string]*catalog.PropertyProfile) ([]catalog.Scenario, error) {
	query := fmt.Sprintf(`
SELECT id, name, event_type, ts, property_id, data
FROM %s
ORDER BY id`, r.scenariosTable)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []catalog.Scenario
	for rows.Next() {
		var (
			scenario   catalog.Scenario
			propertyID string
			raw        []byte
		)
		if err := rows.Scan(&scenario.ID, &scenario.Name, &scenario.EventType, &scenario.Timestamp, &propertyID, &raw); err != nil {
			return nil, err
		}
		var snapshot analysis.TelemetrySnapshot
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			return nil, fmt.Errorf("catalog repo: scenario %s data: %w", scenario.ID, err)
		}
		scenario.Data = snapshot
		scenario.PropertyID = propertyID
		scenario.Profile = profiles[propertyID]
		scenarios = append(scenarios, scenario)
	}
	return scenarios, rows.Err()
}
