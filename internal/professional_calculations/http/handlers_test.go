package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
	"github.com/poolpro/poolpro-backend/internal/professional_calculations/service"
)

type stubProjects map[string]*domain.Project

func (s stubProjects) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	if p, ok := s[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProjectNotFound
}

type stubCatalog []domain.EquipmentPreset

func (s stubCatalog) ListActive(ctx context.Context) ([]domain.EquipmentPreset, error) {
	return s, nil
}

func (s stubCatalog) GetEquipment(ctx context.Context, id string) (*domain.EquipmentPreset, error) {
	for i := range s {
		if s[i].ID == id {
			e := s[i]
			return &e, nil
		}
	}
	return nil, domain.ErrEquipmentNotFound
}

func setupRouter(catalog stubCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)

	projects := stubProjects{
		"p1": {
			ID:     "p1",
			Volume: 45,
			PoolPreset: &domain.PoolPreset{
				HasSkimmer: true, SkimmerCount: 2, ReturnsCount: 3,
				HasLighting: true, LightingCount: 2,
			},
		},
		"bare": {ID: "bare", Volume: 45},
	}
	svc := service.NewCalculationService(projects, catalog, nil)

	router := gin.New()
	New(svc, Defaults{ElectricityCostPerKwh: 50}, nil).Register(router.Group("/api/professional-calculations"))
	return router
}

func defaultCatalog() stubCatalog {
	return stubCatalog{
		{ID: "cheap", Name: "Pump 0.5HP", Type: domain.TypePump, FlowRate: 6, MaxHead: 20, Power: 0.5, PricePerUnit: 100, IsActive: true},
		{ID: "pricey", Name: "Pump 1HP", Type: domain.TypePump, FlowRate: 12, MaxHead: 22, Power: 1, PricePerUnit: 250, IsActive: true},
		{ID: "f8", Name: "Filter 8", Type: domain.TypeFilter, FlowRate: 8, PricePerUnit: 200, IsActive: true},
	}
}

func do(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetHydraulicAnalysis(t *testing.T) {
	router := setupRouter(defaultCatalog())

	t.Run("defaults", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/api/professional-calculations/p1/hydraulic", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Hydraulic struct {
				RequiredFlowRate    float64 `json:"requiredFlowRate"`
				DistanceToEquipment float64 `json:"distanceToEquipment"`
				StaticLift          float64 `json:"staticLift"`
				RecommendedPump     *struct {
					ID string `json:"id"`
				} `json:"recommendedPump"`
			} `json:"hydraulic"`
			NoRecommendation bool `json:"noRecommendation"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.InDelta(t, 5.625, resp.Hydraulic.RequiredFlowRate, 1e-9)
		assert.Equal(t, 5.0, resp.Hydraulic.DistanceToEquipment)
		assert.Equal(t, 1.5, resp.Hydraulic.StaticLift)
		require.NotNil(t, resp.Hydraulic.RecommendedPump)
		assert.Equal(t, "cheap", resp.Hydraulic.RecommendedPump.ID)
		assert.False(t, resp.NoRecommendation)
	})

	t.Run("non-numeric parameter", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/api/professional-calculations/p1/hydraulic?distanceToEquipment=far", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "distanceToEquipment")
	})

	t.Run("non-positive dimension", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/api/professional-calculations/p1/hydraulic?distanceToEquipment=0", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown project", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/api/professional-calculations/zzz/hydraulic", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("project without pool preset", func(t *testing.T) {
		for _, path := range []string{"/bare/hydraulic", "/bare/electrical", "/bare"} {
			rr := do(router, http.MethodGet, "/api/professional-calculations"+path, nil)
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, path)
			assert.Contains(t, rr.Body.String(), "pool preset")
		}
	})

	t.Run("no adequate pump is still 200", func(t *testing.T) {
		router := setupRouter(stubCatalog{defaultCatalog()[2]})
		rr := do(router, http.MethodGet, "/api/professional-calculations/p1/hydraulic", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			NoRecommendation bool     `json:"noRecommendation"`
			Warnings         []string `json:"warnings"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.NoRecommendation)
		assert.NotEmpty(t, resp.Warnings)
	})
}

func TestGetElectricalAnalysis(t *testing.T) {
	router := setupRouter(defaultCatalog())

	t.Run("query parameters", func(t *testing.T) {
		rr := do(router, http.MethodGet,
			"/api/professional-calculations/p1/electrical?voltage=220&distanceToPanel=30&installationType=buried&ambientTemp=30&electricityCostPerKwh=80", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Electrical struct {
				InstallationType string  `json:"installationType"`
				DistanceToPanel  float64 `json:"distanceToPanel"`
				OperatingCost    struct {
					Tariff      float64 `json:"electricityCostPerKwh"`
					DailyCost   float64 `json:"dailyCost"`
					AnnualCost  float64 `json:"annualCost"`
					MonthlyCost float64 `json:"monthlyCost"`
				} `json:"operatingCost"`
			} `json:"electrical"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "BURIED", resp.Electrical.InstallationType)
		assert.Equal(t, 30.0, resp.Electrical.DistanceToPanel)
		assert.Equal(t, 80.0, resp.Electrical.OperatingCost.Tariff)
		assert.InDelta(t, resp.Electrical.OperatingCost.DailyCost*365, resp.Electrical.OperatingCost.AnnualCost, 1e-6)
		assert.InDelta(t, resp.Electrical.OperatingCost.DailyCost*30, resp.Electrical.OperatingCost.MonthlyCost, 1e-6)
	})

	t.Run("non-numeric tariff", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/api/professional-calculations/p1/electrical?electricityCostPerKwh=cheap", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown installation type", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/api/professional-calculations/p1/electrical?installationType=underwater", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetElectricalReport(t *testing.T) {
	router := setupRouter(defaultCatalog())

	rr := do(router, http.MethodGet, "/api/professional-calculations/p1/electrical-report", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, rr.Body.String(), "ELECTRICAL REPORT")
}

func TestGetFullAnalysis(t *testing.T) {
	router := setupRouter(defaultCatalog())

	rr := do(router, http.MethodGet, "/api/professional-calculations/p1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Analysis struct {
			Summary struct {
				PumpName   string `json:"pumpName"`
				FilterName string `json:"filterName"`
			} `json:"summary"`
		} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Pump 0.5HP", resp.Analysis.Summary.PumpName)
	assert.Equal(t, "Filter 8", resp.Analysis.Summary.FilterName)
}

func TestValidateCompatibility(t *testing.T) {
	router := setupRouter(defaultCatalog())

	t.Run("compatible", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/professional-calculations/p1/validate",
			[]byte(`{"pumpId":"cheap","filterId":"f8","distanceToEquipment":6}`))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"compatible":true`)
	})

	t.Run("pump too strong for filter", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/professional-calculations/p1/validate",
			[]byte(`{"pumpId":"pricey","filterId":"f8"}`))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"compatible":false`)
	})

	t.Run("missing ids", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/professional-calculations/p1/validate", []byte(`{"pumpId":"cheap"}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown equipment", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/professional-calculations/p1/validate",
			[]byte(`{"pumpId":"ghost","filterId":"f8"}`))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
