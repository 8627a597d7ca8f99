package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthprice-aggregator/internal/aggregator"
	"github.com/healthprice-aggregator/internal/cache"
	"github.com/healthprice-aggregator/internal/domain"
	"github.com/healthprice-aggregator/internal/sources"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store, err := cache.NewMemory(256, 0, logger)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	var cfg domain.SourcesConfig
	agg := aggregator.New(aggregator.Sources{
		Providers: sources.NewNPIClient(cfg.NPIRegistry, logger),
		Places:    sources.NewPlacesClient(cfg.GooglePlaces, logger),
		Quality:   sources.NewQualityClient(cfg.QualityData, logger),
		Prices: []domain.PriceSource{
			sources.NewCMSPriceClient(cfg.CMS, logger),
			sources.NewFairHealthClient(cfg.FairHealth, logger),
			sources.NewUserReportedPrices(logger),
		},
		Pharmacies: []domain.PharmacyPriceSource{
			sources.NewGoodRxClient(cfg.GoodRx, logger),
			sources.NewRxSaverClient(cfg.RxSaver, logger),
			sources.NewBlinkHealthClient(cfg.BlinkHealth, logger),
		},
		Drugs:        sources.NewFDAClient(cfg.FDA, logger),
		Telemedicine: sources.NewTelemedicineClient(cfg.Telemedicine, logger),
		Emergency:    sources.NewEmergencyFeedClient(cfg.EmergencyFeed, logger),
		Trials:       sources.NewTrialsClient(cfg.Trials, logger),
		Tourism:      sources.NewTourismClient(cfg.Tourism, logger),
		Travel:       sources.NewTravelClient(cfg.Travel, logger),
		Insurance:    sources.NewMarketplaceClient(cfg.HealthcareGov, logger),
		Wearables:    sources.NewWearableConnectors(logger),
	}, store, aggregator.DefaultTTLs(), logger)

	return NewServer(&domain.ServerConfig{Host: "127.0.0.1", Port: 8080}, agg, logger)
}

func doRequest(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool                 `json:"success"`
	Data    json.RawMessage      `json:"data"`
	Error   *domain.APIError     `json:"error"`
	Meta    *domain.ResponseMeta `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProvidersEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/providers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Meta)
	assert.NotEmpty(t, env.Meta.RequestID)
	assert.NotEmpty(t, env.Meta.DataSources)

	var result domain.SearchResult[domain.Provider]
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(t, result.Data)
	assert.Equal(t, len(result.Data), result.Total)

	for i := 1; i < len(result.Data); i++ {
		assert.GreaterOrEqual(t,
			result.Data[i-1].QualityRatings.Overall,
			result.Data[i].QualityRatings.Overall,
			"default sort is rating descending")
	}
}

func TestProviderByNPIEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/providers/1234567890", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var provider domain.Provider
	require.NoError(t, json.Unmarshal(env.Data, &provider))
	assert.Equal(t, "1234567890", provider.NPI)
	assert.NotNil(t, provider.OperatingHours.Monday, "hours enrichment should be applied")

	rec = doRequest(t, s, http.MethodGet, "/api/providers/0000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	env = decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.ErrProviderNotFound, env.Error.Code)
}

func TestPricesRequiresProcedureCode(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/prices", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.ErrMissingProcedureCode, env.Error.Code)
}

func TestPricesEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/prices?procedureCode=27447", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var result domain.SearchResult[domain.ProcedurePrice]
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(t, result.Data)

	for i, p := range result.Data {
		assert.Equal(t, "27447", p.ProcedureCode)
		assert.Positive(t, p.NationalAverage)
		r := p.PriceRange
		assert.LessOrEqual(t, r.Min, r.Median)
		assert.LessOrEqual(t, r.Median, r.Max)
		if i > 0 {
			assert.GreaterOrEqual(t, p.Pricing.CashPrice, result.Data[i-1].Pricing.CashPrice,
				"default sort is cheapest first")
		}
	}
}

func TestPricesPagination(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/prices?procedureCode=27447&page=1&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var result domain.SearchResult[domain.ProcedurePrice]
	require.NoError(t, json.Unmarshal(env.Data, &result))

	assert.Len(t, result.Data, 2)
	assert.Greater(t, result.Total, 2, "total must count the full merged set")
	assert.True(t, result.HasMore)
}

func TestDrugsEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing params", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/drugs", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, domain.ErrMissingParams, env.Error.Code)
	})

	t.Run("catalog search", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/drugs?query=lipitor", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		var drugs []domain.Drug
		require.NoError(t, json.Unmarshal(env.Data, &drugs))
		require.NotEmpty(t, drugs)
		assert.Equal(t, "Lipitor", drugs[0].Name)
	})

	t.Run("pharmacy quotes sorted by effective price", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/drugs?drugId=drug-001&zipCode=90048", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		var quotes []domain.DrugPrice
		require.NoError(t, json.Unmarshal(env.Data, &quotes))
		require.NotEmpty(t, quotes)

		for i := 1; i < len(quotes); i++ {
			assert.LessOrEqual(t, quotes[i-1].EffectivePrice(), quotes[i].EffectivePrice())
		}
	})
}

func TestEmergencyEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing location", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/emergency", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, domain.ErrMissingLocation, env.Error.Code)
	})

	t.Run("both service kinds returned by default", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/emergency?lat=34.05&lng=-118.24", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		var services domain.EmergencyServices
		require.NoError(t, json.Unmarshal(env.Data, &services))
		assert.NotEmpty(t, services.EmergencyRooms)
		assert.NotEmpty(t, services.UrgentCare)
	})
}

func TestClinicalTrialsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/clinical-trials", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, domain.ErrMissingCondition, env.Error.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/clinical-trials?condition=diabetes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	var trials []domain.ClinicalTrial
	require.NoError(t, json.Unmarshal(env.Data, &trials))
	require.NotEmpty(t, trials)
	assert.Contains(t, trials[0].Conditions, "diabetes")
}

func TestMedicalTourismEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("destination listing", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/medical-tourism", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		var destinations []domain.MedicalTourismDestination
		require.NoError(t, json.Unmarshal(env.Data, &destinations))
		assert.NotEmpty(t, destinations)
	})

	t.Run("travel cost requires userLocation", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/medical-tourism?calculateCosts=true&destinationId=dest-1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, domain.ErrMissingParams, env.Error.Code)
	})

	t.Run("travel cost estimate", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/medical-tourism?calculateCosts=true&destinationId=dest-1&userLocation=Los+Angeles&stayDays=7", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		var result domain.TourismCostResult
		require.NoError(t, json.Unmarshal(env.Data, &result))

		assert.Equal(t, "dest-1", result.Destination.ID)
		assert.Equal(t, 700.0, result.TravelCosts.Accommodation)
		assert.Greater(t, result.TravelCosts.Total.Min, result.TravelCosts.Flights.Min)
	})

	t.Run("unknown destination", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/medical-tourism?calculateCosts=true&destinationId=dest-999&userLocation=Los+Angeles", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, domain.ErrDestinationNotFound, env.Error.Code)
	})
}

func TestTelemedicineEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/telemedicine?specialty=mental_health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var providers []domain.TelemedicineProvider
	require.NoError(t, json.Unmarshal(env.Data, &providers))
	require.NotEmpty(t, providers)
	for _, p := range providers {
		assert.Contains(t, p.Specialties, "mental_health")
	}
}

func TestInsuranceEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/insurance", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, domain.ErrMissingState, env.Error.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/insurance?state=CA&metalLevels=silver", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	var plans []domain.InsurancePlan
	require.NoError(t, json.Unmarshal(env.Data, &plans))
	require.NotEmpty(t, plans)
	for _, plan := range plans {
		assert.Equal(t, "silver", plan.MetalLevel)
	}
}

func TestWearablesEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("device catalog", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/wearables", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		var devices []domain.SupportedDevice
		require.NoError(t, json.Unmarshal(env.Data, &devices))
		assert.Len(t, devices, 6)
	})

	t.Run("missing body fields", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/wearables", map[string]string{"userId": "u1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, domain.ErrMissingParams, env.Error.Code)
	})

	t.Run("unsupported device", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/wearables", map[string]string{
			"userId": "u1", "deviceType": "unknown_brand", "accessToken": "token",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, domain.ErrInvalidDevice, env.Error.Code)
	})

	t.Run("sync succeeds", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/wearables", map[string]string{
			"userId": "u1", "deviceType": "fitbit", "accessToken": "token",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)

		var result struct {
			Metrics  []domain.HealthMetrics `json:"metrics"`
			SyncedAt string                 `json:"syncedAt"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &result))
		require.NotEmpty(t, result.Metrics)
		assert.Equal(t, "fitbit", result.Metrics[0].Source)
		assert.NotEmpty(t, result.SyncedAt)
	})
}
