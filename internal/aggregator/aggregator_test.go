package aggregator

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthprice-aggregator/internal/cache"
	"github.com/healthprice-aggregator/internal/domain"
)

type fakeProviderDirectory struct {
	calls     int32
	providers []domain.Provider
	err       error
}

func (f *fakeProviderDirectory) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Provider, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.providers, f.err
}

type fakePlaces struct {
	hours *domain.OperatingHours
	err   error
}

func (f *fakePlaces) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Provider, error) {
	return nil, f.err
}

func (f *fakePlaces) OperatingHours(ctx context.Context, addr domain.Address) (*domain.OperatingHours, error) {
	return f.hours, f.err
}

type fakeQuality struct {
	ratings map[string]domain.QualityRatings
	err     error
}

func (f *fakeQuality) Ratings(ctx context.Context, filters domain.SearchFilters) (map[string]domain.QualityRatings, error) {
	return f.ratings, f.err
}

func (f *fakeQuality) RatingsForNPI(ctx context.Context, npi string) (*domain.QualityRatings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.ratings[npi]; ok {
		return &r, nil
	}
	return nil, nil
}

type fakePriceSource struct {
	name   string
	calls  int32
	prices []domain.ProcedurePrice
	err    error
}

func (f *fakePriceSource) Name() string { return f.name }

func (f *fakePriceSource) ProcedurePrices(ctx context.Context, code string, filters domain.SearchFilters) ([]domain.ProcedurePrice, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.prices, f.err
}

type fakePharmacy struct {
	name   string
	quotes []domain.DrugPrice
	err    error
}

func (f *fakePharmacy) Name() string { return f.name }

func (f *fakePharmacy) DrugPrices(ctx context.Context, drugID, zipCode string) ([]domain.DrugPrice, error) {
	return f.quotes, f.err
}

type fakeEmergency struct {
	rooms     []domain.EmergencyRoom
	urgent    []domain.UrgentCare
	erErr     error
	urgentErr error
}

func (f *fakeEmergency) ERWaitTimes(ctx context.Context, lat, lng, radius float64) ([]domain.EmergencyRoom, error) {
	return f.rooms, f.erErr
}

func (f *fakeEmergency) UrgentCareFacilities(ctx context.Context, lat, lng, radius float64) ([]domain.UrgentCare, error) {
	return f.urgent, f.urgentErr
}

type fakeTourism struct {
	destinations []domain.MedicalTourismDestination
}

func (f *fakeTourism) Destinations(ctx context.Context, procedure string) ([]domain.MedicalTourismDestination, error) {
	return f.destinations, nil
}

type fakeTravel struct {
	flights   domain.PriceRange
	flightErr error
}

func (f *fakeTravel) TravelInfo(ctx context.Context, originCountry, destCountry, destCity string) (*domain.TravelInfo, error) {
	return nil, nil
}

func (f *fakeTravel) CostOfLiving(ctx context.Context, city, country string) (*domain.CostOfLivingData, error) {
	return nil, nil
}

func (f *fakeTravel) FlightPrices(ctx context.Context, origin, destination string) (*domain.PriceRange, error) {
	if f.flightErr != nil {
		return nil, f.flightErr
	}
	fares := f.flights
	return &fares, nil
}

func (f *fakeTravel) AccommodationCost(ctx context.Context, city string, nights int) (float64, error) {
	return 100 * float64(nights), nil
}

type fakeWearable struct {
	deviceType string
	metrics    []domain.HealthMetrics
	err        error
}

func (f *fakeWearable) DeviceType() string { return f.deviceType }

func (f *fakeWearable) FetchMetrics(ctx context.Context, userID, accessToken string) ([]domain.HealthMetrics, error) {
	return f.metrics, f.err
}

func newTestAggregator(t *testing.T, sources Sources) *Aggregator {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store, err := cache.NewMemory(64, 0, logger)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	return New(sources, store, DefaultTTLs(), logger)
}

func TestFetchProvidersMergesAndSorts(t *testing.T) {
	directory := &fakeProviderDirectory{providers: []domain.Provider{
		{NPI: "111", Name: "Mid", QualityRatings: domain.QualityRatings{Overall: 4.0}},
		{NPI: "222", Name: "Best", QualityRatings: domain.QualityRatings{Overall: 3.0}},
	}}
	quality := &fakeQuality{ratings: map[string]domain.QualityRatings{
		"222": {Overall: 4.9},
	}}

	agg := newTestAggregator(t, Sources{Providers: directory, Places: &fakePlaces{}, Quality: quality})

	result, err := agg.FetchProviders(context.Background(), domain.SearchFilters{})
	require.NoError(t, err)

	require.Len(t, result.Data, 2)
	assert.Equal(t, "Best", result.Data[0].Name, "quality-enriched rating should drive the default sort")
	assert.Equal(t, 4.9, result.Data[0].QualityRatings.Overall)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.False(t, result.HasMore)
}

func TestFetchProvidersDegradesWhenEnrichmentFails(t *testing.T) {
	directory := &fakeProviderDirectory{providers: []domain.Provider{{NPI: "111", Name: "Only"}}}
	agg := newTestAggregator(t, Sources{
		Providers: directory,
		Places:    &fakePlaces{err: errors.New("places down")},
		Quality:   &fakeQuality{err: errors.New("quality down")},
	})

	result, err := agg.FetchProviders(context.Background(), domain.SearchFilters{})
	require.NoError(t, err, "enrichment failures should not fail the operation")
	assert.Len(t, result.Data, 1)
}

func TestFetchProvidersFailsWhenDirectoryFails(t *testing.T) {
	agg := newTestAggregator(t, Sources{
		Providers: &fakeProviderDirectory{err: errors.New("registry down")},
		Places:    &fakePlaces{},
		Quality:   &fakeQuality{},
	})

	_, err := agg.FetchProviders(context.Background(), domain.SearchFilters{})
	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "npi_registry", upstream.Source)
}

func TestFetchProvidersServedFromCache(t *testing.T) {
	directory := &fakeProviderDirectory{providers: []domain.Provider{{NPI: "111", Name: "Only"}}}
	agg := newTestAggregator(t, Sources{Providers: directory, Places: &fakePlaces{}, Quality: &fakeQuality{}})
	ctx := context.Background()

	first, err := agg.FetchProviders(ctx, domain.SearchFilters{})
	require.NoError(t, err)
	second, err := agg.FetchProviders(ctx, domain.SearchFilters{})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&directory.calls), "second call should hit the cache")
	assert.Equal(t, first.Data, second.Data)
}

func TestFetchProcedurePricesPartialSuccess(t *testing.T) {
	healthy := &fakePriceSource{name: "healthy", prices: []domain.ProcedurePrice{
		price("prov-1", "27447", 85, 30000),
		price("prov-2", "27447", 88, 34000),
	}}
	broken := &fakePriceSource{name: "broken", err: errors.New("upstream 503")}

	agg := newTestAggregator(t, Sources{Prices: []domain.PriceSource{healthy, broken}})

	result, err := agg.FetchProcedurePrices(context.Background(), "27447", domain.SearchFilters{})
	require.NoError(t, err, "one healthy source should be enough")

	require.Len(t, result.Data, 2)
	for _, p := range result.Data {
		assert.Equal(t, 32000.0, p.NationalAverage)
		assert.Equal(t, p.NationalAverage, p.RegionalAverage)
		assert.Equal(t, 30000.0, p.PriceRange.Min)
		assert.Equal(t, 34000.0, p.PriceRange.Max)
	}
	assert.Equal(t, 30000.0, result.Data[0].Pricing.CashPrice, "default sort is cheapest first")
}

func TestFetchProcedurePricesAllSourcesFail(t *testing.T) {
	agg := newTestAggregator(t, Sources{Prices: []domain.PriceSource{
		&fakePriceSource{name: "a", err: errors.New("down")},
		&fakePriceSource{name: "b", err: errors.New("also down")},
	}})

	_, err := agg.FetchProcedurePrices(context.Background(), "27447", domain.SearchFilters{})
	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
}

func TestFetchProcedurePricesServedFromCache(t *testing.T) {
	source := &fakePriceSource{name: "only", prices: []domain.ProcedurePrice{price("prov-1", "27447", 85, 30000)}}
	agg := newTestAggregator(t, Sources{Prices: []domain.PriceSource{source}})
	ctx := context.Background()

	_, err := agg.FetchProcedurePrices(ctx, "27447", domain.SearchFilters{})
	require.NoError(t, err)
	_, err = agg.FetchProcedurePrices(ctx, "27447", domain.SearchFilters{})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&source.calls))
}

func TestFetchDrugPricesSortedByEffectivePrice(t *testing.T) {
	agg := newTestAggregator(t, Sources{Pharmacies: []domain.PharmacyPriceSource{
		&fakePharmacy{name: "a", quotes: []domain.DrugPrice{
			{PharmacyName: "Expensive", Price: 200},
		}},
		&fakePharmacy{name: "b", quotes: []domain.DrugPrice{
			{PharmacyName: "Cheap With Coupon", Price: 300, PriceWithCoupon: 50},
		}},
	}})

	quotes, err := agg.FetchDrugPrices(context.Background(), "drug-001", "90048")
	require.NoError(t, err)

	require.Len(t, quotes, 2)
	assert.Equal(t, "Cheap With Coupon", quotes[0].PharmacyName)
}

func TestFetchDrugPricesAllSourcesFail(t *testing.T) {
	agg := newTestAggregator(t, Sources{Pharmacies: []domain.PharmacyPriceSource{
		&fakePharmacy{name: "a", err: errors.New("down")},
	}})

	_, err := agg.FetchDrugPrices(context.Background(), "drug-001", "90048")
	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
}

func TestFetchEmergencyServicesBothKinds(t *testing.T) {
	feed := &fakeEmergency{
		rooms:  []domain.EmergencyRoom{{ID: "er-1", CurrentWaitTime: 30}},
		urgent: []domain.UrgentCare{{ID: "uc-1"}},
	}
	agg := newTestAggregator(t, Sources{Emergency: feed})

	services, err := agg.FetchEmergencyServices(context.Background(), 34.05, -118.24, 25, "all")
	require.NoError(t, err)
	assert.Len(t, services.EmergencyRooms, 1)
	assert.Len(t, services.UrgentCare, 1)
}

func TestFetchEmergencyServicesPartialFeedFailure(t *testing.T) {
	feed := &fakeEmergency{
		urgent: []domain.UrgentCare{{ID: "uc-1"}},
		erErr:  errors.New("er feed down"),
	}
	agg := newTestAggregator(t, Sources{Emergency: feed})

	services, err := agg.FetchEmergencyServices(context.Background(), 34.05, -118.24, 25, "all")
	require.NoError(t, err)
	assert.Empty(t, services.EmergencyRooms)
	assert.Len(t, services.UrgentCare, 1)

	_, err = agg.FetchEmergencyServices(context.Background(), 34.05, -118.24, 25, "er")
	require.Error(t, err, "the only requested kind failing should fail the operation")
}

func TestCalculateTravelCost(t *testing.T) {
	agg := newTestAggregator(t, Sources{
		Tourism: &fakeTourism{destinations: []domain.MedicalTourismDestination{{
			ID:           "dest-1",
			City:         "Tijuana",
			Country:      "Mexico",
			TravelInfo:   domain.TravelInfo{LocalTransportDaily: 5},
			CostOfLiving: domain.CostOfLivingData{MealCostAverage: 10},
		}}},
		Travel: &fakeTravel{flights: domain.PriceRange{Min: 100, Max: 200, Median: 150, Percentile25: 120, Percentile75: 180}},
	})

	result, err := agg.CalculateTravelCost(context.Background(), "dest-1", "Los Angeles", 7)
	require.NoError(t, err)

	costs := result.TravelCosts
	assert.Equal(t, 700.0, costs.Accommodation)
	assert.Equal(t, 210.0, costs.Meals, "3 meals a day for 7 days at 10 each")
	assert.Equal(t, 35.0, costs.Transport)
	assert.Equal(t, 100.0+945.0, costs.Total.Min)
	assert.Equal(t, 200.0+945.0, costs.Total.Max)
	assert.Equal(t, "dest-1", result.Destination.ID)
}

func TestCalculateTravelCostUnknownDestination(t *testing.T) {
	agg := newTestAggregator(t, Sources{
		Tourism: &fakeTourism{},
		Travel:  &fakeTravel{},
	})

	_, err := agg.CalculateTravelCost(context.Background(), "dest-999", "Los Angeles", 7)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.ErrDestinationNotFound, notFound.Code)
}

func TestSyncWearableData(t *testing.T) {
	agg := newTestAggregator(t, Sources{Wearables: []domain.WearableConnector{
		&fakeWearable{deviceType: "fitbit", metrics: []domain.HealthMetrics{{UserID: "u1", Steps: 9000}}},
	}})

	metrics, err := agg.SyncWearableData(context.Background(), "u1", "fitbit", "token")
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, 9000, metrics[0].Steps)
}

func TestSyncWearableDataUnknownDevice(t *testing.T) {
	agg := newTestAggregator(t, Sources{Wearables: []domain.WearableConnector{
		&fakeWearable{deviceType: "fitbit"},
	}})

	_, err := agg.SyncWearableData(context.Background(), "u1", "unknown_brand", "token")
	var deviceErr *domain.UnsupportedDeviceError
	require.ErrorAs(t, err, &deviceErr)
	assert.Equal(t, "unknown_brand", deviceErr.DeviceType)
}

func TestFetchProviderByNPI(t *testing.T) {
	directory := &fakeProviderDirectory{providers: []domain.Provider{
		{NPI: "1234567890", Name: "Cedars-Sinai Medical Center"},
	}}
	hours := &domain.OperatingHours{Is24Hours: true}
	agg := newTestAggregator(t, Sources{
		Providers: directory,
		Places:    &fakePlaces{hours: hours},
		Quality:   &fakeQuality{ratings: map[string]domain.QualityRatings{"1234567890": {Overall: 4.8}}},
	})

	provider, err := agg.FetchProviderByNPI(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "Cedars-Sinai Medical Center", provider.Name)
	assert.True(t, provider.OperatingHours.Is24Hours)
	assert.Equal(t, 4.8, provider.QualityRatings.Overall)
}

func TestFetchProviderByNPINotFound(t *testing.T) {
	agg := newTestAggregator(t, Sources{
		Providers: &fakeProviderDirectory{},
		Places:    &fakePlaces{},
		Quality:   &fakeQuality{},
	})

	_, err := agg.FetchProviderByNPI(context.Background(), "0000000000")
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.ErrProviderNotFound, notFound.Code)
}
