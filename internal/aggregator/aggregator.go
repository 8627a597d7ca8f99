package aggregator

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/healthprice-aggregator/internal/domain"
)

// TTLs holds the cache lifetime per data category. Emergency data goes
// stale in minutes; trial and insurance listings barely move day to day.
type TTLs struct {
	Default    time.Duration
	Emergency  time.Duration
	DrugPrices time.Duration
	Trials     time.Duration
	Insurance  time.Duration
}

// DefaultTTLs returns the standard cache lifetimes.
func DefaultTTLs() TTLs {
	return TTLs{
		Default:    5 * time.Minute,
		Emergency:  2 * time.Minute,
		DrugPrices: time.Hour,
		Trials:     24 * time.Hour,
		Insurance:  24 * time.Hour,
	}
}

// Sources bundles the upstream clients the aggregator fans out to. Price
// and pharmacy sources are slices because their results get merged; the
// rest are single authoritative feeds.
type Sources struct {
	Providers    domain.ProviderDirectory
	Places       domain.PlacesDirectory
	Quality      domain.QualityRatingSource
	Prices       []domain.PriceSource
	Pharmacies   []domain.PharmacyPriceSource
	Drugs        domain.DrugCatalog
	Telemedicine domain.TelemedicineDirectory
	Emergency    domain.EmergencyFeed
	Trials       domain.TrialRegistry
	Tourism      domain.TourismDirectory
	Travel       domain.TravelCostSource
	Insurance    domain.InsuranceMarketplace
	Wearables    []domain.WearableConnector
}

// Aggregator orchestrates parallel fetches across upstream sources, merges
// the results, and caches each operation's output under a key derived from
// its inputs. Every operation is cache-aside: a live cached result short-
// circuits the fan-out entirely.
type Aggregator struct {
	sources Sources
	cache   domain.Cache
	ttls    TTLs
	logger  *logrus.Logger
}

// New creates an aggregator. Zero-valued TTL fields get the defaults.
func New(sources Sources, cache domain.Cache, ttls TTLs, logger *logrus.Logger) *Aggregator {
	defaults := DefaultTTLs()
	if ttls.Default <= 0 {
		ttls.Default = defaults.Default
	}
	if ttls.Emergency <= 0 {
		ttls.Emergency = defaults.Emergency
	}
	if ttls.DrugPrices <= 0 {
		ttls.DrugPrices = defaults.DrugPrices
	}
	if ttls.Trials <= 0 {
		ttls.Trials = defaults.Trials
	}
	if ttls.Insurance <= 0 {
		ttls.Insurance = defaults.Insurance
	}

	return &Aggregator{
		sources: sources,
		cache:   cache,
		ttls:    ttls,
		logger:  logger,
	}
}

// cacheKey derives a stable key from the operation name and its inputs.
// Inputs are hashed so keys stay short regardless of filter complexity.
func cacheKey(op string, input any) string {
	payload, _ := json.Marshal(input)
	sum := sha256.Sum256(append([]byte(op+":"), payload...))
	return fmt.Sprintf("%s:%x", op, sum[:8])
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func freshness(frequency string) domain.DataFreshness {
	return domain.DataFreshness{
		LastUpdated:     nowISO(),
		UpdateFrequency: frequency,
		IsStale:         false,
	}
}

// FetchProviders searches the provider directory, enriched in parallel with
// place details and quality ratings. The NPI registry is the required
// source; enrichment failures degrade to a partial result with a warning.
func (a *Aggregator) FetchProviders(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult[domain.Provider], error) {
	filters = normalizeFilters(filters, "rating", "desc")

	key := cacheKey("providers", filters)
	var cached domain.SearchResult[domain.Provider]
	if a.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	var (
		base    []domain.Provider
		places  []domain.Provider
		quality map[string]domain.QualityRatings

		baseErr, placesErr, qualityErr error
	)

	done := make(chan struct{})
	go func() {
		base, baseErr = a.sources.Providers.Search(ctx, filters)
		done <- struct{}{}
	}()
	go func() {
		places, placesErr = a.sources.Places.Search(ctx, filters)
		done <- struct{}{}
	}()
	go func() {
		quality, qualityErr = a.sources.Quality.Ratings(ctx, filters)
		done <- struct{}{}
	}()
	for i := 0; i < 3; i++ {
		<-done
	}

	if baseErr != nil {
		return nil, &domain.UpstreamError{Source: "npi_registry", Err: baseErr}
	}
	if placesErr != nil {
		a.logger.WithError(placesErr).Warn("Places enrichment failed, continuing without it")
		places = nil
	}
	if qualityErr != nil {
		a.logger.WithError(qualityErr).Warn("Quality ratings unavailable, continuing without them")
		quality = nil
	}

	a.logger.WithFields(logrus.Fields{
		"registry_results": len(base),
		"places_results":   len(places),
		"quality_results":  len(quality),
	}).Debug("Provider sources fetched")

	merged := mergeProviderQuality(base, quality)
	filtered := filterProviders(merged, filters)
	sortProviders(filtered, filters.SortBy, filters.SortOrder)
	pageItems, total, hasMore := paginate(filtered, filters.Page, filters.Limit)

	result := &domain.SearchResult[domain.Provider]{
		Data:          pageItems,
		Total:         total,
		Page:          filters.Page,
		Limit:         filters.Limit,
		HasMore:       hasMore,
		Filters:       filters,
		DataFreshness: freshness("daily"),
	}
	a.cache.Set(ctx, key, result, a.ttls.Default)
	return result, nil
}

// FetchProviderByNPI looks up a single provider, enriched in parallel with
// operating hours and NPI-level quality ratings.
func (a *Aggregator) FetchProviderByNPI(ctx context.Context, npi string) (*domain.Provider, error) {
	key := cacheKey("provider", npi)
	var cached domain.Provider
	if a.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	matches, err := a.sources.Providers.Search(ctx, domain.SearchFilters{Query: npi})
	if err != nil {
		return nil, &domain.UpstreamError{Source: "npi_registry", Err: err}
	}
	var provider *domain.Provider
	for i := range matches {
		if matches[i].NPI == npi {
			provider = &matches[i]
			break
		}
	}
	if provider == nil {
		return nil, domain.NewNotFoundError(domain.ErrProviderNotFound, "No provider found for NPI "+npi)
	}

	var (
		hours    *domain.OperatingHours
		ratings  *domain.QualityRatings
		hoursErr error
		rateErr  error
	)
	done := make(chan struct{})
	go func() {
		hours, hoursErr = a.sources.Places.OperatingHours(ctx, provider.Address)
		done <- struct{}{}
	}()
	go func() {
		ratings, rateErr = a.sources.Quality.RatingsForNPI(ctx, npi)
		done <- struct{}{}
	}()
	<-done
	<-done

	if hoursErr != nil {
		a.logger.WithError(hoursErr).WithField("npi", npi).Warn("Operating hours unavailable")
	} else if hours != nil {
		provider.OperatingHours = *hours
	}
	if rateErr != nil {
		a.logger.WithError(rateErr).WithField("npi", npi).Warn("Quality ratings unavailable")
	} else if ratings != nil {
		provider.QualityRatings = *ratings
	}

	a.cache.Set(ctx, key, provider, a.ttls.Default)
	return provider, nil
}

// FetchProcedurePrices fans out to every price source in parallel, merges
// the results keeping the highest-confidence record per provider, and
// attaches national/regional averages plus a nearest-rank price range
// computed over the merged set. The operation fails only when every source
// fails.
func (a *Aggregator) FetchProcedurePrices(ctx context.Context, procedureCode string, filters domain.SearchFilters) (*domain.SearchResult[domain.ProcedurePrice], error) {
	filters = normalizeFilters(filters, "price", "asc")
	filters.ProcedureCode = procedureCode

	key := cacheKey("prices", filters)
	var cached domain.SearchResult[domain.ProcedurePrice]
	if a.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	results := make([][]domain.ProcedurePrice, len(a.sources.Prices))
	errs := make([]error, len(a.sources.Prices))

	done := make(chan struct{})
	for i, source := range a.sources.Prices {
		go func(i int, source domain.PriceSource) {
			results[i], errs[i] = source.ProcedurePrices(ctx, procedureCode, filters)
			done <- struct{}{}
		}(i, source)
	}
	for range a.sources.Prices {
		<-done
	}

	failures := 0
	var firstErr error
	for i, err := range errs {
		if err == nil {
			continue
		}
		failures++
		if firstErr == nil {
			firstErr = err
		}
		a.logger.WithError(err).WithField("source", a.sources.Prices[i].Name()).Warn("Price source failed")
	}
	if len(a.sources.Prices) > 0 && failures == len(a.sources.Prices) {
		return nil, &domain.UpstreamError{Source: "price_sources", Err: firstErr}
	}

	merged := mergePrices(results...)

	national := nationalAverage(merged)
	regional := regionalAverage(merged, filters.State)
	priceRange := computePriceRange(merged)
	for i := range merged {
		merged[i].NationalAverage = national
		merged[i].RegionalAverage = regional
		merged[i].PriceRange = priceRange
	}

	filtered := filterPrices(merged, filters)
	sortPrices(filtered, filters.SortBy, filters.SortOrder)
	pageItems, total, hasMore := paginate(filtered, filters.Page, filters.Limit)

	result := &domain.SearchResult[domain.ProcedurePrice]{
		Data:          pageItems,
		Total:         total,
		Page:          filters.Page,
		Limit:         filters.Limit,
		HasMore:       hasMore,
		Filters:       filters,
		DataFreshness: freshness("weekly"),
	}
	a.cache.Set(ctx, key, result, a.ttls.Default)
	return result, nil
}

type drugPriceQuery struct {
	DrugID  string `json:"drugId"`
	ZipCode string `json:"zipCode"`
}

// FetchDrugPrices gathers pharmacy quotes from every discount source in
// parallel and returns them cheapest-first by effective (post-coupon)
// price. The operation fails only when every source fails.
func (a *Aggregator) FetchDrugPrices(ctx context.Context, drugID, zipCode string) ([]domain.DrugPrice, error) {
	key := cacheKey("drug_prices", drugPriceQuery{DrugID: drugID, ZipCode: zipCode})
	var cached []domain.DrugPrice
	if a.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	results := make([][]domain.DrugPrice, len(a.sources.Pharmacies))
	errs := make([]error, len(a.sources.Pharmacies))

	done := make(chan struct{})
	for i, source := range a.sources.Pharmacies {
		go func(i int, source domain.PharmacyPriceSource) {
			results[i], errs[i] = source.DrugPrices(ctx, drugID, zipCode)
			done <- struct{}{}
		}(i, source)
	}
	for range a.sources.Pharmacies {
		<-done
	}

	failures := 0
	var firstErr error
	for i, err := range errs {
		if err == nil {
			continue
		}
		failures++
		if firstErr == nil {
			firstErr = err
		}
		a.logger.WithError(err).WithField("source", a.sources.Pharmacies[i].Name()).Warn("Pharmacy source failed")
	}
	if len(a.sources.Pharmacies) > 0 && failures == len(a.sources.Pharmacies) {
		return nil, &domain.UpstreamError{Source: "pharmacy_sources", Err: firstErr}
	}

	var quotes []domain.DrugPrice
	for _, r := range results {
		quotes = append(quotes, r...)
	}
	sortDrugPrices(quotes)

	a.cache.Set(ctx, key, quotes, a.ttls.DrugPrices)
	return quotes, nil
}

// SearchDrugs queries the drug catalog by name.
func (a *Aggregator) SearchDrugs(ctx context.Context, query string) ([]domain.Drug, error) {
	key := cacheKey("drugs", query)
	var cached []domain.Drug
	if a.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	drugs, err := a.sources.Drugs.SearchDrugs(ctx, query)
	if err != nil {
		return nil, &domain.UpstreamError{Source: "drug_catalog", Err: err}
	}

	a.cache.Set(ctx, key, drugs, a.ttls.DrugPrices)
	return drugs, nil
}

type telemedicineQuery struct {
	Specialty string `json:"specialty"`
	State     string `json:"state"`
}

// FetchTelemedicineProviders lists virtual-care platforms, optionally
// narrowed by specialty and state availability.
func (a *Aggregator) FetchTelemedicineProviders(ctx context.Context, specialty, state string) ([]domain.TelemedicineProvider, error) {
	key := cacheKey("telemedicine", telemedicineQuery{Specialty: specialty, State: state})
	var cached []domain.TelemedicineProvider
	if a.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	providers, err := a.sources.Telemedicine.Providers(ctx, specialty, state)
	if err != nil {
		return nil, &domain.UpstreamError{Source: "telemedicine", Err: err}
	}

	a.cache.Set(ctx, key, providers, a.ttls.Default)
	return providers, nil
}

type emergencyQuery struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius float64 `json:"radius"`
}

// FetchEmergencyServices fetches ER wait times and urgent-care listings
// near a point, in parallel when both are requested. serviceType is "er",
// "urgent", or "all" (the default). ER data is cached on the short
// emergency TTL since wait times go stale in minutes; urgent-care listings
// use the default TTL.
func (a *Aggregator) FetchEmergencyServices(ctx context.Context, lat, lng, radiusMiles float64, serviceType string) (*domain.EmergencyServices, error) {
	wantER := serviceType == "er" || serviceType == "all" || serviceType == ""
	wantUrgent := serviceType == "urgent" || serviceType == "all" || serviceType == ""

	query := emergencyQuery{Lat: lat, Lng: lng, Radius: radiusMiles}

	var (
		rooms  []domain.EmergencyRoom
		urgent []domain.UrgentCare

		erErr, urgentErr error
	)

	done := make(chan struct{})
	launched := 0
	if wantER {
		launched++
		go func() {
			rooms, erErr = a.fetchERWaitTimes(ctx, query)
			done <- struct{}{}
		}()
	}
	if wantUrgent {
		launched++
		go func() {
			urgent, urgentErr = a.fetchUrgentCare(ctx, query)
			done <- struct{}{}
		}()
	}
	for i := 0; i < launched; i++ {
		<-done
	}

	if erErr != nil && urgentErr != nil {
		return nil, &domain.UpstreamError{Source: "emergency_feed", Err: erErr}
	}
	if wantER && erErr != nil {
		if !wantUrgent {
			return nil, &domain.UpstreamError{Source: "emergency_feed", Err: erErr}
		}
		a.logger.WithError(erErr).Warn("ER wait times unavailable")
	}
	if wantUrgent && urgentErr != nil {
		if !wantER {
			return nil, &domain.UpstreamError{Source: "emergency_feed", Err: urgentErr}
		}
		a.logger.WithError(urgentErr).Warn("Urgent care listings unavailable")
	}

	return &domain.EmergencyServices{
		EmergencyRooms: rooms,
		UrgentCare:     urgent,
	}, nil
}

func (a *Aggregator) fetchERWaitTimes(ctx context.Context, query emergencyQuery) ([]domain.EmergencyRoom, error) {
	key := cacheKey("emergency_er", query)
	var cached []domain.EmergencyRoom
	if a.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rooms, err := a.sources.Emergency.ERWaitTimes(ctx, query.Lat, query.Lng, query.Radius)
	if err != nil {
		return nil, err
	}

	a.cache.Set(ctx, key, rooms, a.ttls.Emergency)
	return rooms, nil
}

func (a *Aggregator) fetchUrgentCare(ctx context.Context, query emergencyQuery) ([]domain.UrgentCare, error) {
	key := cacheKey("emergency_urgent", query)
	var cached []domain.UrgentCare
	if a.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	facilities, err := a.sources.Emergency.UrgentCareFacilities(ctx, query.Lat, query.Lng, query.Radius)
	if err != nil {
		return nil, err
	}

	a.cache.Set(ctx, key, facilities, a.ttls.Default)
	return facilities, nil
}

type trialQuery struct {
	Condition string              `json:"condition"`
	Filters   domain.TrialFilters `json:"filters"`
}

// FetchClinicalTrials searches the trial registry by condition.
func (a *Aggregator) FetchClinicalTrials(ctx context.Context, condition string, filters domain.TrialFilters) ([]domain.ClinicalTrial, error) {
	key := cacheKey("trials", trialQuery{Condition: condition, Filters: filters})
	var cached []domain.ClinicalTrial
	if a.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	trials, err := a.sources.Trials.Search(ctx, condition, filters)
	if err != nil {
		return nil, &domain.UpstreamError{Source: "trial_registry", Err: err}
	}

	a.cache.Set(ctx, key, trials, a.ttls.Trials)
	return trials, nil
}

// FetchTourismDestinations lists destinations for a procedure, enriching
// each with live travel and cost-of-living data in parallel. Enrichment
// failures leave the destination's baseline figures in place.
func (a *Aggregator) FetchTourismDestinations(ctx context.Context, procedureName string) ([]domain.MedicalTourismDestination, error) {
	key := cacheKey("tourism", procedureName)
	var cached []domain.MedicalTourismDestination
	if a.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	destinations, err := a.sources.Tourism.Destinations(ctx, procedureName)
	if err != nil {
		return nil, &domain.UpstreamError{Source: "tourism_directory", Err: err}
	}

	done := make(chan struct{})
	for i := range destinations {
		go func(dest *domain.MedicalTourismDestination) {
			defer func() { done <- struct{}{} }()

			var (
				travel *domain.TravelInfo
				col    *domain.CostOfLivingData

				travelErr, colErr error
			)
			inner := make(chan struct{})
			go func() {
				travel, travelErr = a.sources.Travel.TravelInfo(ctx, "US", dest.Country, dest.City)
				inner <- struct{}{}
			}()
			go func() {
				col, colErr = a.sources.Travel.CostOfLiving(ctx, dest.City, dest.Country)
				inner <- struct{}{}
			}()
			<-inner
			<-inner

			if travelErr != nil {
				a.logger.WithError(travelErr).WithField("city", dest.City).Warn("Travel info unavailable")
			} else if travel != nil {
				dest.TravelInfo = *travel
			}
			if colErr != nil {
				a.logger.WithError(colErr).WithField("city", dest.City).Warn("Cost of living unavailable")
			} else if col != nil {
				dest.CostOfLiving = *col
			}
		}(&destinations[i])
	}
	for range destinations {
		<-done
	}

	a.cache.Set(ctx, key, destinations, a.ttls.Default)
	return destinations, nil
}

type travelCostQuery struct {
	DestinationID string `json:"destinationId"`
	UserLocation  string `json:"userLocation"`
	StayDays      int    `json:"stayDays"`
}

// CalculateTravelCost itemizes the cost of a medical-tourism trip: flight
// range plus accommodation, meals, and local transport scaled by the stay
// length. Both travel quotes are required; either failing fails the
// operation.
func (a *Aggregator) CalculateTravelCost(ctx context.Context, destinationID, userLocation string, stayDays int) (*domain.TourismCostResult, error) {
	if stayDays < 1 {
		stayDays = 7
	}

	query := travelCostQuery{DestinationID: destinationID, UserLocation: userLocation, StayDays: stayDays}
	key := cacheKey("travel_cost", query)
	var cached domain.TourismCostResult
	if a.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	destinations, err := a.FetchTourismDestinations(ctx, "")
	if err != nil {
		return nil, err
	}
	var dest *domain.MedicalTourismDestination
	for i := range destinations {
		if destinations[i].ID == destinationID {
			dest = &destinations[i]
			break
		}
	}
	if dest == nil {
		return nil, domain.NewNotFoundError(domain.ErrDestinationNotFound, "Destination not found: "+destinationID)
	}

	var (
		flights       *domain.PriceRange
		accommodation float64

		flightErr, accomErr error
	)
	done := make(chan struct{})
	go func() {
		flights, flightErr = a.sources.Travel.FlightPrices(ctx, userLocation, dest.City)
		done <- struct{}{}
	}()
	go func() {
		accommodation, accomErr = a.sources.Travel.AccommodationCost(ctx, dest.City, stayDays)
		done <- struct{}{}
	}()
	<-done
	<-done

	if flightErr != nil {
		return nil, &domain.UpstreamError{Source: "travel_costs", Err: flightErr}
	}
	if accomErr != nil {
		return nil, &domain.UpstreamError{Source: "travel_costs", Err: accomErr}
	}

	meals := dest.CostOfLiving.MealCostAverage * 3 * float64(stayDays)
	transport := dest.TravelInfo.LocalTransportDaily * float64(stayDays)
	ground := accommodation + meals + transport

	result := &domain.TourismCostResult{
		Destination: *dest,
		TravelCosts: domain.TravelCostBreakdown{
			Flights:       *flights,
			Accommodation: accommodation,
			Meals:         meals,
			Transport:     transport,
			Total: domain.PriceRange{
				Min:          flights.Min + ground,
				Max:          flights.Max + ground,
				Median:       flights.Median + ground,
				Percentile25: flights.Percentile25 + ground,
				Percentile75: flights.Percentile75 + ground,
			},
		},
	}

	a.cache.Set(ctx, key, result, a.ttls.Default)
	return result, nil
}

type insuranceQuery struct {
	State   string                      `json:"state"`
	Filters domain.InsurancePlanFilters `json:"filters"`
}

// FetchInsurancePlans lists marketplace plans available in a state.
func (a *Aggregator) FetchInsurancePlans(ctx context.Context, state string, filters domain.InsurancePlanFilters) ([]domain.InsurancePlan, error) {
	key := cacheKey("insurance", insuranceQuery{State: state, Filters: filters})
	var cached []domain.InsurancePlan
	if a.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	plans, err := a.sources.Insurance.Plans(ctx, state, filters)
	if err != nil {
		return nil, &domain.UpstreamError{Source: "insurance_marketplace", Err: err}
	}

	a.cache.Set(ctx, key, plans, a.ttls.Insurance)
	return plans, nil
}

// SyncWearableData pulls health metrics from the connector matching
// deviceType. Unknown device types are rejected before any upstream call.
// Sync results are never cached; every call hits the vendor API.
func (a *Aggregator) SyncWearableData(ctx context.Context, userID, deviceType, accessToken string) ([]domain.HealthMetrics, error) {
	var connector domain.WearableConnector
	for _, c := range a.sources.Wearables {
		if c.DeviceType() == deviceType {
			connector = c
			break
		}
	}
	if connector == nil {
		return nil, &domain.UnsupportedDeviceError{DeviceType: deviceType}
	}

	metrics, err := connector.FetchMetrics(ctx, userID, accessToken)
	if err != nil {
		return nil, &domain.UpstreamError{Source: deviceType, Err: err}
	}

	a.logger.WithFields(logrus.Fields{
		"device_type": deviceType,
		"metrics":     len(metrics),
	}).Info("Wearable sync completed")
	return metrics, nil
}

// ClearCache drops every cached result.
func (a *Aggregator) ClearCache(ctx context.Context) {
	a.cache.Clear(ctx)
}

// CacheSize reports the number of live cache entries.
func (a *Aggregator) CacheSize() int {
	return a.cache.Len()
}
