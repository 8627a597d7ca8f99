package domain

import (
	"context"
	"time"
)

// Cache is keyed storage with per-entry TTLs. Values round-trip through
// JSON, so callers pass a pointer destination to Get. Cache failures are
// best-effort and never surface to callers as operation errors.
type Cache interface {
	// Get decodes the entry for key into dest and reports whether a live
	// (unexpired) entry was found. Expired entries are evicted on read.
	Get(ctx context.Context, key string, dest any) bool
	// Set stores value under key, expiring after ttl.
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
	Len() int
}

// ProviderDirectory is the primary provider listing source (NPPES NPI
// registry).
type ProviderDirectory interface {
	Search(ctx context.Context, filters SearchFilters) ([]Provider, error)
}

// PlacesDirectory supplies location-centric provider details (Google
// Places).
type PlacesDirectory interface {
	Search(ctx context.Context, filters SearchFilters) ([]Provider, error)
	OperatingHours(ctx context.Context, addr Address) (*OperatingHours, error)
}

// QualityRatingSource supplies quality scores keyed by NPI (CMS Hospital
// Compare, Leapfrog).
type QualityRatingSource interface {
	Ratings(ctx context.Context, filters SearchFilters) (map[string]QualityRatings, error)
	RatingsForNPI(ctx context.Context, npi string) (*QualityRatings, error)
}

// PriceSource supplies procedure prices for a CPT/HCPCS code (CMS
// transparency files, FAIR Health, user reports).
type PriceSource interface {
	Name() string
	ProcedurePrices(ctx context.Context, procedureCode string, filters SearchFilters) ([]ProcedurePrice, error)
}

// PharmacyPriceSource supplies per-pharmacy drug quotes (GoodRx, RxSaver,
// Blink Health).
type PharmacyPriceSource interface {
	Name() string
	DrugPrices(ctx context.Context, drugID, zipCode string) ([]DrugPrice, error)
}

// DrugCatalog searches the drug reference database (FDA NDC directory).
type DrugCatalog interface {
	SearchDrugs(ctx context.Context, query string) ([]Drug, error)
}

// TelemedicineDirectory lists virtual-care platforms.
type TelemedicineDirectory interface {
	Providers(ctx context.Context, specialty, state string) ([]TelemedicineProvider, error)
}

// EmergencyFeed supplies real-time ER wait times and urgent-care listings
// near a point.
type EmergencyFeed interface {
	ERWaitTimes(ctx context.Context, lat, lng, radiusMiles float64) ([]EmergencyRoom, error)
	UrgentCareFacilities(ctx context.Context, lat, lng, radiusMiles float64) ([]UrgentCare, error)
}

// TrialRegistry searches clinical trials by condition (ClinicalTrials.gov).
type TrialRegistry interface {
	Search(ctx context.Context, condition string, filters TrialFilters) ([]ClinicalTrial, error)
}

// TourismDirectory lists medical-tourism destinations.
type TourismDirectory interface {
	Destinations(ctx context.Context, procedureName string) ([]MedicalTourismDestination, error)
}

// TravelCostSource prices the travel legs of a medical-tourism trip
// (flight/hotel aggregators, cost-of-living indexes).
type TravelCostSource interface {
	TravelInfo(ctx context.Context, originCountry, destCountry, destCity string) (*TravelInfo, error)
	CostOfLiving(ctx context.Context, city, country string) (*CostOfLivingData, error)
	FlightPrices(ctx context.Context, origin, destination string) (*PriceRange, error)
	AccommodationCost(ctx context.Context, city string, nights int) (float64, error)
}

// InsuranceMarketplace lists marketplace plans for a state (Healthcare.gov).
type InsuranceMarketplace interface {
	Plans(ctx context.Context, state string, filters InsurancePlanFilters) ([]InsurancePlan, error)
}

// WearableConnector pulls health metrics from one wearable vendor's API.
type WearableConnector interface {
	DeviceType() string
	FetchMetrics(ctx context.Context, userID, accessToken string) ([]HealthMetrics, error)
}
