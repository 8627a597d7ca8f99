package domain

// DataSource records the provenance of a record so consumers can disclose
// where a number came from and how much to trust it.
type DataSource struct {
	Name                string `json:"name"`
	Type                string `json:"type"` // government, commercial, user_reported, partner, scraped
	URL                 string `json:"url,omitempty"`
	LastFetched         string `json:"lastFetched"`
	ConfidenceLevel     string `json:"confidenceLevel"` // high, medium, low
	RequiresAttribution bool   `json:"requiresAttribution"`
}

// DataFreshness describes how current a result set is.
type DataFreshness struct {
	LastUpdated     string `json:"lastUpdated"`
	UpdateFrequency string `json:"updateFrequency"` // real_time, daily, weekly, monthly, quarterly
	NextUpdate      string `json:"nextUpdate,omitempty"`
	IsStale         bool   `json:"isStale"`
}

// GeoFilter restricts a search to a radius (miles) around a point.
type GeoFilter struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius float64 `json:"radius"`
}

// PriceBand is a min/max constraint on prices.
type PriceBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchFilters is the generic query contract shared by the search-style
// aggregator operations. Zero values mean "not filtered".
type SearchFilters struct {
	Query             string     `json:"query,omitempty"`
	ProcedureCode     string     `json:"procedureCode,omitempty"`
	Location          *GeoFilter `json:"location,omitempty"`
	ZipCode           string     `json:"zipCode,omitempty"`
	State             string     `json:"state,omitempty"`
	PriceRange        *PriceBand `json:"priceRange,omitempty"`
	ProviderTypes     []string   `json:"providerTypes,omitempty"`
	InsuranceAccepted []string   `json:"insuranceAccepted,omitempty"`
	QualityRating     float64    `json:"qualityRating,omitempty"`
	Accreditations    []string   `json:"accreditations,omitempty"`
	SortBy            string     `json:"sortBy,omitempty"` // price, distance, rating, wait_time
	SortOrder         string     `json:"sortOrder,omitempty"`
	Page              int        `json:"page,omitempty"`
	Limit             int        `json:"limit,omitempty"`
}

// TrialFilters narrows a clinical-trial search.
type TrialFilters struct {
	Status   []string   `json:"status,omitempty"`
	Phase    []string   `json:"phase,omitempty"`
	Location *GeoFilter `json:"location,omitempty"`
}

// InsurancePlanFilters narrows a marketplace plan search.
type InsurancePlanFilters struct {
	PlanTypes   []string `json:"planTypes,omitempty"`
	MetalLevels []string `json:"metalLevels,omitempty"`
	MaxPremium  float64  `json:"maxPremium,omitempty"`
}

// SearchResult is one page of a filtered, sorted result set.
type SearchResult[T any] struct {
	Data          []T           `json:"data"`
	Total         int           `json:"total"`
	Page          int           `json:"page"`
	Limit         int           `json:"limit"`
	HasMore       bool          `json:"hasMore"`
	Filters       SearchFilters `json:"filters"`
	DataFreshness DataFreshness `json:"dataFreshness"`
}

// APIError is the machine-readable error half of the response envelope.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ResponseMeta carries request bookkeeping in the response envelope.
type ResponseMeta struct {
	RequestID   string       `json:"requestId"`
	Timestamp   string       `json:"timestamp"`
	Cached      bool         `json:"cached"`
	DataSources []DataSource `json:"dataSources"`
}

// APIResponse is the uniform envelope every endpoint returns.
type APIResponse struct {
	Success bool          `json:"success"`
	Data    any           `json:"data,omitempty"`
	Error   *APIError     `json:"error,omitempty"`
	Meta    *ResponseMeta `json:"meta,omitempty"`
}
