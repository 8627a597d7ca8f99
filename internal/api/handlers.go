package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthprice-aggregator/internal/domain"
)

func floatParam(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func intParam(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// csvParam splits a comma-separated query value into trimmed parts.
func csvParam(c *gin.Context, name string) []string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func geoParam(c *gin.Context, defaultRadius float64) *domain.GeoFilter {
	lat, latOK := floatParam(c, "lat")
	lng, lngOK := floatParam(c, "lng")
	if !latOK || !lngOK {
		return nil
	}
	radius := defaultRadius
	if r, ok := floatParam(c, "radius"); ok {
		radius = r
	}
	return &domain.GeoFilter{Lat: lat, Lng: lng, Radius: radius}
}

func searchFiltersFromQuery(c *gin.Context) domain.SearchFilters {
	filters := domain.SearchFilters{
		Query:             c.Query("query"),
		ZipCode:           c.Query("zipCode"),
		State:             c.Query("state"),
		Location:          geoParam(c, 25),
		ProviderTypes:     csvParam(c, "providerTypes"),
		InsuranceAccepted: csvParam(c, "insuranceAccepted"),
		Accreditations:    csvParam(c, "accreditations"),
		SortBy:            c.Query("sortBy"),
		SortOrder:         c.Query("sortOrder"),
		Page:              intParam(c, "page", 0),
		Limit:             intParam(c, "limit", 0),
	}
	if rating, ok := floatParam(c, "minRating"); ok {
		filters.QualityRating = rating
	}
	minPrice, minOK := floatParam(c, "minPrice")
	maxPrice, maxOK := floatParam(c, "maxPrice")
	if minOK || maxOK {
		filters.PriceRange = &domain.PriceBand{Min: minPrice, Max: maxPrice}
	}
	return filters
}

func (s *Server) handleProviders(c *gin.Context) {
	result, err := s.agg.FetchProviders(c.Request.Context(), searchFiltersFromQuery(c))
	if err != nil {
		respondFromError(c, err, domain.ErrProviderFetch)
		return
	}
	respondOK(c, result, providerSources)
}

func (s *Server) handleProviderByNPI(c *gin.Context) {
	provider, err := s.agg.FetchProviderByNPI(c.Request.Context(), c.Param("npi"))
	if err != nil {
		respondFromError(c, err, domain.ErrProviderFetch)
		return
	}
	respondOK(c, provider, providerSources)
}

func (s *Server) handlePrices(c *gin.Context) {
	procedureCode := c.Query("procedureCode")
	if procedureCode == "" {
		respondError(c, http.StatusBadRequest, domain.ErrMissingProcedureCode, "procedureCode query parameter is required")
		return
	}

	result, err := s.agg.FetchProcedurePrices(c.Request.Context(), procedureCode, searchFiltersFromQuery(c))
	if err != nil {
		respondFromError(c, err, domain.ErrPriceFetch)
		return
	}
	respondOK(c, result, priceSources)
}

// handleDrugs serves both drug lookups: drugId+zipCode returns pharmacy
// quotes, query searches the catalog.
func (s *Server) handleDrugs(c *gin.Context) {
	drugID := c.Query("drugId")
	zipCode := c.Query("zipCode")
	query := c.Query("query")

	switch {
	case drugID != "" && zipCode != "":
		quotes, err := s.agg.FetchDrugPrices(c.Request.Context(), drugID, zipCode)
		if err != nil {
			respondFromError(c, err, domain.ErrDrugAPI)
			return
		}
		respondOK(c, quotes, drugSources)
	case query != "":
		drugs, err := s.agg.SearchDrugs(c.Request.Context(), query)
		if err != nil {
			respondFromError(c, err, domain.ErrDrugAPI)
			return
		}
		respondOK(c, drugs, drugSources)
	default:
		respondError(c, http.StatusBadRequest, domain.ErrMissingParams, "Provide either drugId and zipCode, or query")
	}
}

func (s *Server) handleEmergency(c *gin.Context) {
	lat, latOK := floatParam(c, "lat")
	lng, lngOK := floatParam(c, "lng")
	if !latOK || !lngOK {
		respondError(c, http.StatusBadRequest, domain.ErrMissingLocation, "lat and lng query parameters are required")
		return
	}
	radius := 25.0
	if r, ok := floatParam(c, "radius"); ok {
		radius = r
	}
	serviceType := c.DefaultQuery("type", "all")

	services, err := s.agg.FetchEmergencyServices(c.Request.Context(), lat, lng, radius, serviceType)
	if err != nil {
		respondFromError(c, err, domain.ErrEmergencyFetch)
		return
	}
	respondOK(c, services, emergencySources)
}

func (s *Server) handleClinicalTrials(c *gin.Context) {
	condition := c.Query("condition")
	if condition == "" {
		respondError(c, http.StatusBadRequest, domain.ErrMissingCondition, "condition query parameter is required")
		return
	}

	filters := domain.TrialFilters{
		Status:   csvParam(c, "status"),
		Phase:    csvParam(c, "phase"),
		Location: geoParam(c, 100),
	}

	trials, err := s.agg.FetchClinicalTrials(c.Request.Context(), condition, filters)
	if err != nil {
		respondFromError(c, err, domain.ErrTrialsFetch)
		return
	}
	respondOK(c, trials, trialSources)
}

// handleMedicalTourism serves destination listings, or a trip cost estimate
// in the calculateCosts sub-mode.
func (s *Server) handleMedicalTourism(c *gin.Context) {
	if c.Query("calculateCosts") != "true" {
		destinations, err := s.agg.FetchTourismDestinations(c.Request.Context(), c.Query("procedure"))
		if err != nil {
			respondFromError(c, err, domain.ErrTourismFetch)
			return
		}
		respondOK(c, destinations, tourismSources)
		return
	}

	destinationID := c.Query("destinationId")
	userLocation := c.Query("userLocation")
	if destinationID == "" || userLocation == "" {
		respondError(c, http.StatusBadRequest, domain.ErrMissingParams, "calculateCosts requires destinationId and userLocation")
		return
	}
	stayDays := intParam(c, "stayDays", 7)

	result, err := s.agg.CalculateTravelCost(c.Request.Context(), destinationID, userLocation, stayDays)
	if err != nil {
		respondFromError(c, err, domain.ErrTourismFetch)
		return
	}
	respondOK(c, result, tourismSources)
}

func (s *Server) handleTelemedicine(c *gin.Context) {
	providers, err := s.agg.FetchTelemedicineProviders(c.Request.Context(), c.Query("specialty"), c.Query("state"))
	if err != nil {
		respondFromError(c, err, domain.ErrTelemedicineFetch)
		return
	}
	respondOK(c, providers, telemedicineSources)
}

func (s *Server) handleInsurance(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		respondError(c, http.StatusBadRequest, domain.ErrMissingState, "state query parameter is required")
		return
	}

	filters := domain.InsurancePlanFilters{
		PlanTypes:   csvParam(c, "planTypes"),
		MetalLevels: csvParam(c, "metalLevels"),
	}
	if premium, ok := floatParam(c, "maxPremium"); ok {
		filters.MaxPremium = premium
	}

	plans, err := s.agg.FetchInsurancePlans(c.Request.Context(), state, filters)
	if err != nil {
		respondFromError(c, err, domain.ErrInsuranceFetch)
		return
	}
	respondOK(c, plans, insuranceSources)
}

func (s *Server) handleWearableDevices(c *gin.Context) {
	respondOK(c, domain.SupportedDevices(), nil)
}

type wearableSyncRequest struct {
	UserID      string `json:"userId"`
	DeviceType  string `json:"deviceType"`
	AccessToken string `json:"accessToken"`
}

func (s *Server) handleWearableSync(c *gin.Context) {
	var req wearableSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, domain.ErrMissingParams, "Request body must be JSON with userId, deviceType, and accessToken")
		return
	}
	if req.UserID == "" || req.DeviceType == "" || req.AccessToken == "" {
		respondError(c, http.StatusBadRequest, domain.ErrMissingParams, "userId, deviceType, and accessToken are required")
		return
	}
	if !domain.IsSupportedDevice(req.DeviceType) {
		respondError(c, http.StatusBadRequest, domain.ErrInvalidDevice, "Unsupported device type: "+req.DeviceType)
		return
	}

	metrics, err := s.agg.SyncWearableData(c.Request.Context(), req.UserID, req.DeviceType, req.AccessToken)
	if err != nil {
		respondFromError(c, err, domain.ErrWearableSync)
		return
	}

	respondOK(c, gin.H{
		"metrics":  metrics,
		"syncedAt": time.Now().UTC().Format(time.RFC3339),
	}, nil)
}
