package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthprice-aggregator/internal/domain"
)

func buildMeta(c *gin.Context, sources []domain.DataSource) *domain.ResponseMeta {
	return &domain.ResponseMeta{
		RequestID:   c.GetString(requestIDKey),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		DataSources: sources,
	}
}

func respondOK(c *gin.Context, data any, sources []domain.DataSource) {
	c.JSON(http.StatusOK, domain.APIResponse{
		Success: true,
		Data:    data,
		Meta:    buildMeta(c, sources),
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, domain.APIResponse{
		Success: false,
		Error:   &domain.APIError{Code: code, Message: message},
		Meta:    buildMeta(c, nil),
	})
}

// respondFromError maps domain error types onto HTTP statuses: validation
// errors become 400, missing entities 404, unsupported devices 400 with the
// INVALID_DEVICE code, and everything else a 500 carrying fallbackCode.
func respondFromError(c *gin.Context, err error, fallbackCode string) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		deviceErr     *domain.UnsupportedDeviceError
	)
	switch {
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, validationErr.Code, validationErr.Message)
	case errors.As(err, &notFoundErr):
		respondError(c, http.StatusNotFound, notFoundErr.Code, notFoundErr.Message)
	case errors.As(err, &deviceErr):
		respondError(c, http.StatusBadRequest, domain.ErrInvalidDevice, deviceErr.Error())
	default:
		respondError(c, http.StatusInternalServerError, fallbackCode, err.Error())
	}
}

// Static provenance descriptors attached to response metadata per endpoint.
var (
	providerSources = []domain.DataSource{
		{Name: "NPPES NPI Registry", Type: "government", ConfidenceLevel: "high", RequiresAttribution: true},
		{Name: "CMS Hospital Compare", Type: "government", ConfidenceLevel: "high", RequiresAttribution: true},
	}
	priceSources = []domain.DataSource{
		{Name: "CMS Price Transparency", Type: "government", ConfidenceLevel: "high", RequiresAttribution: true},
		{Name: "FAIR Health", Type: "commercial", ConfidenceLevel: "medium"},
	}
	drugSources = []domain.DataSource{
		{Name: "GoodRx", Type: "commercial", ConfidenceLevel: "medium"},
		{Name: "RxSaver", Type: "commercial", ConfidenceLevel: "medium"},
		{Name: "Blink Health", Type: "commercial", ConfidenceLevel: "medium"},
	}
	emergencySources = []domain.DataSource{
		{Name: "Hospital Capacity Feeds", Type: "partner", ConfidenceLevel: "medium"},
	}
	trialSources = []domain.DataSource{
		{Name: "ClinicalTrials.gov", Type: "government", ConfidenceLevel: "high", RequiresAttribution: true},
	}
	tourismSources = []domain.DataSource{
		{Name: "Medical Tourism Directory", Type: "partner", ConfidenceLevel: "medium"},
	}
	telemedicineSources = []domain.DataSource{
		{Name: "Telemedicine Directory", Type: "partner", ConfidenceLevel: "medium"},
	}
	insuranceSources = []domain.DataSource{
		{Name: "Healthcare.gov Marketplace", Type: "government", ConfidenceLevel: "high", RequiresAttribution: true},
	}
)
