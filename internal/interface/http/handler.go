package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yanqian/policy-advisor/internal/domain/catalog"
	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
	apperrors "github.com/yanqian/policy-advisor/pkg/errors"
	"github.com/yanqian/policy-advisor/pkg/money"
)

const apiVersion = "1.0.0"

// Handler wires the HTTP transport to domain services.
type Handler struct {
	recommendations recommendation.Service
	products        catalog.Service
	logger          *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(recSvc recommendation.Service, catalogSvc catalog.Service, logger *slog.Logger) *Handler {
	return &Handler{
		recommendations: recSvc,
		products:        catalogSvc,
		logger:          logger.With("component", "http.handler"),
	}
}

type recommendationRequest struct {
	Age           *int     `json:"age" binding:"required,min=18,max=100"`
	Income        *float64 `json:"income" binding:"required,min=0,max=10000000"`
	Dependents    *int     `json:"dependents" binding:"required,min=0,max=20"`
	RiskTolerance string   `json:"riskTolerance" binding:"required,oneof=low medium high"`
}

func (r recommendationRequest) profile() recommendation.UserProfile {
	return recommendation.UserProfile{
		Age:           *r.Age,
		Income:        *r.Income,
		Dependents:    *r.Dependents,
		RiskTolerance: recommendation.RiskTolerance(r.RiskTolerance),
	}
}

type recommendationView struct {
	ID                    uuid.UUID                      `json:"id"`
	ProductCategory       recommendation.ProductCategory `json:"productCategory"`
	ProductType           string                         `json:"productType"`
	TermYears             *int                           `json:"termYears"`
	CoverageAmount        float64                        `json:"coverageAmount"`
	MonthlyPremium        float64                        `json:"monthlyPremium"`
	CoverageAmountDisplay string                         `json:"coverageAmountDisplay"`
	MonthlyPremiumDisplay string                         `json:"monthlyPremiumDisplay"`
	Explanation           string                         `json:"explanation"`
	CreatedAt             time.Time                      `json:"createdAt"`
}

func newRecommendationView(rec recommendation.Recommendation) recommendationView {
	return recommendationView{
		ID:                    rec.ID,
		ProductCategory:       rec.Category,
		ProductType:           rec.Category.DisplayName(),
		TermYears:             rec.TermYears,
		CoverageAmount:        rec.CoverageAmount,
		MonthlyPremium:        rec.MonthlyPremium,
		CoverageAmountDisplay: money.FormatUSD(rec.CoverageAmount),
		MonthlyPremiumDisplay: money.FormatUSD(rec.MonthlyPremium),
		Explanation:           rec.Explanation,
		CreatedAt:             rec.CreatedAt,
	}
}

type productView struct {
	catalog.Product
	ProductType        string  `json:"productType"`
	RatePerThousand    float64 `json:"ratePerThousand"`
	MaxCoverageDisplay string  `json:"maxCoverageDisplay"`
}

func newProductViews(products []catalog.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{
			Product:            p,
			ProductType:        p.Category.DisplayName(),
			RatePerThousand:    p.RatePerThousand(),
			MaxCoverageDisplay: money.FormatUSD(p.MaxCoverage),
		})
	}
	return views
}

// CreateRecommendation validates the applicant profile and issues a recommendation.
func (h *Handler) CreateRecommendation(c *gin.Context) {
	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", bindingMessage(err), err))
		return
	}

	rec, err := h.recommendations.Recommend(c.Request.Context(), req.profile())
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recommendation": newRecommendationView(rec)})
}

// GetRecommendation returns a previously issued recommendation.
func (h *Handler) GetRecommendation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "recommendation id must be a UUID", err))
		return
	}

	rec, err := h.recommendations.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendation": newRecommendationView(rec)})
}

// DescribeRecommendations lists the recommendation endpoints.
func (h *Handler) DescribeRecommendations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Life Insurance Recommendation API",
		"version": apiVersion,
		"endpoints": gin.H{
			"POST": "/api/v1/recommendations - Generate recommendation",
			"GET":  "/api/v1/recommendations/:id - Fetch a stored recommendation",
		},
	})
}

// ListProducts returns the active product catalog, optionally narrowed
// with ?age= and ?termYears=.
func (h *Handler) ListProducts(c *gin.Context) {
	filter, err := parseProductFilter(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	products, listErr := h.products.List(c.Request.Context())
	if listErr != nil {
		abortWithError(c, domainError(listErr))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": newProductViews(filter.apply(products))})
}

// ProductsByCategory returns active products in one category, accepting
// the same filters as ListProducts.
func (h *Handler) ProductsByCategory(c *gin.Context) {
	filter, err := parseProductFilter(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	products, listErr := h.products.ByCategory(c.Request.Context(), c.Param("category"))
	if listErr != nil {
		abortWithError(c, domainError(listErr))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": newProductViews(filter.apply(products))})
}

type productFilter struct {
	age       *int
	termYears *int
}

func parseProductFilter(c *gin.Context) (productFilter, *HTTPError) {
	var f productFilter
	for _, q := range []struct {
		name string
		dst  **int
	}{{"age", &f.age}, {"termYears", &f.termYears}} {
		raw, ok := c.GetQuery(q.name)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return productFilter{}, NewHTTPError(http.StatusBadRequest, "invalid_request", q.name+" must be a positive integer", err)
		}
		*q.dst = &v
	}
	return f, nil
}

func (f productFilter) apply(products []catalog.Product) []catalog.Product {
	if f.age == nil && f.termYears == nil {
		return products
	}
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if f.age != nil && !p.EligibleAge(*f.age) {
			continue
		}
		if f.termYears != nil && !p.OffersTerm(*f.termYears) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func domainError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case recommendation.CodeInvalidProfile, catalog.CodeInvalidCategory:
		status = http.StatusBadRequest
	case recommendation.CodeNotFound: // catalog uses the same code
		status = http.StatusNotFound
	case "":
		return NewHTTPError(status, "internal_error", "something went wrong", err)
	}
	return NewHTTPError(status, code, apperrors.MessageOf(err), err)
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "request body must be a JSON object with age, income, dependents and riskTolerance"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return field + " is invalid"
	}
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
