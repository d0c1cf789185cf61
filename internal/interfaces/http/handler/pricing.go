package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	pricingapp "github.com/retailcore/backend/internal/application/pricing"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// PricingHandler handles bracket, custom price, and flat price endpoints
type PricingHandler struct {
	BaseHandler
	pricingService *pricingapp.PricingService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(pricingService *pricingapp.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// CreateBracket creates a bracket with its tier items, optionally
// selecting it immediately
func (h *PricingHandler) CreateBracket(c *gin.Context) {
	var req pricingapp.CreateBracketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorID(c)

	bracket, err := h.pricingService.CreateBracketWithItems(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bracket)
}

// UpdateBracket replaces a bracket's item set
func (h *PricingHandler) UpdateBracket(c *gin.Context) {
	bracketID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bracket ID format")
		return
	}

	var req pricingapp.UpdateBracketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bracket, err := h.pricingService.UpdateBracketWithItems(c.Request.Context(), bracketID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bracket)
}

// ActivateBracket selects a bracket for its product; the previously
// selected bracket is superseded in the same transaction
func (h *PricingHandler) ActivateBracket(c *gin.Context) {
	bracketID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bracket ID format")
		return
	}

	var req struct {
		EffectiveFrom *time.Time `json:"effective_from"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	from := time.Now()
	if req.EffectiveFrom != nil {
		from = *req.EffectiveFrom
	}

	bracket, err := h.pricingService.ActivateBracket(c.Request.Context(), bracketID, from)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bracket)
}

// DeactivatePricing closes the selected bracket for a product without
// selecting a replacement
func (h *PricingHandler) DeactivatePricing(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.pricingService.DeactivatePricing(c.Request.Context(), productID, time.Now()); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CloneBracket duplicates a bracket with a new effective window
func (h *PricingHandler) CloneBracket(c *gin.Context) {
	bracketID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bracket ID format")
		return
	}

	var req pricingapp.CloneBracketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bracket, err := h.pricingService.CloneBracket(c.Request.Context(), bracketID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bracket)
}

// GetBracket retrieves a bracket with its items
func (h *PricingHandler) GetBracket(c *gin.Context) {
	bracketID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bracket ID format")
		return
	}

	bracket, err := h.pricingService.GetBracket(c.Request.Context(), bracketID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bracket)
}

// ListBracketsByProduct returns all brackets for a product
func (h *PricingHandler) ListBracketsByProduct(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	brackets, err := h.pricingService.ListBracketsByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, brackets)
}

// ImportBracketItems replaces a bracket's items from an uploaded CSV
// file. Rows that fail validation are reported individually; valid rows
// import regardless.
func (h *PricingHandler) ImportBracketItems(c *gin.Context) {
	bracketID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bracket ID format")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing CSV file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Cannot open uploaded file")
		return
	}
	defer file.Close()

	result, err := h.pricingService.ImportBracketItemsFromCSV(c.Request.Context(), bracketID, file)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// priceQuoteQuery holds the query parameters shared by the quote and
// breakdown endpoints
type priceQuoteQuery struct {
	ProductID  uuid.UUID
	CustomerID *uuid.UUID
	Quantity   decimal.Decimal
	PriceType  pricing.PriceType
	AsOf       time.Time
}

func (h *PricingHandler) bindQuoteQuery(c *gin.Context) (*priceQuoteQuery, bool) {
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing product_id")
		return nil, false
	}

	customerID, err := parseOptionalUUIDQuery(c, "customer_id")
	if err != nil {
		h.BadRequest(c, "Invalid customer_id format")
		return nil, false
	}

	quantity, err := decimal.NewFromString(c.DefaultQuery("quantity", "1"))
	if err != nil || !quantity.IsPositive() {
		h.BadRequest(c, "Quantity must be a positive number")
		return nil, false
	}

	priceType := pricing.PriceType(c.DefaultQuery("price_type", string(pricing.PriceTypeRegular)))
	if !priceType.IsValid() {
		h.BadRequest(c, "Unknown price_type")
		return nil, false
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		h.BadRequest(c, "Invalid as_of timestamp")
		return nil, false
	}

	return &priceQuoteQuery{
		ProductID:  productID,
		CustomerID: customerID,
		Quantity:   quantity,
		PriceType:  priceType,
		AsOf:       asOf,
	}, true
}

// Quote resolves one unit price through the pricing chain
func (h *PricingHandler) Quote(c *gin.Context) {
	q, ok := h.bindQuoteQuery(c)
	if !ok {
		return
	}

	quote, err := h.pricingService.CalculatePriceForQuantity(
		c.Request.Context(), q.ProductID, q.CustomerID, q.Quantity, q.PriceType, q.AsOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quote)
}

// Breakdown explains every layer of the pricing chain for one lookup
func (h *PricingHandler) Breakdown(c *gin.Context) {
	q, ok := h.bindQuoteQuery(c)
	if !ok {
		return
	}

	breakdown, err := h.pricingService.GetPricingBreakdown(
		c.Request.Context(), q.ProductID, q.CustomerID, q.Quantity, q.PriceType, q.AsOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, breakdown)
}

// Suggestions proposes prices hitting a target margin at given quantities
func (h *PricingHandler) Suggestions(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req struct {
		TargetMargin decimal.Decimal   `json:"target_margin" binding:"required"`
		Quantities   []decimal.Decimal `json:"quantities" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suggestions, err := h.pricingService.GetOptimalPricingSuggestions(
		c.Request.Context(), productID, req.TargetMargin, req.Quantities)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, suggestions)
}

// SetCustomPrices replaces a valued customer's custom price rows
func (h *PricingHandler) SetCustomPrices(c *gin.Context) {
	customerID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req struct {
		Prices []pricingapp.CustomPriceInput `json:"prices" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	prices, err := h.pricingService.SetCustomPricesForCustomer(
		c.Request.Context(), customerID, req.Prices, actorID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, prices)
}

// GetCustomPrices returns a customer's custom price rows
func (h *PricingHandler) GetCustomPrices(c *gin.Context) {
	customerID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	prices, err := h.pricingService.GetCustomPricesForCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, prices)
}

// RemoveCustomPrice deactivates one custom price row
func (h *PricingHandler) RemoveCustomPrice(c *gin.Context) {
	customPriceID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid custom price ID format")
		return
	}

	if err := h.pricingService.RemoveCustomPrice(c.Request.Context(), customPriceID, time.Now()); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// SetFlatPrice activates a flat price row for a product, closing the
// previous one
func (h *PricingHandler) SetFlatPrice(c *gin.Context) {
	var req pricingapp.SetFlatPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorID(c)

	price, err := h.pricingService.SetFlatPrice(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, price)
}
