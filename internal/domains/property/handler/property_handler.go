package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/internal/domains/property/service"
	"realestate-backend/internal/shared/response"
	"realestate-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Paging defaults applied at the HTTP boundary.
const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// PropertyHandler handles HTTP requests for the property domain
type PropertyHandler struct {
	service service.Service
}

// NewPropertyHandler creates a new property handler instance
func NewPropertyHandler(svc service.Service) *PropertyHandler {
	return &PropertyHandler{service: svc}
}

// CreateProperty handles POST /properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if !bindAndValidate(c, &req) {
		return
	}

	id, code, err := h.service.CreateProperty(c.Request.Context(), req.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(c.FullPath(), "/"), id))
	response.Success(c, http.StatusCreated, CreatePropertyResponse{ID: id, Code: code})
}

// AddImage handles POST /properties/:id/images
func (h *PropertyHandler) AddImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AddImageRequest
	if !bindAndValidate(c, &req) {
		return
	}

	imageID, err := h.service.AddImage(c.Request.Context(), id, model.AddImageInput{
		FileURL:   req.FileURL,
		IsMain:    req.IsMain,
		Caption:   req.Caption,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"image_id": imageID})
}

// ChangePrice handles PUT /properties/:id/price
func (h *PropertyHandler) ChangePrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ChangePriceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	err := h.service.ChangePrice(c.Request.Context(), id, model.ChangePriceInput{NewPrice: req.NewPrice, Notes: req.Notes})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateProperty handles PUT /properties/:id
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdatePropertyRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.service.UpdateProperty(c.Request.Context(), id, req.ToInput()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProperties handles GET /properties
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	filter, err := parseListQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.service.ListProperties(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	if link := paginationLinks(c.Request, filter.Page, filter.PageSize, result.TotalPages); link != "" {
		c.Header("Link", link)
	}

	response.SuccessWithMeta(c, http.StatusOK,
		ListPropertiesResponse{Total: result.Total, Items: result.Items},
		&response.Meta{Page: result.Page, Limit: result.PageSize, Total: result.Total, TotalPages: result.TotalPages},
	)
}

// GetProperty handles GET /properties/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, err := h.service.GetProperty(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// GetPropertyByCode handles GET /properties/code/:code
func (h *PropertyHandler) GetPropertyByCode(c *gin.Context) {
	detail, err := h.service.GetPropertyByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// ============================================
// HELPERS
// ============================================

type validatable interface {
	Validate() error
}

func bindAndValidate(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return false
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", err)
		return false
	}
	return true
}

func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(c, model.NewInvalidInput(model.CodeInvalidPropertyID, fmt.Sprintf("Invalid id: %s", raw)))
		return 0, false
	}
	return id, true
}

// writeError maps a domain error onto the response envelope. Unexpected
// failures are logged here and answered with a generic message.
func writeError(c *gin.Context, err error) {
	status, message, code := model.MapErrorToHTTP(err)
	if status >= http.StatusInternalServerError || status == model.StatusClientClosedRequest {
		logger.FromContext(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Int("status", status).
			Msg("Request failed")
		if status == http.StatusInternalServerError {
			message = "Internal server error"
		}
	}
	response.ErrorResponse(c, status, code, message)
}

// parseListQuery reads filters and applies paging defaults: page below one
// becomes 1, a page size outside [1,200] becomes 20. The page size is read
// from page_size or pageSize.
func parseListQuery(c *gin.Context) (model.PropertyFilter, error) {
	f := model.PropertyFilter{Page: 1, PageSize: DefaultPageSize}

	query := c.Request.URL.Query()
	if v := queryFold(query, "page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return f, model.NewInvalidInput(model.CodeInvalidPageParams, "page must be an integer")
		}
		if page > 0 {
			f.Page = page
		}
	}
	if v := queryFold(query, "page_size", "pagesize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return f, model.NewInvalidInput(model.CodeInvalidPageParams, "page_size must be an integer")
		}
		if size >= 1 && size <= MaxPageSize {
			f.PageSize = size
		}
	}

	if v := strings.TrimSpace(c.Query("city")); v != "" {
		f.City = &v
	}
	var err error
	if f.MinPrice, err = decimalQuery(c, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = decimalQuery(c, "max_price"); err != nil {
		return f, err
	}
	if f.MinBedrooms, err = intQuery(c, "bedrooms"); err != nil {
		return f, err
	}
	if f.MinBathrooms, err = intQuery(c, "bathrooms"); err != nil {
		return f, err
	}
	return f, nil
}

// queryFold returns the first non-empty value whose key matches one of names
// case-insensitively.
func queryFold(query url.Values, names ...string) string {
	for _, name := range names {
		for key, values := range query {
			if strings.EqualFold(key, name) && len(values) > 0 && values[0] != "" {
				return values[0]
			}
		}
	}
	return ""
}

func decimalQuery(c *gin.Context, name string) (*decimal.Decimal, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, model.NewInvalidInput(model.CodeInvalidAttribute, name+" must be a number")
	}
	return &d, nil
}

func intQuery(c *gin.Context, name string) (*int, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil, model.NewInvalidInput(model.CodeInvalidAttribute, name+" must be an integer")
	}
	return &i, nil
}

// paginationLinks renders an RFC 5988 Link header with prev/next relations.
// Non-paging query parameters are carried over unchanged.
func paginationLinks(r *http.Request, page, pageSize, totalPages int) string {
	preserved := url.Values{}
	for key, values := range r.URL.Query() {
		switch strings.ToLower(key) {
		case "page", "page_size", "pagesize":
			continue
		}
		preserved[key] = values
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}

	makeLink := func(p int) string {
		q := url.Values{}
		for k, v := range preserved {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(p))
		q.Set("page_size", strconv.Itoa(pageSize))
		u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
		return u.String()
	}

	var links []string
	if page > 1 {
		links = append(links, fmt.Sprintf(`<%s>; rel="prev"`, makeLink(page-1)))
	}
	if page < totalPages {
		links = append(links, fmt.Sprintf(`<%s>; rel="next"`, makeLink(page+1)))
	}
	return strings.Join(links, ", ")
}
