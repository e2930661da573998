package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tamarandofir/travelsync_backend/internal/dto"
)

// RegisterValidations installs custom validations on gin's binding engine.
// Must be called once during startup, before the router starts serving.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterStructValidation(validateCreatePostPrices, dto.CreatePostRequest{})
}

// validateCreatePostPrices enforces the price-range invariant at bind time:
// both prices non-negative and minPrice <= maxPrice. The same rule is applied
// again in the post service for updates, where only one bound may be present.
func validateCreatePostPrices(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.CreatePostRequest)

	if req.MinPrice.IsNegative() {
		sl.ReportError(req.MinPrice, "MinPrice", "minPrice", "gte", "0")
	}
	if req.MaxPrice.IsNegative() {
		sl.ReportError(req.MaxPrice, "MaxPrice", "maxPrice", "gte", "0")
	}
	if req.MinPrice.GreaterThan(req.MaxPrice) {
		sl.ReportError(req.MinPrice, "MinPrice", "minPrice", "ltefield", "MaxPrice")
	}
}
