// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Catalog
	KeyProductNotFound      = "product.not_found"
	KeyKitComponentNotFound = "kit_component.not_found"
	KeyCatalogSeeded        = "catalog.seeded"

	// Quotes
	KeyQuoteNotFound        = "quote.not_found"
	KeyQuoteInvalidQuantity = "quote.invalid_quantity"
	KeyQuoteInvalidColor    = "quote.invalid_color"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Rate limiting
	KeyRateLimitExceeded = "rate_limit.exceeded"
)
