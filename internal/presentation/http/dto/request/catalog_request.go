package request

// CatalogSearchRequest filters the cached catalog
type CatalogSearchRequest struct {
	Query string `form:"q"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

type CustomerSearchRequest struct {
	Search string `form:"search"`
}
