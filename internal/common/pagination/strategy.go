package pagination

// PaginationStrategy turns request parameters into a storage query and query
// results into response metadata. The content service holds one of these,
// so swapping offset pagination for a cursor scheme stays inside this
// package.
type PaginationStrategy interface {
	// CalculateQuery maps page parameters to storage query parameters.
	CalculateQuery(params Params) QueryParams

	// BuildMetadata builds the response metadata. hasMore only matters to
	// cursor schemes; offset pagination derives everything from total.
	BuildMetadata(params Params, total int64, hasMore bool) Metadata
}

// QueryParams is what a strategy hands the repository layer.
type QueryParams struct {
	Offset int
	Limit  int
	// Cursor and After stay nil under offset pagination.
	Cursor *string
	After  *string
}

// OffsetStrategy is plain page-number pagination, the scheme every listing
// endpoint uses today.
type OffsetStrategy struct{}

func (s OffsetStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Offset: CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
	}
}

func (s OffsetStrategy) BuildMetadata(params Params, total int64, hasMore bool) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
}
