package services

const (
	defaultPage         = 1
	defaultItemsPerPage = 10
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page         int   `json:"page"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

// paginate computes page metadata for an offset-based listing.
func paginate(page, itemsPerPage int, total int64) Pagination {
	totalPages := int((total + int64(itemsPerPage) - 1) / int64(itemsPerPage))
	return Pagination{
		Page:         page,
		ItemsPerPage: itemsPerPage,
		TotalItems:   total,
		TotalPages:   totalPages,
		HasNext:      page < totalPages,
		HasPrev:      page > 1,
	}
}

// normalizePaging applies the default page/size when the caller left
// them unset or supplied garbage.
func normalizePaging(page, itemsPerPage int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if itemsPerPage < 1 {
		itemsPerPage = defaultItemsPerPage
	}
	return page, itemsPerPage
}

// orderClause resolves a caller-selected ordering against a column
// whitelist. Unknown fields fall back to updated_at; only "asc" flips
// the default descending direction.
func orderClause(allowed map[string]string, orderBy, direction string) string {
	col, ok := allowed[orderBy]
	if !ok {
		col = "updated_at"
	}
	if direction == "asc" {
		return col + " asc"
	}
	return col + " desc"
}
