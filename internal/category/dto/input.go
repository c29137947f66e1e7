package dto

type CreateCategoryInput struct {
	ParentID    *string
	Name        string
	Description string
	SortOrder   int
}

type UpdateCategoryInput struct {
	ID          string
	Name        string
	Description string
	SortOrder   int
}

type CategoryFilters struct {
	// ParentID filtering: nil = no filter, empty string = roots only.
	ParentID *string
	Page     int
	PageSize int
}
