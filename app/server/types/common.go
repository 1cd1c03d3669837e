package types

type ErrorMessage struct {
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DeleteManyRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1,dive,gt=0"`
}

type DeleteManyResponse struct {
	Deleted []uint `json:"deleted"`
	Missing []uint `json:"missing"`
}

type PageResponse[T any] struct {
	List     []T   `json:"list"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	PageMax  int64 `json:"pageMax"`
}
