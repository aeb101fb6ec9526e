package dto

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DataResponse representa uma resposta de sucesso com dados
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Count   *int `json:"count,omitempty"`
}

// ChangelogResponse is the changelog envelope; Limit is null when no limit was asked for.
type ChangelogResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Count   int  `json:"count"`
	Total   int  `json:"total"`
	Limit   *int `json:"limit"`
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(code int, err, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Code:    code,
		Error:   err,
		Message: message,
	}
}

// NewDataResponse cria uma resposta de sucesso sem contagem
func NewDataResponse(data any) DataResponse {
	return DataResponse{Success: true, Data: data}
}

// NewListResponse cria uma resposta de sucesso com a contagem de itens
func NewListResponse(data any, count int) DataResponse {
	return DataResponse{Success: true, Data: data, Count: &count}
}
