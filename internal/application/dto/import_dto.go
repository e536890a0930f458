package dto

// ImportPreviewResponse linhas lidas da planilha sem gravar.
type ImportPreviewResponse struct {
	Rows  []InsertTransactionRequest `json:"rows"`
	Count int                        `json:"count"`
}

// ImportResultResponse resultado da importação gravada.
type ImportResultResponse struct {
	Inserted int `json:"inserted"`
}
