package domain

import "time"

const (
	ImportTypeTraffic     = "traffic"
	ImportStatusCompleted = "completed"
)

// ImportRecord é o resumo persistido de uma execução de importação.
// É criado uma única vez ao final do lote e nunca é atualizado.
type ImportRecord struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	FileName    string    `json:"fileName"`
	BatchNo     string    `json:"batchNo"`
	TotalRows   int       `json:"totalRows"`
	SuccessRows int       `json:"successRows"`
	FailedRows  int       `json:"failedRows"`
	Status      string    `json:"status"`
	ErrorLog    *string   `json:"errorLog,omitempty"`
	CreatedBy   int64     `json:"createdBy"`
	CreatorName *string   `json:"creatorName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ImportResult struct {
	BatchNo     string   `json:"batchNo"`
	TotalRows   int      `json:"totalRows"`
	SuccessRows int      `json:"successRows"`
	FailedRows  int      `json:"failedRows"`
	Errors      []string `json:"errors"`
}

type ImportRecordFilter struct {
	Type string
	Page PageRequest
}
