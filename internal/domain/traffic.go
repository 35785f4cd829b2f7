package domain

import "time"

// TrafficRecord é uma linha de métricas de um conteúdo publicado
type TrafficRecord struct {
	ID             int64      `json:"id"`
	AccountID      int64      `json:"accountId"`
	ContentTitle   *string    `json:"contentTitle"`
	ContentType    *string    `json:"contentType"`
	ContentURL     *string    `json:"contentUrl"`
	PublishDate    *time.Time `json:"publishDate"`
	PublishTime    *time.Time `json:"publishTime"`
	Views          int        `json:"views"`
	Likes          int        `json:"likes"`
	Comments       int        `json:"comments"`
	Shares         int        `json:"shares"`
	Saves          int        `json:"saves"`
	Recommends     *int       `json:"recommends"`
	CompletionRate *float64   `json:"completionRate"`
	ImportBatch    *string    `json:"importBatch"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type TrafficRecordResponse struct {
	TrafficRecord
	AccountName string   `json:"accountName"`
	Platform    Platform `json:"platform"`
}

type TrafficFilter struct {
	AccountID *int64
	ProjectID *int64
	Platform  *Platform
	StartDate *time.Time
	EndDate   *time.Time
	Page      PageRequest
}

type TrafficDashboard struct {
	TotalViews        int     `json:"totalViews"`
	TotalLikes        int     `json:"totalLikes"`
	TotalComments     int     `json:"totalComments"`
	TotalShares       int     `json:"totalShares"`
	TotalSaves        int     `json:"totalSaves"`
	AvgCompletionRate float64 `json:"avgCompletionRate"`
	ContentCount      int     `json:"contentCount"`
}

type TrafficTrendPoint struct {
	Date     string `json:"date"`
	Views    int    `json:"views"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	Shares   int    `json:"shares"`
}
