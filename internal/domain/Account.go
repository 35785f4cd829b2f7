package domain

import "time"

type Platform string

const (
	PlatformDouyin      Platform = "douyin"
	PlatformKuaishou    Platform = "kuaishou"
	PlatformXiaohongshu Platform = "xiaohongshu"
	PlatformShipinhao   Platform = "shipinhao"
	PlatformBilibili    Platform = "bilibili"
	PlatformWeibo       Platform = "weibo"
)

func (p Platform) IsValid() bool {
	switch p {
	case PlatformDouyin, PlatformKuaishou, PlatformXiaohongshu, PlatformShipinhao, PlatformBilibili, PlatformWeibo:
		return true
	}
	return false
}

const (
	AccountStatusInactive = 0
	AccountStatusActive   = 1
)

type Account struct {
	ID                int64     `json:"id"`
	ProjectID         *int64    `json:"projectId"`
	ProjectName       *string   `json:"projectName,omitempty"`
	Platform          Platform  `json:"platform"`
	AccountName       string    `json:"accountName"`
	ExternalAccountID *string   `json:"accountId"`
	Followers         int       `json:"followers"`
	OperatorID        *int64    `json:"operatorId"`
	OperatorName      *string   `json:"operatorName,omitempty"`
	Remark            *string   `json:"remark"`
	Status            int       `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type AccountFilter struct {
	ProjectID *int64
	Platform  *Platform
	Status    *int
	Keyword   *string
	Page      PageRequest
}

type CreateAccountRequest struct {
	ProjectID         *int64   `json:"projectId"`
	Platform          Platform `json:"platform"`
	AccountName       string   `json:"accountName"`
	ExternalAccountID *string  `json:"accountId"`
	Followers         int      `json:"followers"`
	OperatorID        *int64   `json:"operatorId"`
	Remark            *string  `json:"remark"`
}

type UpdateAccountRequest struct {
	ID                int64     `json:"-"`
	ProjectID         *int64    `json:"projectId,omitempty"`
	Platform          *Platform `json:"platform,omitempty"`
	AccountName       *string   `json:"accountName,omitempty"`
	ExternalAccountID *string   `json:"accountId,omitempty"`
	Followers         *int      `json:"followers,omitempty"`
	OperatorID        *int64    `json:"operatorId,omitempty"`
	Remark            *string   `json:"remark,omitempty"`
	Status            *int      `json:"status,omitempty"`
}
