package model

import "time"

// ClientStatus represents the lifecycle status of a VPN client
type ClientStatus string

const (
	ClientStatusActive  ClientStatus = "active"
	ClientStatusBlocked ClientStatus = "blocked"
)

// Client represents a VPN subscriber owned by this service and linked to a
// RemnaWave user through RemoteUUID. RemoteUUID is set once when the remote
// user is created and never changes afterwards.
type Client struct {
	ID              string       `gorm:"type:char(36);primaryKey" json:"id"`
	Username        string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	RemoteUUID      string       `gorm:"type:varchar(255);uniqueIndex" json:"remoteUuid"`
	ShortUUID       string       `gorm:"type:varchar(255)" json:"shortUuid"`
	SubscriptionURL string       `gorm:"type:varchar(1024)" json:"subscriptionUrl"`
	Status          ClientStatus `gorm:"type:enum('active','blocked');not null;default:'active'" json:"status"`
	ExpiresAt       time.Time    `gorm:"not null" json:"expiresAt"`
	CreatedAt       time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}
