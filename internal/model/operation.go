package model

import (
	"time"

	"gorm.io/datatypes"
)

// ActionType represents the kind of lifecycle operation performed on a client
type ActionType string

const (
	ActionCreate         ActionType = "create"
	ActionDelete         ActionType = "delete"
	ActionExtend         ActionType = "extend"
	ActionBlock          ActionType = "block"
	ActionUnblock        ActionType = "unblock"
	ActionGetConfig      ActionType = "get_config"
	ActionRotateConfig   ActionType = "rotate_config"
	ActionAutoDeactivate ActionType = "auto_deactivate"
)

// OperationResult represents the outcome of an operation
type OperationResult string

const (
	OperationSuccess OperationResult = "success"
	OperationFail    OperationResult = "fail"
)

// Operation is one append-only audit record. Rows are never updated; they are
// only removed together with their owning client.
type Operation struct {
	ID        string          `gorm:"type:char(36);primaryKey" json:"id"`
	ClientID  string          `gorm:"type:char(36);index;not null" json:"clientId"`
	Action    ActionType      `gorm:"type:varchar(32);not null" json:"action"`
	Payload   datatypes.JSON  `gorm:"type:json" json:"payload"`
	Result    OperationResult `gorm:"type:enum('success','fail');not null" json:"result"`
	Error     string          `gorm:"type:text" json:"error"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName specifies the table name for Operation
func (Operation) TableName() string {
	return "operations"
}
