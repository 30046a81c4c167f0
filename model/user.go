package model

import (
	"time"
)

// User is a back-office admin account, bound to the organization whose data
// it manages.
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"password"`
	PasswordBcrypt string    `json:"-" gorm:"column:password_bcrypt"`
	OrganizationId string    `json:"organizationId" gorm:"column:organization_id"`
	Enable         bool      `json:"enable"`
	CreateTime     time.Time `json:"createTime" gorm:"column:createTime"`
	UpdateTime     time.Time `json:"updateTime" gorm:"column:updateTime"`
}

func (User) TableName() string {
	return "user"
}
