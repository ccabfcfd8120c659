package entity

import "time"

// Business is a tenant. All access control hangs off the business a chat
// identity is registered under.
type Business struct {
	Id    uint   `gorm:"column:business_id;primaryKey;autoIncrement"`
	Name  string `gorm:"column:name;not null"`
	Email string `gorm:"column:email;not null"`
}

func (Business) TableName() string { return "businesses" }

// Employee binds a chat-platform identity (ChatId) to a business. The binding
// is created by the out-of-band registration flow and cleared when a
// subscription lapses.
type Employee struct {
	Id               uint    `gorm:"column:employee_id;primaryKey;autoIncrement"`
	BusinessId       uint    `gorm:"column:business_id;index;not null"`
	EmployeeName     string  `gorm:"column:employee_name;not null"`
	Email            string  `gorm:"column:email;not null"`
	ChatId           *string `gorm:"column:chat_id;index"`
	RegistrationCode string  `gorm:"column:registration_code"`
}

func (Employee) TableName() string { return "employees" }

// Subscription is a validity window for a business.
type Subscription struct {
	Id         uint      `gorm:"column:subscription_id;primaryKey;autoIncrement"`
	BusinessId uint      `gorm:"column:business_id;index;not null"`
	StartDate  time.Time `gorm:"column:start_date;not null"`
	EndDate    time.Time `gorm:"column:end_date;not null"`
}

func (Subscription) TableName() string { return "subscriptions" }

// ProjectAccess grants a business one project/document corpus.
type ProjectAccess struct {
	Id         uint   `gorm:"column:access_id;primaryKey;autoIncrement"`
	BusinessId uint   `gorm:"column:business_id;index;not null"`
	DocId      string `gorm:"column:doc_id;not null"`
	DocName    string `gorm:"column:doc_name"`
}

func (ProjectAccess) TableName() string { return "project_access" }
