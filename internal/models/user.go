package models

import "time"

// User & auth related models
type User struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;unique;not null;index" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"` // bcrypt hash
	Name      string    `gorm:"column:name" json:"name"`
	RoleID    uint      `gorm:"column:role_id" json:"-"`
	Role      Role      `gorm:"foreignKey:RoleID" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"-"`
}

type Role struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"-"`
	Name        string    `gorm:"column:name;unique;not null" json:"name"` // admin, staff
	Description string    `gorm:"column:description" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"-"`
}
