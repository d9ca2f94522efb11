package policy

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dmelo/academia-app/gate"
	"github.com/dmelo/academia-app/internal/models"
)

// Role permission sets. Staff runs the front desk (enrollments, renewals,
// ledger entries); only admin may destroy records.
var rolePermissions = map[string][]gate.Permission{
	"admin": {"*:*"},
	"staff": {
		"plan:view", "plan:create", "plan:update",
		"student:view", "student:create", "student:update",
		"transaction:view", "transaction:create", "transaction:export",
	},
}

// DBProfileResolver maps a user id to its role's permission profile.
type DBProfileResolver struct{ DB *gorm.DB }

func NewDBProfileResolver(db *gorm.DB) *DBProfileResolver { return &DBProfileResolver{DB: db} }

func (r *DBProfileResolver) Resolve(_ context.Context, uid uint) (gate.Profile, error) {
	var user models.User
	if err := r.DB.Preload("Role").First(&user, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	granted, ok := rolePermissions[user.Role.Name]
	if !ok {
		return nil, nil
	}
	return gate.NewStaticProfile(user.Role.Name, granted...), nil
}
