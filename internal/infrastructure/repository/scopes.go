package repository

import (
	"gorm.io/gorm"
)

// CompanyScope restricts a query to one company's rows. A zero id matches nothing.
func CompanyScope(companyID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID <= 0 {
			return db.Where("1 = 0")
		}
		return db.Where("company_id = ?", companyID)
	}
}
