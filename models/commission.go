package models

type CommissionType string

const (
	CommissionPercentage CommissionType = "PERCENTAGE"
	CommissionFixed      CommissionType = "FIXED"

	DefaultCommissionPercentage = 40.0
)

func (t CommissionType) Valid() bool {
	return t == CommissionPercentage || t == CommissionFixed
}

// CommissionConfig is the commission account of a staff member in one company.
type CommissionConfig struct {
	Model
	UserID    uint `gorm:"not null;uniqueIndex:idx_commission_config" json:"userId"`
	CompanyID uint `gorm:"not null;uniqueIndex:idx_commission_config" json:"companyId"`

	Rules []CommissionRule `gorm:"foreignKey:ConfigID" json:"rules,omitempty"`
}

type CommissionRule struct {
	Model
	ConfigID  uint           `gorm:"not null;uniqueIndex:idx_commission_rule" json:"configId"`
	ServiceID uint           `gorm:"not null;uniqueIndex:idx_commission_rule" json:"serviceId"`
	Type      CommissionType `gorm:"type:varchar(20);not null" json:"type"`
	Value     float64        `gorm:"type:decimal(10,2);not null" json:"value"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// Amount is the payout for quantity units of a service sold at price.
func (r CommissionRule) Amount(price float64, quantity int) float64 {
	if r.Type == CommissionFixed {
		return r.Value * float64(quantity)
	}
	return price * float64(quantity) * r.Value / 100
}
