package models

// PermissionName is the wire name of a single capability flag.
type PermissionName string

const (
	PermViewCompanies  PermissionName = "viewCompanies"
	PermManageCompany  PermissionName = "manageCompany"
	PermManageSettings PermissionName = "manageSettings"

	PermViewMembers       PermissionName = "viewMembers"
	PermManageMembers     PermissionName = "manageMembers"
	PermManagePermissions PermissionName = "managePermissions"

	PermViewAllAppointments PermissionName = "viewAllAppointments"
	PermViewOwnAppointments PermissionName = "viewOwnAppointments"
	PermManageAppointments  PermissionName = "manageAppointments"

	PermViewAllClients PermissionName = "viewAllClients"
	PermViewOwnClients PermissionName = "viewOwnClients"
	PermManageClients  PermissionName = "manageClients"

	PermViewServices   PermissionName = "viewServices"
	PermManageServices PermissionName = "manageServices"
	PermViewProducts   PermissionName = "viewProducts"
	PermManageProducts PermissionName = "manageProducts"

	PermViewAllCommissions PermissionName = "viewAllCommissions"
	PermViewOwnCommissions PermissionName = "viewOwnCommissions"
	PermManageCommissions  PermissionName = "manageCommissions"

	PermViewAllGoals PermissionName = "viewAllGoals"
	PermViewOwnGoals PermissionName = "viewOwnGoals"
	PermManageGoals  PermissionName = "manageGoals"

	PermViewFullRevenue PermissionName = "viewFullRevenue"
	PermViewOwnRevenue  PermissionName = "viewOwnRevenue"

	PermViewFullStatistics PermissionName = "viewFullStatistics"
	PermViewOwnStatistics  PermissionName = "viewOwnStatistics"
)

// Permission is the flat capability row of a user. Bool columns carry no
// database default of true: gorm would turn an explicit false into the default.
type Permission struct {
	Model
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`

	ViewCompanies  bool `gorm:"not null;default:false" json:"viewCompanies"`
	ManageCompany  bool `gorm:"not null;default:false" json:"manageCompany"`
	ManageSettings bool `gorm:"not null;default:false" json:"manageSettings"`

	ViewMembers       bool `gorm:"not null;default:false" json:"viewMembers"`
	ManageMembers     bool `gorm:"not null;default:false" json:"manageMembers"`
	ManagePermissions bool `gorm:"not null;default:false" json:"managePermissions"`

	ViewAllAppointments bool `gorm:"not null;default:false" json:"viewAllAppointments"`
	ViewOwnAppointments bool `gorm:"not null;default:false" json:"viewOwnAppointments"`
	ManageAppointments  bool `gorm:"not null;default:false" json:"manageAppointments"`

	ViewAllClients bool `gorm:"not null;default:false" json:"viewAllClients"`
	ViewOwnClients bool `gorm:"not null;default:false" json:"viewOwnClients"`
	ManageClients  bool `gorm:"not null;default:false" json:"manageClients"`

	ViewServices   bool `gorm:"not null;default:false" json:"viewServices"`
	ManageServices bool `gorm:"not null;default:false" json:"manageServices"`
	ViewProducts   bool `gorm:"not null;default:false" json:"viewProducts"`
	ManageProducts bool `gorm:"not null;default:false" json:"manageProducts"`

	ViewAllCommissions bool `gorm:"not null;default:false" json:"viewAllCommissions"`
	ViewOwnCommissions bool `gorm:"not null;default:false" json:"viewOwnCommissions"`
	ManageCommissions  bool `gorm:"not null;default:false" json:"manageCommissions"`

	ViewAllGoals bool `gorm:"not null;default:false" json:"viewAllGoals"`
	ViewOwnGoals bool `gorm:"not null;default:false" json:"viewOwnGoals"`
	ManageGoals  bool `gorm:"not null;default:false" json:"manageGoals"`

	ViewFullRevenue bool `gorm:"not null;default:false" json:"viewFullRevenue"`
	ViewOwnRevenue  bool `gorm:"not null;default:false" json:"viewOwnRevenue"`

	ViewFullStatistics bool `gorm:"not null;default:false" json:"viewFullStatistics"`
	ViewOwnStatistics  bool `gorm:"not null;default:false" json:"viewOwnStatistics"`
}

// PermissionNames lists every capability in a stable order.
var PermissionNames = []PermissionName{
	PermViewCompanies, PermManageCompany, PermManageSettings,
	PermViewMembers, PermManageMembers, PermManagePermissions,
	PermViewAllAppointments, PermViewOwnAppointments, PermManageAppointments,
	PermViewAllClients, PermViewOwnClients, PermManageClients,
	PermViewServices, PermManageServices, PermViewProducts, PermManageProducts,
	PermViewAllCommissions, PermViewOwnCommissions, PermManageCommissions,
	PermViewAllGoals, PermViewOwnGoals, PermManageGoals,
	PermViewFullRevenue, PermViewOwnRevenue,
	PermViewFullStatistics, PermViewOwnStatistics,
}

var permissionFields = map[PermissionName]func(*Permission) *bool{
	PermViewCompanies:       func(p *Permission) *bool { return &p.ViewCompanies },
	PermManageCompany:       func(p *Permission) *bool { return &p.ManageCompany },
	PermManageSettings:      func(p *Permission) *bool { return &p.ManageSettings },
	PermViewMembers:         func(p *Permission) *bool { return &p.ViewMembers },
	PermManageMembers:       func(p *Permission) *bool { return &p.ManageMembers },
	PermManagePermissions:   func(p *Permission) *bool { return &p.ManagePermissions },
	PermViewAllAppointments: func(p *Permission) *bool { return &p.ViewAllAppointments },
	PermViewOwnAppointments: func(p *Permission) *bool { return &p.ViewOwnAppointments },
	PermManageAppointments:  func(p *Permission) *bool { return &p.ManageAppointments },
	PermViewAllClients:      func(p *Permission) *bool { return &p.ViewAllClients },
	PermViewOwnClients:      func(p *Permission) *bool { return &p.ViewOwnClients },
	PermManageClients:       func(p *Permission) *bool { return &p.ManageClients },
	PermViewServices:        func(p *Permission) *bool { return &p.ViewServices },
	PermManageServices:      func(p *Permission) *bool { return &p.ManageServices },
	PermViewProducts:        func(p *Permission) *bool { return &p.ViewProducts },
	PermManageProducts:      func(p *Permission) *bool { return &p.ManageProducts },
	PermViewAllCommissions:  func(p *Permission) *bool { return &p.ViewAllCommissions },
	PermViewOwnCommissions:  func(p *Permission) *bool { return &p.ViewOwnCommissions },
	PermManageCommissions:   func(p *Permission) *bool { return &p.ManageCommissions },
	PermViewAllGoals:        func(p *Permission) *bool { return &p.ViewAllGoals },
	PermViewOwnGoals:        func(p *Permission) *bool { return &p.ViewOwnGoals },
	PermManageGoals:         func(p *Permission) *bool { return &p.ManageGoals },
	PermViewFullRevenue:     func(p *Permission) *bool { return &p.ViewFullRevenue },
	PermViewOwnRevenue:      func(p *Permission) *bool { return &p.ViewOwnRevenue },
	PermViewFullStatistics:  func(p *Permission) *bool { return &p.ViewFullStatistics },
	PermViewOwnStatistics:   func(p *Permission) *bool { return &p.ViewOwnStatistics },
}

// IsPermissionName reports whether name is a known capability.
func IsPermissionName(name string) bool {
	_, ok := permissionFields[PermissionName(name)]
	return ok
}

// Get returns the flag value and whether the name exists on the row.
func (p *Permission) Get(name PermissionName) (value bool, known bool) {
	field, ok := permissionFields[name]
	if !ok {
		return false, false
	}
	return *field(p), true
}

// Set updates a flag; unknown names are ignored and reported as false.
func (p *Permission) Set(name PermissionName, value bool) bool {
	field, ok := permissionFields[name]
	if !ok {
		return false
	}
	*field(p) = value
	return true
}

// Flags returns only the boolean capabilities, keyed by wire name.
func (p *Permission) Flags() map[string]bool {
	flags := make(map[string]bool, len(PermissionNames))
	for _, name := range PermissionNames {
		flags[string(name)] = *permissionFields[name](p)
	}
	return flags
}

var managerPreset = []PermissionName{
	PermViewCompanies,
	PermViewAllAppointments, PermViewOwnAppointments, PermManageAppointments,
	PermViewAllClients, PermViewOwnClients, PermManageClients,
	PermViewServices, PermManageServices,
	PermViewProducts, PermManageProducts,
	PermViewFullStatistics,
}

var userPreset = []PermissionName{
	PermViewOwnAppointments,
	PermViewOwnClients,
	PermViewOwnCommissions,
	PermViewOwnGoals,
	PermViewOwnRevenue,
	PermViewServices,
	PermViewProducts,
}

// ApplyRole resets every flag to the preset of role, then turns on the
// recognised names in extras. Unknown extras are ignored.
func (p *Permission) ApplyRole(role Role, extras []string) {
	for _, name := range PermissionNames {
		p.Set(name, role == RoleAdmin)
	}
	switch role {
	case RoleManager:
		for _, name := range managerPreset {
			p.Set(name, true)
		}
	case RoleUser:
		for _, name := range userPreset {
			p.Set(name, true)
		}
	}
	p.ViewFullStatistics = true
	p.ViewOwnStatistics = true

	for _, extra := range extras {
		p.Set(PermissionName(extra), true)
	}
}

// OwnScopedPermissions is the USER preset, including the statistics defaults.
func OwnScopedPermissions() []PermissionName {
	names := append([]PermissionName{}, userPreset...)
	return append(names, PermViewFullStatistics, PermViewOwnStatistics)
}
