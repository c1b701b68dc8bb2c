package constants

import "fmt"

const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleSales      = "sales"
	RoleTrainer    = "trainer"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess   = "❌ Only admins may access %s."
	ErrOnlyTrainersCanAccess = "❌ Only trainers may access %s."
	ErrOnlyStaffCanAccess    = "❌ Only internal staff may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorTrainer(feature string) string {
	return fmt.Sprintf(ErrOnlyTrainersCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleSuperadmin,
		RoleAdmin,
		RoleSales,
		RoleTrainer,
	}

	AdminAndAbove = []string{
		RoleSuperadmin,
		RoleAdmin,
	}

	SalesAndAbove = []string{
		RoleSuperadmin,
		RoleAdmin,
		RoleSales,
	}

	TrainerOnly = []string{
		RoleTrainer,
	}
)
