// internal/domain/models/vehicletypes.go
package models

// Vehicle type categories. The values are the Turkish category names the
// system has always stored; they are wire values, not display strings.
const (
	VehicleTypeOtomobil   = "otomobil"
	VehicleTypeKamyonet   = "kamyonet"
	VehicleTypeKamyon     = "kamyon"
	VehicleTypeMinibus    = "minibus"
	VehicleTypeOtobus     = "otobus"
	VehicleTypePanelvan   = "panelvan"
	VehicleTypePikap      = "pikap"
	VehicleTypeTir        = "tir"
	VehicleTypeMotosiklet = "motosiklet"
	VehicleTypeTraktor    = "traktor"
	VehicleTypeIsMakinesi = "is_makinesi"
)

var vehicleTypes = []string{
	VehicleTypeOtomobil,
	VehicleTypeKamyonet,
	VehicleTypeKamyon,
	VehicleTypeMinibus,
	VehicleTypeOtobus,
	VehicleTypePanelvan,
	VehicleTypePikap,
	VehicleTypeTir,
	VehicleTypeMotosiklet,
	VehicleTypeTraktor,
	VehicleTypeIsMakinesi,
}

// ValidVehicleType reports whether s is a declared vehicle type.
func ValidVehicleType(s string) bool {
	for _, v := range vehicleTypes {
		if s == v {
			return true
		}
	}
	return false
}

// VehicleTypeList returns the declared vehicle types in a stable order.
func VehicleTypeList() []string {
	out := make([]string, len(vehicleTypes))
	copy(out, vehicleTypes)
	return out
}

// Vehicle usage purposes.
const (
	PurposePassenger = "passenger"
	PurposeCargo     = "cargo"
)

var usagePurposes = []string{PurposePassenger, PurposeCargo}

// ValidUsagePurpose reports whether s is a declared usage purpose.
func ValidUsagePurpose(s string) bool {
	return s == PurposePassenger || s == PurposeCargo
}

// UsagePurposeList returns the declared usage purposes.
func UsagePurposeList() []string {
	out := make([]string, len(usagePurposes))
	copy(out, usagePurposes)
	return out
}
