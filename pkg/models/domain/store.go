package domain

type StoreType string

const (
	StoreTypeMall       StoreType = "mall"
	StoreTypeStandalone StoreType = "standalone"
)

type Store struct {
	ID             string
	Name           string
	Location       string
	Type           StoreType
	GeofenceRadius float64 // meters
}
