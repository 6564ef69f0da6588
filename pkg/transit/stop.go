package transit

// Stop is a physical bus stop, identified by its AtcoCode.
type Stop struct {
	PrimaryIdentifier string `bson:",omitempty"`

	Name string `bson:",omitempty"`

	Latitude  float64
	Longitude float64
}
