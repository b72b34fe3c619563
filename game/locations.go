package game

import "math/rand"

// LocationCatalog hands out the secret location for a round.
type LocationCatalog interface {
	Pick() string
}

// The classic Spyfall deck.
var defaultLocations = []string{
	"Airplane",
	"Bank",
	"Beach",
	"Casino",
	"Cathedral",
	"Circus Tent",
	"Corporate Party",
	"Day Spa",
	"Embassy",
	"Hospital",
	"Hotel",
	"Military Base",
	"Movie Studio",
	"Ocean Liner",
	"Passenger Train",
	"Pirate Ship",
	"Polar Station",
	"Police Station",
	"Restaurant",
	"School",
	"Service Station",
	"Space Station",
	"Submarine",
	"Supermarket",
	"Theater",
	"University",
}

type builtinCatalog struct {
	locations []string
}

func NewLocationCatalog() LocationCatalog {
	return &builtinCatalog{locations: defaultLocations}
}

func (c *builtinCatalog) Pick() string {
	return c.locations[rand.Intn(len(c.locations))]
}
