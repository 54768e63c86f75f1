package services

import (
	"errors"
)

var (
	ErrMissingScanIdentifiers = errors.New("missing qr id or fingerprint")
	ErrMissingQRCodeID        = errors.New("qr code id is required")
)

// Location is a resolved geography. Nil fields are genuinely unknown and stay
// that way all the way into storage.
type Location struct {
	Country   *string
	Region    *string
	City      *string
	Latitude  *float64
	Longitude *float64
}

// GeoResolver turns an IP into a Location. Implementations must degrade to a
// zero Location on any failure; ingestion never waits on geography being
// resolvable.
type GeoResolver interface {
	Resolve(ip string) Location
}

// DeviceInfo is the classification of a raw user-agent string.
type DeviceInfo struct {
	DeviceType string
	OS         string
	Browser    string
}

// UAClassifier parses user-agent strings. Unrecognized input yields Unknown
// fields, never an error.
type UAClassifier interface {
	Classify(userAgent string) DeviceInfo
}
