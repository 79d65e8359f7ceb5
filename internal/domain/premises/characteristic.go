package premises

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCharacteristic = errors.New("premises: unknown characteristic")

// Characteristic is a capability tag carried by a room. The set is closed:
// anything outside the registry is rejected at the boundary rather than
// surfacing later as an empty match.
type Characteristic string

const (
	CharStepFreeAccess       Characteristic = "STEP_FREE_ACCESS"
	CharWheelchairAccessible Characteristic = "WHEELCHAIR_ACCESSIBLE"
	CharSingleOccupancy      Characteristic = "SINGLE_OCCUPANCY"
	CharEnSuite              Characteristic = "EN_SUITE"
	CharGroundFloor          Characteristic = "GROUND_FLOOR"
	CharNoSmoking            Characteristic = "NO_SMOKING"
	CharArsonSuitable        Characteristic = "ARSON_SUITABLE"
	CharLimitedMobility      Characteristic = "LIMITED_MOBILITY"
)

var characteristicRegistry = map[Characteristic]struct{}{
	CharStepFreeAccess:       {},
	CharWheelchairAccessible: {},
	CharSingleOccupancy:      {},
	CharEnSuite:              {},
	CharGroundFloor:          {},
	CharNoSmoking:            {},
	CharArsonSuitable:        {},
	CharLimitedMobility:      {},
}

// AllCharacteristics returns the registry in a stable order.
func AllCharacteristics() []Characteristic {
	return []Characteristic{
		CharStepFreeAccess,
		CharWheelchairAccessible,
		CharSingleOccupancy,
		CharEnSuite,
		CharGroundFloor,
		CharNoSmoking,
		CharArsonSuitable,
		CharLimitedMobility,
	}
}

func (c Characteristic) Valid() bool {
	_, ok := characteristicRegistry[c]
	return ok
}

// ParseCharacteristic maps a raw token onto the registry.
func ParseCharacteristic(raw string) (Characteristic, error) {
	token := Characteristic(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", "_")))
	if !token.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCharacteristic, raw)
	}
	return token, nil
}

// NormalizeCharacteristics parses raw tokens, dropping blanks and duplicates
// while preserving first-seen order.
func NormalizeCharacteristics(raw []string) ([]Characteristic, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Characteristic, 0, len(raw))
	seen := make(map[Characteristic]struct{}, len(raw))
	for _, token := range raw {
		if strings.TrimSpace(token) == "" {
			continue
		}
		c, err := ParseCharacteristic(token)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

func dedupeCharacteristics(values []Characteristic) []Characteristic {
	if len(values) == 0 {
		return nil
	}
	out := make([]Characteristic, 0, len(values))
	seen := make(map[Characteristic]struct{}, len(values))
	for _, c := range values {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
