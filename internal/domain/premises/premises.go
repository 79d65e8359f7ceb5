package premises

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bedspace/internal/domain/shared/daterange"
)

var (
	ErrPremisesNotFound = errors.New("premises: not found")
	ErrNameRequired     = errors.New("premises: name is required")
	ErrIDRequired       = errors.New("premises: id is required")
	ErrDuplicateRoom    = errors.New("premises: duplicate room id")
	ErrDuplicateBed     = errors.New("premises: duplicate bed id")
	ErrBedLifecycle     = errors.New("premises: bed active-to must not be before active-from")
	ErrBedStartRequired = errors.New("premises: bed active-from is required")
)

type PremisesID string
type RoomID string
type BedID string

// ApType classifies an approved premises.
type ApType string

const (
	ApTypeNormal ApType = "NORMAL"
	ApTypePIPE   ApType = "PIPE"
	ApTypeESAP   ApType = "ESAP"
	ApTypeRFAP   ApType = "RFAP"
	ApTypeMHAP   ApType = "MHAP"
)

type Address struct {
	Line1    string
	Line2    string
	Town     string
	Postcode string
	Region   string
	Lat      float64
	Lon      float64
}

// Bed is the bookable unit. A zero ActiveTo means the bed has no scheduled
// end of life.
type Bed struct {
	ID         BedID
	Name       string
	ActiveFrom time.Time
	ActiveTo   time.Time
}

// ActiveOn reports whether the bed is structurally countable on the given day.
func (b Bed) ActiveOn(day time.Time) bool {
	d := daterange.Day(day)
	if b.ActiveFrom.IsZero() || d.Before(daterange.Day(b.ActiveFrom)) {
		return false
	}
	if b.ActiveTo.IsZero() {
		return true
	}
	return !d.After(daterange.Day(b.ActiveTo))
}

type Room struct {
	ID              RoomID
	Name            string
	Characteristics []Characteristic
	Beds            []Bed
}

func (r Room) HasCharacteristic(c Characteristic) bool {
	for _, existing := range r.Characteristics {
		if existing == c {
			return true
		}
	}
	return false
}

type Premises struct {
	ID      PremisesID
	Name    string
	ApType  ApType
	Address Address
	Rooms   []Room
}

// Repository is implemented by snapshot-loading collaborators.
type Repository interface {
	ByID(ctx context.Context, id PremisesID) (*Premises, error)
	List(ctx context.Context) ([]*Premises, error)
}

type CreateParams struct {
	ID      PremisesID
	Name    string
	ApType  ApType
	Address Address
	Rooms   []Room
}

func New(params CreateParams) (*Premises, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	apType := params.ApType
	if apType == "" {
		apType = ApTypeNormal
	}
	roomSeen := make(map[RoomID]struct{}, len(params.Rooms))
	bedSeen := make(map[BedID]struct{})
	rooms := make([]Room, 0, len(params.Rooms))
	for _, room := range params.Rooms {
		if _, ok := roomSeen[room.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoom, room.ID)
		}
		roomSeen[room.ID] = struct{}{}
		for _, c := range room.Characteristics {
			if !c.Valid() {
				return nil, fmt.Errorf("%w: %q on room %s", ErrUnknownCharacteristic, c, room.ID)
			}
		}
		for _, bed := range room.Beds {
			if _, ok := bedSeen[bed.ID]; ok {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateBed, bed.ID)
			}
			bedSeen[bed.ID] = struct{}{}
			if bed.ActiveFrom.IsZero() {
				return nil, fmt.Errorf("%w: bed %s", ErrBedStartRequired, bed.ID)
			}
			if !bed.ActiveTo.IsZero() && bed.ActiveTo.Before(bed.ActiveFrom) {
				return nil, fmt.Errorf("%w: bed %s", ErrBedLifecycle, bed.ID)
			}
		}
		copied := room
		copied.Characteristics = dedupeCharacteristics(room.Characteristics)
		copied.Beds = append([]Bed(nil), room.Beds...)
		rooms = append(rooms, copied)
	}
	return &Premises{
		ID:      params.ID,
		Name:    strings.TrimSpace(params.Name),
		ApType:  apType,
		Address: params.Address,
		Rooms:   rooms,
	}, nil
}

// BedSpace flattens a bed together with the room facts the capacity engine
// filters on.
type BedSpace struct {
	Bed             Bed
	Room            RoomID
	Characteristics []Characteristic
}

func (bs BedSpace) HasCharacteristic(c Characteristic) bool {
	for _, existing := range bs.Characteristics {
		if existing == c {
			return true
		}
	}
	return false
}

// BedSpaces lists every bed with its room characteristics, in room order.
func (p *Premises) BedSpaces() []BedSpace {
	var out []BedSpace
	for _, room := range p.Rooms {
		for _, bed := range room.Beds {
			out = append(out, BedSpace{Bed: bed, Room: room.ID, Characteristics: room.Characteristics})
		}
	}
	return out
}

// HasBed reports whether the bed belongs to this premises.
func (p *Premises) HasBed(id BedID) bool {
	for _, room := range p.Rooms {
		for _, bed := range room.Beds {
			if bed.ID == id {
				return true
			}
		}
	}
	return false
}

// BedCountOn counts beds structurally active on the given day.
func (p *Premises) BedCountOn(day time.Time) int {
	count := 0
	for _, room := range p.Rooms {
		for _, bed := range room.Beds {
			if bed.ActiveOn(day) {
				count++
			}
		}
	}
	return count
}

// CharacteristicUnion returns every characteristic carried by at least one
// room, deduplicated in first-seen order.
func (p *Premises) CharacteristicUnion() []Characteristic {
	var all []Characteristic
	for _, room := range p.Rooms {
		all = append(all, room.Characteristics...)
	}
	return dedupeCharacteristics(all)
}
