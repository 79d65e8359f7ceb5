package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bedspace/internal/domain/occupancy"
	"bedspace/internal/domain/premises"
)

// SnapshotRepository loads premises inventory and ledgers from the booking
// system's read collections. It only reads: the engine never writes state.
type SnapshotRepository struct {
	premisesCol     *mongo.Collection
	bookingsCol     *mongo.Collection
	outOfServiceCol *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{
		premisesCol:     db.Collection("premises"),
		bookingsCol:     db.Collection("bookings"),
		outOfServiceCol: db.Collection("out_of_service_periods"),
	}
}

func (r *SnapshotRepository) ListPremises(ctx context.Context) ([]*premises.Premises, error) {
	cursor, err := r.premisesCol.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*premises.Premises
	for cursor.Next(ctx) {
		var doc premisesDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		p, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cursor.Err()
}

func (r *SnapshotRepository) PremisesByID(ctx context.Context, id premises.PremisesID) (*premises.Premises, error) {
	var doc premisesDocument
	if err := r.premisesCol.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", premises.ErrPremisesNotFound, id)
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *SnapshotRepository) LedgerFor(ctx context.Context, id premises.PremisesID) (occupancy.Ledger, error) {
	p, err := r.PremisesByID(ctx, id)
	if err != nil {
		return occupancy.Ledger{}, err
	}
	bedIDs := make([]string, 0)
	for _, bs := range p.BedSpaces() {
		bedIDs = append(bedIDs, string(bs.Bed.ID))
	}
	filter := bson.M{"bed_id": bson.M{"$in": bedIDs}}

	bookings, err := r.loadBookings(ctx, filter)
	if err != nil {
		return occupancy.Ledger{}, err
	}
	periods, err := r.loadOutOfService(ctx, filter)
	if err != nil {
		return occupancy.Ledger{}, err
	}
	return occupancy.NewLedger(bookings, periods), nil
}

func (r *SnapshotRepository) loadBookings(ctx context.Context, filter bson.M) ([]occupancy.Booking, error) {
	cursor, err := r.bookingsCol.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []occupancy.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toRecord())
	}
	return out, cursor.Err()
}

func (r *SnapshotRepository) loadOutOfService(ctx context.Context, filter bson.M) ([]occupancy.OutOfServicePeriod, error) {
	cursor, err := r.outOfServiceCol.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []occupancy.OutOfServicePeriod
	for cursor.Next(ctx) {
		var doc outOfServiceDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toRecord())
	}
	return out, cursor.Err()
}

type addressDocument struct {
	Line1    string  `bson:"line1"`
	Line2    string  `bson:"line2"`
	Town     string  `bson:"town"`
	Postcode string  `bson:"postcode"`
	Region   string  `bson:"region"`
	Lat      float64 `bson:"lat"`
	Lon      float64 `bson:"lon"`
}

type bedDocument struct {
	ID         string `bson:"_id"`
	Name       string `bson:"name"`
	ActiveFrom int64  `bson:"active_from"`
	ActiveTo   *int64 `bson:"active_to,omitempty"`
}

type roomDocument struct {
	ID              string        `bson:"_id"`
	Name            string        `bson:"name"`
	Characteristics []string      `bson:"characteristics"`
	Beds            []bedDocument `bson:"beds"`
}

type premisesDocument struct {
	ID      string          `bson:"_id"`
	Name    string          `bson:"name"`
	ApType  string          `bson:"ap_type"`
	Address addressDocument `bson:"address"`
	Rooms   []roomDocument  `bson:"rooms"`
}

func (d premisesDocument) toAggregate() (*premises.Premises, error) {
	rooms := make([]premises.Room, 0, len(d.Rooms))
	for _, room := range d.Rooms {
		characteristics, err := premises.NormalizeCharacteristics(room.Characteristics)
		if err != nil {
			return nil, fmt.Errorf("premises %s room %s: %w", d.ID, room.ID, err)
		}
		beds := make([]premises.Bed, 0, len(room.Beds))
		for _, bed := range room.Beds {
			beds = append(beds, premises.Bed{
				ID:         premises.BedID(bed.ID),
				Name:       bed.Name,
				ActiveFrom: timestampToTime(bed.ActiveFrom),
				ActiveTo:   optionalTimestamp(bed.ActiveTo),
			})
		}
		rooms = append(rooms, premises.Room{
			ID:              premises.RoomID(room.ID),
			Name:            room.Name,
			Characteristics: characteristics,
			Beds:            beds,
		})
	}
	return premises.New(premises.CreateParams{
		ID:     premises.PremisesID(d.ID),
		Name:   d.Name,
		ApType: premises.ApType(d.ApType),
		Address: premises.Address{
			Line1:    d.Address.Line1,
			Line2:    d.Address.Line2,
			Town:     d.Address.Town,
			Postcode: d.Address.Postcode,
			Region:   d.Address.Region,
			Lat:      d.Address.Lat,
			Lon:      d.Address.Lon,
		},
		Rooms: rooms,
	})
}

type bookingDocument struct {
	ID        string `bson:"_id"`
	BedID     string `bson:"bed_id"`
	Arrival   int64  `bson:"arrival"`
	Departure int64  `bson:"departure"`
	Cancelled bool   `bson:"cancelled"`
}

func (d bookingDocument) toRecord() occupancy.Booking {
	return occupancy.Booking{
		ID:            occupancy.BookingID(d.ID),
		Bed:           premises.BedID(d.BedID),
		ArrivalDate:   timestampToTime(d.Arrival),
		DepartureDate: timestampToTime(d.Departure),
		Cancelled:     d.Cancelled,
	}
}

type outOfServiceDocument struct {
	ID        string `bson:"_id"`
	BedID     string `bson:"bed_id"`
	Start     int64  `bson:"start"`
	End       *int64 `bson:"end,omitempty"`
	Reason    string `bson:"reason"`
	Cancelled bool   `bson:"cancelled"`
}

func (d outOfServiceDocument) toRecord() occupancy.OutOfServicePeriod {
	return occupancy.OutOfServicePeriod{
		ID:        occupancy.OutOfServicePeriodID(d.ID),
		Bed:       premises.BedID(d.BedID),
		StartDate: timestampToTime(d.Start),
		EndDate:   optionalTimestamp(d.End),
		Reason:    d.Reason,
		Cancelled: d.Cancelled,
	}
}

func timestampToTime(millis int64) time.Time {
	if millis == 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis).UTC()
}

func optionalTimestamp(millis *int64) time.Time {
	if millis == nil {
		return time.Time{}
	}
	return timestampToTime(*millis)
}
