package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"bedspace/internal/domain/occupancy"
	"bedspace/internal/domain/premises"
)

const (
	eventBookingUpserted       = "booking.upserted"
	eventBookingCancelled      = "booking.cancelled"
	eventOutOfServiceUpserted  = "out_of_service.upserted"
	eventOutOfServiceCancelled = "out_of_service.cancelled"
)

// SnapshotApplier is the mutation surface the feed drives. The engine itself
// stays read-only; only the snapshot store changes.
type SnapshotApplier interface {
	ApplyBooking(ctx context.Context, b occupancy.Booking) error
	ApplyOutOfService(ctx context.Context, p occupancy.OutOfServicePeriod) error
}

// BookingFeedHandler applies booking-system change events to the snapshot
// store. Malformed payloads are logged and acknowledged: replaying them would
// fail identically, and the feed is the upstream system's responsibility.
type BookingFeedHandler struct {
	Store  SnapshotApplier
	Logger *slog.Logger
}

type feedEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type bookingPayload struct {
	ID        string `json:"id"`
	BedID     string `json:"bed_id"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
	Cancelled bool   `json:"cancelled"`
}

type outOfServicePayload struct {
	ID        string `json:"id"`
	BedID     string `json:"bed_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Reason    string `json:"reason"`
	Cancelled bool   `json:"cancelled"`
}

func (h BookingFeedHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var envelope feedEnvelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		h.log("booking feed message malformed", "error", err, "offset", msg.Offset)
		return nil
	}
	switch envelope.Type {
	case eventBookingUpserted, eventBookingCancelled:
		return h.applyBooking(ctx, envelope)
	case eventOutOfServiceUpserted, eventOutOfServiceCancelled:
		return h.applyOutOfService(ctx, envelope)
	default:
		h.log("booking feed event ignored", "type", envelope.Type, "offset", msg.Offset)
		return nil
	}
}

func (h BookingFeedHandler) applyBooking(ctx context.Context, envelope feedEnvelope) error {
	var payload bookingPayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		h.log("booking payload malformed", "error", err)
		return nil
	}
	arrival, err := parseFeedDate(payload.Arrival)
	if err != nil {
		h.log("booking arrival malformed", "booking_id", payload.ID, "error", err)
		return nil
	}
	departure, err := parseFeedDate(payload.Departure)
	if err != nil {
		h.log("booking departure malformed", "booking_id", payload.ID, "error", err)
		return nil
	}
	booking := occupancy.Booking{
		ID:            occupancy.BookingID(payload.ID),
		Bed:           premises.BedID(payload.BedID),
		ArrivalDate:   arrival,
		DepartureDate: departure,
		Cancelled:     payload.Cancelled || envelope.Type == eventBookingCancelled,
	}
	if err := h.Store.ApplyBooking(ctx, booking); err != nil {
		h.log("booking feed apply rejected", "booking_id", payload.ID, "error", err)
		return nil
	}
	return nil
}

func (h BookingFeedHandler) applyOutOfService(ctx context.Context, envelope feedEnvelope) error {
	var payload outOfServicePayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		h.log("out-of-service payload malformed", "error", err)
		return nil
	}
	start, err := parseFeedDate(payload.Start)
	if err != nil {
		h.log("out-of-service start malformed", "period_id", payload.ID, "error", err)
		return nil
	}
	var end time.Time
	if payload.End != "" {
		end, err = parseFeedDate(payload.End)
		if err != nil {
			h.log("out-of-service end malformed", "period_id", payload.ID, "error", err)
			return nil
		}
	}
	period := occupancy.OutOfServicePeriod{
		ID:        occupancy.OutOfServicePeriodID(payload.ID),
		Bed:       premises.BedID(payload.BedID),
		StartDate: start,
		EndDate:   end,
		Reason:    payload.Reason,
		Cancelled: payload.Cancelled || envelope.Type == eventOutOfServiceCancelled,
	}
	if err := h.Store.ApplyOutOfService(ctx, period); err != nil {
		h.log("out-of-service feed apply rejected", "period_id", payload.ID, "error", err)
		return nil
	}
	return nil
}

func (h BookingFeedHandler) log(msg string, args ...any) {
	if h.Logger == nil {
		return
	}
	h.Logger.Warn(msg, args...)
}

func parseFeedDate(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse feed date %q: %w", raw, err)
	}
	return t.UTC(), nil
}
