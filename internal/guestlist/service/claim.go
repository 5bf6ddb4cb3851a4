package service

import (
	"context"
	"errors"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
)

var (
	// ErrClaimRejected means both device slots are held by other devices.
	// Not retryable with the same device.
	ErrClaimRejected = errors.New("service: code already claimed by other devices")

	// ErrInvalidDevice is returned for an empty device identifier.
	ErrInvalidDevice = errors.New("service: device_id is required")
)

// ClaimService binds client devices to invitation codes, restricting a
// code's redemption to at most two distinct devices.
type ClaimService struct {
	Store store.Store
}

// ClaimDevice applies the claim protocol for (code, deviceID):
//
//  1. unknown code is a not-found error, distinct from claim rejection;
//  2. a device that already holds a slot may re-validate freely;
//  3. otherwise the first open slot is assigned via a single-row
//     compare-and-set, so two devices racing for the last slot cannot
//     both win;
//  4. with both slots held by other devices the claim is rejected.
func (s *ClaimService) ClaimDevice(ctx context.Context, code, deviceID string) (domain.Guest, error) {
	if deviceID == "" {
		return domain.Guest{}, ErrInvalidDevice
	}
	code = domain.NormalizeCode(code)

	g, err := s.Store.Guests().GetGuestByCode(ctx, code)
	if err != nil {
		return domain.Guest{}, err
	}

	// Each pass either returns or observes a slot filled by a concurrent
	// claim, so attempts are bounded by the number of slots.
	for range domain.DeviceSlots {
		if g.HasDevice(deviceID) {
			return g, nil
		}

		slot := -1
		for i, id := range g.DeviceIDs {
			if id == "" {
				slot = i
				break
			}
		}
		if slot < 0 {
			return g, ErrClaimRejected
		}

		claimed, err := s.Store.Guests().ClaimDeviceSlot(ctx, code, slot, deviceID)
		if err != nil {
			return domain.Guest{}, err
		}

		g, err = s.Store.Guests().GetGuestByCode(ctx, code)
		if err != nil {
			return domain.Guest{}, err
		}
		if claimed {
			return g, nil
		}
	}

	if g.HasDevice(deviceID) {
		return g, nil
	}
	return g, ErrClaimRejected
}

// ValidateDevice returns the guest linked to a device identifier, matching
// either slot. A miss is store.ErrNotFound ("no guest linked"), not an
// application failure.
func (s *ClaimService) ValidateDevice(ctx context.Context, deviceID string) (domain.Guest, error) {
	if deviceID == "" {
		return domain.Guest{}, ErrInvalidDevice
	}
	return s.Store.Guests().GetGuestByDeviceID(ctx, deviceID)
}
