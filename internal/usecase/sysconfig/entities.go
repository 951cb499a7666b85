package sysconfig

import (
	domain "mutualfund-backend/internal/domain/sysconfig"
)

type UpdateInput struct {
	ActorID string
	Patch   domain.Patch
	// Version, when set, must match the stored version.
	Version *int64
}
