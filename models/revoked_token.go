package models

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken records a logged-out token's jti. The auth middleware rejects
// any token whose jti appears here; rows become dead weight once the token
// would have expired anyway and can be pruned by ExpiresAt.
type RevokedToken struct {
	TokenID   string    `gorm:"size:36;primaryKey" json:"token_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	RevokedAt time.Time `gorm:"not null" json:"revoked_at"`
}
