package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAccessGrant_Active(t *testing.T) {
	now := time.Now().UTC()
	revokedAt := now.Add(-time.Minute)

	tests := []struct {
		name   string
		grant  AccessGrant
		active bool
	}{
		{
			name: "active grant",
			grant: AccessGrant{
				ExpiresAt: now.Add(10 * time.Minute),
			},
			active: true,
		},
		{
			name: "expired grant",
			grant: AccessGrant{
				ExpiresAt: now.Add(-time.Second),
			},
			active: false,
		},
		{
			name: "revoked grant with remaining TTL",
			grant: AccessGrant{
				ExpiresAt: now.Add(10 * time.Minute),
				RevokedAt: &revokedAt,
			},
			active: false,
		},
		{
			name: "expiry boundary is exclusive",
			grant: AccessGrant{
				ExpiresAt: now,
			},
			active: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.grant.ID = uuid.Must(uuid.NewV7())
			assert.Equal(t, tt.active, tt.grant.Active(now))
		})
	}
}
