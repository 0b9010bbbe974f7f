package domain

import "time"

// AuditFields records who created and last changed a persisted entity.
// The *By fields hold the actor id taken from the admin token subject.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
