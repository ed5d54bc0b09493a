package clients

import (
	"time"

	"go_vpnadmin/internal/model"
)

// ClientDTO is the API representation of a client
type ClientDTO struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	RemoteUUID      string `json:"remoteUuid"`
	ShortUUID       string `json:"shortUuid"`
	SubscriptionURL string `json:"subscriptionUrl"`
	Status          string `json:"status"`
	ExpiresAt       string `json:"expiresAt"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func toDTO(c *model.Client) ClientDTO {
	return ClientDTO{
		ID:              c.ID,
		Username:        c.Username,
		RemoteUUID:      c.RemoteUUID,
		ShortUUID:       c.ShortUUID,
		SubscriptionURL: c.SubscriptionURL,
		Status:          string(c.Status),
		ExpiresAt:       c.ExpiresAt.UTC().Format(time.RFC3339),
		CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toDTOs(items []model.Client) []ClientDTO {
	out := make([]ClientDTO, len(items))
	for i := range items {
		out[i] = toDTO(&items[i])
	}
	return out
}
