package lifecycle

import (
	"context"

	"github.com/qwerty-development/revive-webapp/internal/models"
)

// OwnershipAuthorizer resolves ownership from the records themselves: a store actor owns
// the venues whose OwnerID is its user id, and a requester is the user recorded on the request.
type OwnershipAuthorizer struct{}

func (OwnershipAuthorizer) IsVenueOwner(_ context.Context, actor *models.Actor, venue *models.Venue) bool {
	return actor.Is(models.RoleStore) && venue != nil && venue.OwnerID != "" && venue.OwnerID == actor.UserID
}

func (OwnershipAuthorizer) IsRequester(_ context.Context, actor *models.Actor, req *models.BookingRequest) bool {
	return actor != nil && actor.UserID != "" && req != nil &&
		req.RequesterID != nil && *req.RequesterID == actor.UserID
}
