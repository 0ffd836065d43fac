// Package ownership is the single place that decides whether a caller may
// mutate an existing owned resource. Equality of caller and owner is
// necessary and sufficient: no roles, no delegation.
package ownership

import (
	"github.com/google/uuid"

	"github.com/khoahotran/devlink/pkg/apperror"
)

func Permit(ownerID, callerID uuid.UUID) bool {
	return ownerID == callerID
}

// Check wraps a denial into the permission-denied app error so every service
// surfaces it the same way. A deny is distinct from an authentication
// failure: the caller is known, just not the owner.
func Check(ownerID, callerID uuid.UUID, resource string) error {
	if !Permit(ownerID, callerID) {
		return apperror.NewPermissionDenied("caller does not own this " + resource)
	}
	return nil
}
