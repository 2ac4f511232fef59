package routes

import (
	"hostelhub-server/utils"

	"golang.org/x/exp/slices"
)

var operationalRoles = []string{"staff", "warden", "accountant", "admin", "super_admin"}

// ownerOrStaff reports whether the caller may touch a record owned by
// ownerID: either it is their own, or they hold an operational role.
func ownerOrStaff(claims *utils.AccessToken, ownerID uint) bool {
	if claims == nil {
		return false
	}
	return claims.ID == ownerID || slices.Contains(operationalRoles, claims.Role)
}
