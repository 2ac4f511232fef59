package routes

import (
	"testing"

	"hostelhub-server/utils"
)

func TestOwnerOrStaff(t *testing.T) {
	cases := []struct {
		name    string
		claims  *utils.AccessToken
		ownerID uint
		want    bool
	}{
		{"owner reads own record", &utils.AccessToken{ID: 7, Role: "guest"}, 7, true},
		{"guest reads someone else's record", &utils.AccessToken{ID: 7, Role: "guest"}, 8, false},
		{"staff reads any record", &utils.AccessToken{ID: 2, Role: "staff"}, 8, true},
		{"warden reads any record", &utils.AccessToken{ID: 2, Role: "warden"}, 8, true},
		{"accountant reads any record", &utils.AccessToken{ID: 2, Role: "accountant"}, 8, true},
		{"admin reads any record", &utils.AccessToken{ID: 2, Role: "admin"}, 8, true},
		{"super_admin reads any record", &utils.AccessToken{ID: 2, Role: "super_admin"}, 8, true},
		{"unknown role, not owner", &utils.AccessToken{ID: 2, Role: "visitor"}, 8, false},
		{"nil claims", nil, 8, false},
	}
	for _, c := range cases {
		if got := ownerOrStaff(c.claims, c.ownerID); got != c.want {
			t.Errorf("%s: ownerOrStaff = %v, want %v", c.name, got, c.want)
		}
	}
}
