package rbac

// Role constants
const (
	RoleBrand   = "brand"
	RoleCreator = "creator"
)

// Permission constants
const (
	PermAuthorDraft     = "author_draft"
	PermPublishCampaign = "publish_campaign"
	PermManageCampaign  = "manage_campaign"
	PermBrowseCampaigns = "browse_campaigns"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleBrand: {
		PermAuthorDraft, PermPublishCampaign, PermManageCampaign, PermBrowseCampaigns,
	},
	RoleCreator: {
		PermBrowseCampaigns,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

func IsValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}
