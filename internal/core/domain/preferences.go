package domain

// Preferences holds per-user console settings persisted under the
// user_preferences key. Unknown stored fields are ignored; missing ones
// fall back to defaults on load.
type Preferences struct {
	FontSize            string `json:"fontSize"`
	CompactMode         bool   `json:"compactMode"`
	SidebarAutoCollapse bool   `json:"sidebarAutoCollapse"`
	EnableNotifications bool   `json:"enableNotifications"`
	EnableSound         bool   `json:"enableSound"`
	ThemeOverride       string `json:"themeOverride"`
	Language            string `json:"language"`
}

// DefaultPreferences returns the settings used before a user saves anything.
func DefaultPreferences() Preferences {
	return Preferences{
		FontSize:            "medium",
		CompactMode:         false,
		SidebarAutoCollapse: false,
		EnableNotifications: true,
		EnableSound:         false,
		ThemeOverride:       "auto",
		Language:            "en",
	}
}

var themeOverrideColors = map[string]string{
	"blue":   "#1890ff",
	"purple": "#722ed1",
	"green":  "#52c41a",
	"red":    "#ff4d4f",
	"orange": "#faad14",
}

var roleThemeColors = map[Role]string{
	RoleAdmin:    "#1890ff",
	RoleOperator: "#722ed1",
	RoleViewer:   "#52c41a",
}

// ThemeColor resolves the accent color: an explicit override wins, "auto"
// follows the user's role.
func (p Preferences) ThemeColor(role Role) string {
	if p.ThemeOverride != "" && p.ThemeOverride != "auto" {
		if c, ok := themeOverrideColors[p.ThemeOverride]; ok {
			return c
		}
		return "#1890ff"
	}
	if c, ok := roleThemeColors[role]; ok {
		return c
	}
	return "#1890ff"
}

// FontSizePixels maps the font size preference onto a pixel value.
func (p Preferences) FontSizePixels() string {
	switch p.FontSize {
	case "small":
		return "12px"
	case "large":
		return "16px"
	default:
		return "14px"
	}
}
