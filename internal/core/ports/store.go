package ports

// KeyValueStore is the console's local credential/preference storage.
// Implementations must never error: when the underlying medium is
// unavailable every call is a silent no-op and Get reports absence.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(keys ...string)
}

// Well-known storage keys.
const (
	KeyAuthToken       = "auth_token"
	KeyAuthUser        = "auth_user"
	KeyRefreshToken    = "refresh_token"
	KeyUserPreferences = "user_preferences"
)
