package redis

const (
	// KeyPrefixSnapshot is the prefix for per-context snapshot keys.
	KeyPrefixSnapshot = "alarmbridge:snapshot:"
	// KeyPrefixRefresh is the prefix for per-context refresh timestamps.
	KeyPrefixRefresh = "alarmbridge:refresh:"
)

// SnapshotKey returns the key holding the latest raw snapshot of a context.
func SnapshotKey(ucrID string) string {
	return KeyPrefixSnapshot + ucrID
}

// RefreshKey returns the key holding a context's last refresh timestamp.
func RefreshKey(ucrID string) string {
	return KeyPrefixRefresh + ucrID
}
