package session

// Store holds the bearer credential between runs. Absence means the
// client is anonymous. No expiry is tracked: a token stays present until
// explicitly cleared, even if the server has since invalidated it.
type Store interface {
	Set(token string) error
	Get() (string, bool)
	Clear() error
}
