package domain

// BuildIdempotencyKey scopes a client-supplied Idempotency-Key to the caller
// and operation, so two accounts can reuse the same key.
func BuildIdempotencyKey(account Account, operation, key string) string {
	return string(account) + ":" + operation + ":" + key
}
