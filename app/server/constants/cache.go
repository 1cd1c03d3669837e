package constants

const (
	CacheKeyPrefixResponse = "pb:response:"
)

const (
	HeaderCache = "X-Cache"
)
