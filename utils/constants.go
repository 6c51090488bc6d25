package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthTokenTTL is how long an issued session token (and its cached hash)
// stays valid. Logging in again replaces the cached hash, which revokes any
// older token for the same account.
const AuthTokenTTL = 24 * time.Hour
