// Package lock serializes inventory sync runs per user.
//
// RedisLocker coordinates several service instances through SETNX with a TTL,
// so a crashed holder cannot block a user forever. Each acquisition stores a
// random owner token and release only deletes the key while it still holds
// that token. LocalLocker is used when no redis address is configured.
package lock
