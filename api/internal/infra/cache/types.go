package cache

import "sync"

// values must be comparable (pointers, strings), expiry compares them
type Cache struct {
	Storage sync.Map
}
