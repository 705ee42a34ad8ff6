package index

import (
	"github.com/minio/highwayhash"
)

var hashKey = []byte("tagripper-content-hash-key-32byt")

// Hash returns the highwayhash-64 of file content; it keys the scan cache and versions documents
func Hash(content []byte) (uint64, error) {
	hasher, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err = hasher.Write(content); err != nil {
		return 0, err
	}
	return hasher.Sum64(), nil
}
