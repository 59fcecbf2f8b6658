package ports

// Hasher defines the interface for computing artifact digests.
//
//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeDirHash computes a digest over every file below dir.
	ComputeDirHash(dir string) (string, error)
}
