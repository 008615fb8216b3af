package ports

// PathHasher derives the disk cache namespace for a solution or project path.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type PathHasher interface {
	// Hash returns a stable, filesystem-safe digest of path.
	Hash(path string) string
}
