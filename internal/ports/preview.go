package ports

// Previewer hands an asset file to the platform's default viewer or player
type Previewer interface {
	Preview(path string) error
}
