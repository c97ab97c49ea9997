package ports

// ImageStore persists fetched map imagery and returns where it landed.
type ImageStore interface {
	Save(name string, data []byte) (path string, err error)
}
