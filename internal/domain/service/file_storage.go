package service

// Folders of the on-disk media layout.
const (
	FolderSlides   = "slides"
	FolderImages   = "images"
	FolderReceipts = "receipts"
)

// FileStorage persists uploaded slide files and images. Save returns a
// collision-free reference (a filesystem path) built from a random identifier
// and the sanitized original name.
type FileStorage interface {
	Save(folder, originalName string, data []byte) (string, error)
	Read(ref string) ([]byte, error)
	Delete(ref string) error
}
