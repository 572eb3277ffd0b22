package excel

// ReaderConfig holds configuration for the presence data source
type ReaderConfig struct {
	// Comma is the CSV field delimiter
	Comma rune `json:"comma"`
	// Sheet is the XLSX sheet holding presence rows; empty means the first sheet
	Sheet string `json:"sheet"`
}

// DefaultReaderConfig returns sensible defaults for presence files
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Comma: ',',
	}
}
