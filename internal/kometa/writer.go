package kometa

import (
	"fmt"
	"os"

	"nssk/internal/services"
)

// WriteFile overwrites path with the serialized document. Suppressed
// documents leave path untouched and report written=false.
func WriteFile(path string, doc Document) (bool, error) {
	if doc.IsSuppressed() {
		return false, nil
	}
	data, err := doc.Bytes()
	if err != nil {
		return false, services.Wrap(services.ErrOutput, "kometa", "render", path, err)
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return false, services.Wrap(services.ErrOutput, "kometa", "open", path, err)
	}
	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		return false, services.Wrap(services.ErrOutput, "kometa", "write", path, err)
	}
	if err := out.Close(); err != nil {
		return false, services.Wrap(services.ErrOutput, "kometa", "close", path, err)
	}
	return true, nil
}

// String renders the document for display. Errors are folded into the text.
func (d Document) String() string {
	if d.IsSuppressed() {
		return ""
	}
	data, err := d.Bytes()
	if err != nil {
		return fmt.Sprintf("<render error: %v>", err)
	}
	return string(data)
}
