package formatter

import (
	"encoding/json"
	"io"
)

// WriteJSON serializes a board response as indented JSON
func WriteJSON(w io.Writer, res *BoardResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
