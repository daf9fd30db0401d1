package store

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/hyp3rd/ewrap"

	"github.com/liveprogress/expectancy/internal/sentinel"
	"github.com/liveprogress/expectancy/pkg/types"
)

// readTable loads and decodes the table stored at path.
func readTable(path string) (types.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ewrap.Wrapf(sentinel.ErrFilesystem, "read %s: %v", path, err)
	}
	return decodeTable(path, data)
}

func decodeTable(path string, data []byte) (types.Table, error) {
	var t types.Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, ewrap.Wrapf(sentinel.ErrDeserialization, "decode %s: %v", path, err)
	}
	if t == nil {
		// A literal "null" decodes without error.
		return nil, ewrap.Wrapf(sentinel.ErrDeserialization, "decode %s: not a JSON object", path)
	}
	return t, nil
}

func encodeTable(t types.Table) ([]byte, error) {
	return json.Marshal(t)
}
