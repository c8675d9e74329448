// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package deck loads item sets from files and provides the built-in sample.
package deck

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-rank/csvio"
	"github.com/danielhkuo/quickly-rank/ranking"
)

// file is the on-disk layout of YAML and TOML decks.
//
//	items:
//	  - id: 1
//	    title: Mountain Log Cabin
type file struct {
	Items []entry `yaml:"items" toml:"items"`
}

type entry struct {
	ID          any    `yaml:"id" toml:"id"`
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
	ImageURL    string `yaml:"imageUrl" toml:"imageUrl"`
}

// Load reads a deck from path. The format follows the extension: .csv,
// .yaml/.yml or .toml.
func Load(ctx context.Context, path string) (csvio.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return csvio.ImportResult{}, &csvio.ReadError{Err: err}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return csvio.Import(ctx, bytes.NewReader(data))
	case ".yaml", ".yml":
		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return csvio.ImportResult{}, &csvio.ImportFormatError{Msg: fmt.Sprintf("%s: %v", path, err)}
		}
		return f.result(path)
	case ".toml":
		var f file
		if _, err := toml.Decode(string(data), &f); err != nil {
			return csvio.ImportResult{}, &csvio.ImportFormatError{Msg: fmt.Sprintf("%s: %v", path, err)}
		}
		return f.result(path)
	default:
		return csvio.ImportResult{}, fmt.Errorf("%s: unsupported deck format %q (expected .csv, .yaml or .toml)", path, ext)
	}
}

func (f file) result(path string) (csvio.ImportResult, error) {
	items := make([]ranking.Item, 0, len(f.Items))
	seen := make(map[ranking.ItemID]int, len(f.Items))
	for i, e := range f.Items {
		id, err := toItemID(e.ID)
		if err != nil {
			return csvio.ImportResult{}, &csvio.ImportFormatError{Msg: fmt.Sprintf("%s: item %d: %v", path, i+1, err)}
		}
		if first, dup := seen[id]; dup {
			return csvio.ImportResult{}, &csvio.ImportFormatError{
				Msg: fmt.Sprintf("%s: duplicate id %q (items %d and %d)", path, id.String(), first, i+1),
			}
		}
		seen[id] = i + 1
		items = append(items, ranking.Item{
			ID:          id,
			Title:       e.Title,
			Description: e.Description,
			ImageURL:    e.ImageURL,
		})
	}
	return csvio.ImportResult{Items: items, Insufficient: len(items) < 2}, nil
}

func toItemID(v any) (ranking.ItemID, error) {
	switch id := v.(type) {
	case int:
		return ranking.IntID(int64(id)), nil
	case int64:
		return ranking.IntID(id), nil
	case uint64:
		if id > math.MaxInt64 {
			return ranking.ItemID{}, fmt.Errorf("id %d is out of range", id)
		}
		return ranking.IntID(int64(id)), nil
	case string:
		return ranking.ParseItemID(id), nil
	case nil:
		return ranking.ItemID{}, fmt.Errorf("missing id")
	default:
		return ranking.ItemID{}, fmt.Errorf("id must be an integer or string, got %T", v)
	}
}
