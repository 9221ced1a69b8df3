package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mmcdole/rijks/internal/domain"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// artworkRecord is the export shape of an artwork
type artworkRecord struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Maker    string `json:"maker" yaml:"maker"`
	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Width    int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height   int    `json:"height,omitempty" yaml:"height,omitempty"`
	Favorite bool   `json:"favorite" yaml:"favorite"`
}

func toRecord(a domain.Artwork, favorite bool) artworkRecord {
	r := artworkRecord{
		ID:       a.ID,
		Title:    a.Title,
		Maker:    a.DisplayMaker(),
		Favorite: favorite,
	}
	if a.HasImage() {
		r.ImageURL = a.Image.URL
		r.Width = a.Image.Width
		r.Height = a.Image.Height
	}
	return r
}

// writeStructured encodes v as JSON or YAML
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func validFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want text, json or yaml)", format)
	}
}
