package category

import (
	"net/url"
	"path"
	"strings"
)

// Category is the classification bucket for a downloadable asset.
type Category int

const (
	Audio Category = iota
	Video
	Image
)

type categoryInfo struct {
	name       string
	dir        string
	extensions []string
}

var categories = map[Category]categoryInfo{
	Audio: {
		name:       "audio",
		dir:        "audios",
		extensions: []string{"mp3", "wav", "ogg", "m4a", "aac"},
	},
	Video: {
		name:       "video",
		dir:        "videos",
		extensions: []string{"mp4", "avi", "mov", "wmv", "flv", "webm", "mkv"},
	},
	Image: {
		name:       "image",
		dir:        "images",
		extensions: []string{"png", "jpg", "jpeg", "gif", "bmp", "webp", "svg"},
	},
}

// byExtension is built once from the categories table.
var byExtension = func() map[string]Category {
	m := make(map[string]Category)
	for c, info := range categories {
		for _, ext := range info.extensions {
			m[ext] = c
		}
	}
	return m
}()

func (c Category) String() string {
	return categories[c].name
}

// Dir returns the destination directory name for the category.
func (c Category) Dir() string {
	return categories[c].dir
}

// All returns every category in a stable order.
func All() []Category {
	return []Category{Audio, Video, Image}
}

// ExtensionOf returns the lowercase extension of the URL path without the
// leading dot, ignoring query strings and fragments. Empty when the path has
// no extension or the URL does not parse.
func ExtensionOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	ext := path.Ext(u.Path)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Classify maps a URL to its category by file extension. ok is false for any
// extension outside the table, including URLs with no extension at all.
func Classify(rawURL string) (Category, bool) {
	c, ok := byExtension[ExtensionOf(rawURL)]
	return c, ok
}

// FilenameOf returns the last path segment of the URL with query string and
// fragment stripped. May be empty for URLs ending in a slash.
func FilenameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return ""
	}
	return name
}
