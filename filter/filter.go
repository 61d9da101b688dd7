// Package filter decides which source lines must never be rewritten.
//
// A line is excluded when it contains any marker substring. Markers cover
// include directives, UI binding calls, style and layout identifiers,
// resource ids, image and source file names, and the bare "_" which also
// keeps lines that already carry a localization call from being wrapped
// twice.
package filter

import "strings"

// DefaultMarkers is the rule set used when no configuration overrides it.
var DefaultMarkers = []string{
	"BROWSER_LOG",
	"#include",
	"EXPORT_SERVICE",
	"elm_object_part_content",
	"evas_object_smart_callback",
	"elm_object_style",
	"elm_layout_file",
	".png",
	"elm_object_item_part_content",
	"IDS_",
	"bp_",
	"elm_object_signal_emit",
	".cpp",
	".edj",
	"item_style",
	"edje_object_signal_callback",
	"evas_object_del",
	"_",
}

// Filter holds an ordered set of exclusion markers.
type Filter struct {
	markers []string
}

// New returns a filter for the given markers. Empty markers are dropped,
// since they would match every line.
func New(markers ...string) *Filter {
	f := &Filter{markers: make([]string, 0, len(markers))}
	for _, m := range markers {
		if m != "" {
			f.markers = append(f.markers, m)
		}
	}
	return f
}

// Default returns a filter using DefaultMarkers.
func Default() *Filter {
	return New(DefaultMarkers...)
}

// Markers returns a copy of the active markers.
func (f *Filter) Markers() []string {
	return append([]string(nil), f.markers...)
}

// Match reports the first marker found in line.
func (f *Filter) Match(line string) (string, bool) {
	for _, m := range f.markers {
		if strings.Contains(line, m) {
			return m, true
		}
	}
	return "", false
}

// Excluded reports whether line contains any marker.
func (f *Filter) Excluded(line string) bool {
	_, ok := f.Match(line)
	return ok
}
