package model

import (
	"github.com/unitedstates/uscode/pkg/group"
	"github.com/unitedstates/uscode/pkg/locator"
)

// File is a grouped locator file with a typed view of each document.
type File struct {
	Documents []*group.Document
	Models    []Model
}

// Load groups lines and types the resulting documents. Documents of unknown
// kind stay in Documents but get no model.
func Load(lines []*locator.Line, boundaries group.Boundaries) *File {
	f := &File{Documents: group.Group(lines, boundaries)}
	for _, doc := range f.Documents {
		if m := Instance(doc); m != nil {
			f.Models = append(f.Models, m)
		}
	}
	return f
}

// Title returns the file's title header, if present.
func (f *File) Title() (*Title, bool) {
	for _, m := range f.Models {
		if t, ok := m.(*Title); ok {
			return t, true
		}
	}
	return nil, false
}

// Chapters returns the chapter documents in order.
func (f *File) Chapters() []*Chapter {
	var chapters []*Chapter
	for _, m := range f.Models {
		if c, ok := m.(*Chapter); ok {
			chapters = append(chapters, c)
		}
	}
	return chapters
}

// Sections returns the section documents in order.
func (f *File) Sections() []*Section {
	var sections []*Section
	for _, m := range f.Models {
		if s, ok := m.(*Section); ok {
			sections = append(sections, s)
		}
	}
	return sections
}

// Section returns the first section numbered number.
func (f *File) Section(number string) (*Section, bool) {
	for _, s := range f.Sections() {
		if n, err := s.Number(); err == nil && n == number {
			return s, true
		}
	}
	return nil, false
}
