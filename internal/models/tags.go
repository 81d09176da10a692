package models

// TagVocabulary is a fixed, ordered list of tag names. Numeric ids are
// positional and 1-based, so the vocabulary order is part of the contract
// with the backend.
type TagVocabulary struct {
	names []string
}

// NewTagVocabulary creates a vocabulary from an ordered name list.
func NewTagVocabulary(names ...string) *TagVocabulary {
	return &TagVocabulary{names: names}
}

// DefaultTags is the vocabulary exposed to the UI.
func DefaultTags() *TagVocabulary {
	return NewTagVocabulary("得意曲", "練習中", "十八番", "盛り上げ曲", "バラード", "デュエット")
}

// Names returns the vocabulary in display order.
func (v *TagVocabulary) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Lookup resolves a display name to its tag. The second return is false
// for names outside the vocabulary; such names have no valid id.
func (v *TagVocabulary) Lookup(name string) (Tag, bool) {
	for i, n := range v.names {
		if n == name {
			return Tag{ID: i + 1, Name: n}, true
		}
	}
	return Tag{}, false
}

// Resolve converts display names into tags, dropping names the vocabulary
// does not define.
func (v *TagVocabulary) Resolve(names []string) []Tag {
	var tags []Tag
	for _, name := range names {
		if t, ok := v.Lookup(name); ok {
			tags = append(tags, t)
		}
	}
	return tags
}

// Categories and Machines are the free-form classification suggestion lists.
// Songs may carry values outside these lists.
var (
	Categories = []string{"J-POP", "ロック", "アニメ", "ボカロ", "演歌", "洋楽"}
	Machines   = []string{"DAM", "JOYSOUND"}
)
