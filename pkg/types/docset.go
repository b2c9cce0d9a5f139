package types

import "sort"

// DocumentSet is the result of discovering one documentation root.
type DocumentSet struct {
	Root string

	// Primary holds every file ending in .txt, in discovery order.
	Primary []string

	// Translated groups files by the two-letter language code taken from
	// their suffix, preserving discovery order within each group.
	Translated map[string][]string
}

// Empty reports whether the set contains no documentation files at all.
func (d *DocumentSet) Empty() bool {
	return len(d.Primary) == 0 && len(d.Translated) == 0
}

// Languages returns the translated language codes in sorted order, for
// deterministic iteration.
func (d *DocumentSet) Languages() []string {
	langs := make([]string, 0, len(d.Translated))
	for lang := range d.Translated {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
