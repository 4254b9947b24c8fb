package catalog

// Entry describes one animated card template. The catalog is static
// configuration loaded at process start; the storefront enumerates it and
// checkout validates card keys against it.
type Entry struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Occasion    string `json:"occasion"`
	Description string `json:"description"`
	VideoFile   string `json:"video_file"`
}

var entries = []Entry{
	{
		Key:         "starlit-christmas-tree",
		Title:       "Starlit Christmas Tree",
		Occasion:    "Christmas",
		Description: "A calm animated Christmas card that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "christmas_tree.mp4",
	},
	{
		Key:         "christmas-night-moonlight",
		Title:       "Christmas Night Moonlight",
		Occasion:    "Christmas",
		Description: "A serene animated Christmas card that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "moonlight.mp4",
	},
	{
		Key:         "snowy-cottage-evening",
		Title:       "Snowy Cottage Evening",
		Occasion:    "Christmas",
		Description: "A peaceful animated Christmas card that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "Christmas2.mp4",
	},
	{
		Key:         "winter-forest-tree",
		Title:       "Winter Forest Tree",
		Occasion:    "Christmas",
		Description: "A quiet animated Christmas card that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "XmasTree.mp4",
	},
	{
		Key:         "golden-christmas-tree-rise",
		Title:       "Golden Christmas Tree Rise",
		Occasion:    "Christmas",
		Description: "A radiant animated Christmas card that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "Christmas1.mp4",
	},
	{
		Key:         "santas-moonlit-ride",
		Title:       "Santa's Moonlit Ride",
		Occasion:    "Christmas",
		Description: "A nostalgic animated Christmas card that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "Santa.mp4",
	},
	{
		Key:         "elegant-floral-birthday",
		Title:       "Elegant Floral Birthday",
		Occasion:    "Birthday",
		Description: "An elegant animated birthday card that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "Birthday2.mp4",
	},
	{
		Key:         "birthday-rose-bloom",
		Title:       "Birthday Rose Bloom",
		Occasion:    "Birthday",
		Description: "A blooming animated birthday card that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "rose.mp4",
	},
	{
		Key:         "thank-you-florals",
		Title:       "Thank You Florals",
		Occasion:    "Thank You",
		Description: "A graceful animated thank-you card that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "Thankyou2.mp4",
	},
	{
		Key:         "golden-heart-glow",
		Title:       "Golden Heart Glow",
		Occasion:    "Love",
		Description: "A glowing animated love card that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "heart2.mp4",
	},
	{
		Key:         "heart-of-light",
		Title:       "Heart of Light",
		Occasion:    "Love",
		Description: "A luminous animated love card that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "heart1.mp4",
	},
	{
		Key:         "warm-wishes",
		Title:       "Warm Wishes",
		Occasion:    "Any Occasion",
		Description: "A warm animated card for any occasion that plants a real tree. A thoughtful digital gift delivered instantly.",
		VideoFile:   "warm_wishes.mp4",
	},
}

var byKey = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Key] = e
	}
	return m
}()

// Lookup returns the catalog entry for a card key.
func Lookup(key string) (Entry, bool) {
	e, ok := byKey[key]
	return e, ok
}

// All returns the catalog in display order.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
