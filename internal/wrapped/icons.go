package wrapped

// Icon is a symbolic identifier for the visual attached to a nickname or
// badge. The presentation layer owns the mapping from these values to
// actual glyphs; the core never emits library-specific icon names.
type Icon int

const (
	IconCompass Icon = iota
	IconAward
	IconBolt
	IconBook
	IconBranch
	IconBug
	IconCalendar
	IconCheck
	IconCode
	IconCog
	IconCrown
	IconEye
	IconFire
	IconGlobe
	IconMoon
	IconPencil
	IconRobot
	IconRocket
	IconSearch
	IconStar
	IconSun
	IconTrash
	IconTrophy
)

var iconNames = map[Icon]string{
	IconCompass:  "compass",
	IconAward:    "award",
	IconBolt:     "bolt",
	IconBook:     "book",
	IconBranch:   "branch",
	IconBug:      "bug",
	IconCalendar: "calendar",
	IconCheck:    "check",
	IconCode:     "code",
	IconCog:      "cog",
	IconCrown:    "crown",
	IconEye:      "eye",
	IconFire:     "fire",
	IconGlobe:    "globe",
	IconMoon:     "moon",
	IconPencil:   "pencil",
	IconRobot:    "robot",
	IconRocket:   "rocket",
	IconSearch:   "search",
	IconStar:     "star",
	IconSun:      "sun",
	IconTrash:    "trash",
	IconTrophy:   "trophy",
}

func (i Icon) String() string {
	if name, ok := iconNames[i]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the icon by name, so JSON output carries "moon"
// instead of an opaque ordinal.
func (i Icon) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
