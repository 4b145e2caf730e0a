package segment

// defaultBosses is the built-in boss registry. Config can extend it; names
// not present here never open an encounter.
var defaultBosses = []string{
	"Lucifron",
	"Magmadar",
	"Gehennas",
	"Garr",
	"Baron Geddon",
	"Shazzrah",
	"Sulfuron Harbinger",
	"Golemagg the Incinerator",
	"Majordomo Executus",
	"Ragnaros",
	"Onyxia",
	"Razorgore the Untamed",
	"Vaelastrasz the Corrupt",
	"Broodlord Lashlayer",
	"Firemaw",
	"Ebonroc",
	"Flamegor",
	"Chromaggus",
	"Nefarian",
}
