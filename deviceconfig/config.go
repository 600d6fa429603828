// Package deviceconfig contains media-specific formatting configuration:
// erase-block sizes of known flash media, for use when the kernel does not
// expose the figure.
package deviceconfig

// MediaConfig describes flash media whose erase-block geometry is known
// ahead of time.
type MediaConfig struct {
	// EraseBlockSize in bytes. Power of two, multiple of 512.
	EraseBlockSize int64
	// Slug is a unique, short string used by fat32align to refer to this
	// media.
	Slug string
}

const mib = 1024 * 1024

var (
	// MediaConfigs contains a mapping from media model to formatting config.
	MediaConfigs = map[string]MediaConfig{
		// Nook Color (encore) internal eMMC
		"encore internal eMMC": {
			EraseBlockSize: 2 * mib,
			Slug:           "encore-emmc",
		},
		// SD cards up to 2 GB
		"SD card": {
			EraseBlockSize: 1 * mib,
			Slug:           "sd",
		},
		// SDHC cards, 4-32 GB; 4 MiB is the conservative figure for
		// current cards
		"SDHC card": {
			EraseBlockSize: 4 * mib,
			Slug:           "sdhc",
		},
		// SDXC cards, 64 GB and up
		"SDXC card": {
			EraseBlockSize: 8 * mib,
			Slug:           "sdxc",
		},
	}
)

func GetMediaConfigBySlug(slug string) (MediaConfig, bool) {
	for _, cfg := range MediaConfigs {
		if cfg.Slug == slug {
			return cfg, true
		}
	}

	return MediaConfig{}, false
}

// Slugs returns the known media slugs for use in flag descriptions.
func Slugs() []string {
	slugs := make([]string, 0, len(MediaConfigs))
	for _, cfg := range MediaConfigs {
		slugs = append(slugs, cfg.Slug)
	}
	return slugs
}
