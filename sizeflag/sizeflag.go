// Package sizeflag registers the size-related flags shared by the
// encore-sdcard-setup commands and parses human-readable size arguments.
package sizeflag

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/steven676/encore-sdcard-setup/deviceconfig"
)

var (
	size = os.Getenv("SDCARD_SETUP_SIZE")

	eraseBlock = func() string {
		def := os.Getenv("SDCARD_SETUP_ERASE_BLOCK_SIZE")
		if def == "" {
			def = "4m"
		}
		return def
	}()

	clusterSize string

	clusterAlign bool

	media string
)

func RegisterPflags(fs *pflag.FlagSet) {
	fs.StringVar(&size,
		"size",
		size,
		`volume size in bytes (k/m/g suffixes allowed); overrides probing the device`)

	fs.StringVar(&eraseBlock,
		"erase-block-size",
		eraseBlock,
		`erase block size of the medium in bytes (k/m/g suffixes allowed)`)

	fs.StringVar(&clusterSize,
		"cluster-size",
		clusterSize,
		`cluster size in bytes; overrides picking the largest workable size`)

	fs.BoolVar(&clusterAlign,
		"cluster-align",
		true,
		`pad the reserved area and FATs to whole clusters`)

	fs.StringVarP(&media,
		"media",
		"m",
		media,
		fmt.Sprintf("media preset for the erase block size, one of %s",
			strings.Join(deviceconfig.Slugs(), ", ")))
}

// ParseSize parses a size argument: a non-negative integer with an
// optional k, m or g suffix (KiB, MiB, GiB; case-insensitive).
func ParseSize(s string) (int64, error) {
	mult := int64(1)
	num := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasSuffix(num, "k"):
		mult = 1024
		num = strings.TrimSuffix(num, "k")
	case strings.HasSuffix(num, "m"):
		mult = 1024 * 1024
		num = strings.TrimSuffix(num, "m")
	case strings.HasSuffix(num, "g"):
		mult = 1024 * 1024 * 1024
		num = strings.TrimSuffix(num, "g")
	}
	v, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %v", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid size %q: must not be negative", s)
	}
	return v * mult, nil
}

// Size returns the --size flag in bytes, or 0 if unset.
func Size() (int64, error) {
	if size == "" {
		return 0, nil
	}
	return ParseSize(size)
}

// EraseBlockSize returns the --erase-block-size flag in bytes. If --media
// names a preset, the preset wins.
func EraseBlockSize() (int64, error) {
	if media != "" {
		cfg, ok := deviceconfig.GetMediaConfigBySlug(media)
		if !ok {
			return 0, fmt.Errorf("unknown media %q, known: %s",
				media, strings.Join(deviceconfig.Slugs(), ", "))
		}
		return cfg.EraseBlockSize, nil
	}
	return ParseSize(eraseBlock)
}

// ClusterSize returns the --cluster-size flag in bytes, or 0 if unset.
func ClusterSize() (int64, error) {
	if clusterSize == "" {
		return 0, nil
	}
	return ParseSize(clusterSize)
}

func ClusterAlign() bool { return clusterAlign }

func Media() string { return media }

func SetMedia(m string) { media = m }

func SetEraseBlockSize(e string) { eraseBlock = e }
