package browser

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

// FindChrome automatically locates a Chrome/Chromium executable across
// platforms. An empty return lets chromedp fall back to its own default.
func FindChrome() string {
	if path := os.Getenv("GMAPS_CHROME_PATH"); path != "" {
		if isExecutable(path) {
			log.Debug().Str("path", path).Msg("Chrome found via GMAPS_CHROME_PATH")
			return path
		}
		log.Warn().Str("path", path).Msg("GMAPS_CHROME_PATH set but not executable")
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
			"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser",
		}
		if home := os.Getenv("HOME"); home != "" {
			candidates = append(candidates,
				filepath.Join(home, "Applications/Google Chrome.app/Contents/MacOS/Google Chrome"),
			)
		}
	case "windows":
		for _, base := range []string{os.Getenv("ProgramFiles"), os.Getenv("ProgramFiles(x86)"), os.Getenv("LocalAppData")} {
			if base != "" {
				candidates = append(candidates,
					filepath.Join(base, "Google\\Chrome\\Application\\chrome.exe"),
					filepath.Join(base, "Chromium\\Application\\chrome.exe"),
					filepath.Join(base, "Microsoft\\Edge\\Application\\msedge.exe"),
				)
			}
		}
	case "linux":
		candidates = []string{
			"/usr/bin/google-chrome-stable",
			"/usr/bin/google-chrome",
			"/usr/bin/chromium-browser",
			"/usr/bin/chromium",
			"/snap/bin/chromium",
			"/usr/bin/microsoft-edge",
			"/usr/bin/brave-browser",
		}
	}

	for _, path := range candidates {
		if isExecutable(path) {
			log.Debug().Str("path", path).Str("os", runtime.GOOS).Msg("Chrome found at standard location")
			return path
		}
	}

	if path := findInPath(); path != "" {
		log.Debug().Str("path", path).Msg("Chrome found in PATH")
		return path
	}

	log.Warn().Str("os", runtime.GOOS).Msg("Chrome not found, will use chromedp default (may fail)")
	return ""
}

// isExecutable checks if a file exists and is executable
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if runtime.GOOS == "windows" {
		return !info.IsDir()
	}
	return !info.IsDir() && info.Mode()&0111 != 0
}

// findInPath searches for Chrome-like browsers in PATH
func findInPath() string {
	browsers := []string{
		"google-chrome-stable",
		"google-chrome",
		"chromium",
		"chromium-browser",
		"chrome",
		"msedge",
		"brave-browser",
	}
	for _, name := range browsers {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
