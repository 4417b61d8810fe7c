package version

import (
	"runtime"

	"github.com/pscheid92/reviewpulse/internal/sentiment"
)

// Build information, injected via ldflags at build time
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info holds complete build information
type Info struct {
	Version      string `json:"version"`
	Commit       string `json:"commit"`
	BuildTime    string `json:"build_time"`
	GoVersion    string `json:"go_version"`
	LexiconWords int    `json:"lexicon_words"`
	Phrases      int    `json:"phrases"`
}

// Get returns the current build information, including the size of the scoring tables
// so clients can tell which lexicon a deployment runs.
func Get() Info {
	return Info{
		Version:      Version,
		Commit:       Commit,
		BuildTime:    BuildTime,
		GoVersion:    runtime.Version(),
		LexiconWords: sentiment.LexiconSize(),
		Phrases:      len(sentiment.Phrases()),
	}
}
