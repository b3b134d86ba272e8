package renderdir

import (
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"amber", "bright", "burnished", "clear", "cloudy", "copper", "crisp", "dappled",
		"diffuse", "dim", "faint", "frosted", "gilded", "glassy", "glossy", "golden",
		"hazy", "hollow", "ivory", "lucid", "matte", "mirrored", "misty", "opal",
		"pale", "pearly", "polished", "prismatic", "radiant", "rippled", "rosy", "shaded",
		"silver", "smoky", "soft", "specular", "still", "tinted", "twilight", "vivid",
	}

	nouns = []string{
		"aurora", "beam", "caustic", "corona", "crystal", "dawn", "dusk", "echo",
		"facet", "flare", "glare", "gleam", "glint", "glow", "halo", "horizon",
		"lantern", "lens", "marble", "meridian", "mirror", "moon", "nebula", "orb",
		"pane", "photon", "prism", "pupil", "quartz", "ray", "reflection", "sheen",
		"shimmer", "spectrum", "sphere", "sun", "umbra", "vertex", "window", "zenith",
	}
)

// GenerateRenderName creates a memorable identifier in the format "adjective-noun"
func GenerateRenderName() string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return adjectives[r.Intn(len(adjectives))] + "-" + nouns[r.Intn(len(nouns))]
}

// GenerateRenderID combines the memorable name with a timestamp
func GenerateRenderID() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return GenerateRenderName() + "-" + timestamp
}
