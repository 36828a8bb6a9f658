package domain

type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
)

// DefaultCharLimits are the per-platform caption budgets enforced when
// persisting content. Overridable at construction time so tighter
// budgets (e.g. accounts without long-post access) can be configured.
var DefaultCharLimits = map[Platform]int{
	PlatformTwitter:   280,
	PlatformInstagram: 2200,
	PlatformTikTok:    150,
}

func (p Platform) Valid() bool {
	_, ok := DefaultCharLimits[p]
	return ok
}
