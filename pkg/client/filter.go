package client

// FilterOptions narrows an already-fetched list without further network
// calls. OnlyTop100 and OnlyCommunity are mutually exclusive from the UI's
// perspective, but both being set is tolerated: both predicates apply and
// the result is simply the (usually empty) intersection.
type FilterOptions struct {
	OnlyTop100    bool
	OnlyCommunity bool
	Category      string // "" or "all" means no category filter
}

// FilterChannels returns the channels matching opts. The input is never
// mutated, the result is a fresh slice, and the relative order of the input
// is preserved (callers rely on the upstream sort by subscribers).
func FilterChannels(channels []Channel, opts FilterOptions) []Channel {
	out := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		if opts.OnlyTop100 && !ch.IsTop100 {
			continue
		}
		if opts.OnlyCommunity && ch.Source != "community" {
			continue
		}
		if opts.Category != "" && opts.Category != "all" {
			if ch.ThemePrincipal == nil || *ch.ThemePrincipal != opts.Category {
				continue
			}
		}
		out = append(out, ch)
	}
	return out
}
