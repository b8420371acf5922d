package intent

import (
	"strings"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

// audioPhrases maps device-switch phrases to routes. Matching is by
// substring of the lowercased utterance, so surrounding words never
// block a match. Categories are checked in order; first hit wins.
var audioPhrases = []struct {
	route   domain.AudioRoute
	phrases []string
}{
	{domain.RoutePairedDevice, []string{
		"use earbuds", "use earphones", "use headset",
		"usa auricolari", "usa le cuffie", "usa cuffie",
	}},
	{domain.RoutePhoneSpeaker, []string{
		"use phone speaker", "use speaker",
		"usa altoparlante", "usa lo speaker",
	}},
	{domain.RouteGlasses, []string{
		"use glasses",
		"usa occhiali", "usa gli occhiali",
	}},
}

// AudioRouteOverride detects a device-switch command in the utterance.
// Returns the requested route and true, or false when the utterance
// carries no override.
func AudioRouteOverride(text string) (domain.AudioRoute, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return "", false
	}

	for _, category := range audioPhrases {
		for _, phrase := range category.phrases {
			if strings.Contains(t, phrase) {
				return category.route, true
			}
		}
	}

	return "", false
}
