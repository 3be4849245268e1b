package interpreter

import (
	"regexp"
	"sort"

	"wrapstudio/internal/domain"
)

// rule maps a pattern to a canonical token. Tables are scanned in order and
// the first match wins, so longer phrases sit above their substrings.
type rule struct {
	pattern *regexp.Regexp
	token   string
}

func r(expr, token string) rule {
	return rule{pattern: regexp.MustCompile(`(?i)\b(?:` + expr + `)\b`), token: token}
}

var zoneRules = []rule{
	r(`chrome[\s-]*delete(?:s)?`, "chrome_delete"),
	r(`window\s+trims?`, "window_trim"),
	r(`door\s+handles?`, "door_handles"),
	r(`mirror\s+caps?`, "mirror_caps"),
	r(`hood\s+graphics?`, "hood_graphic"),
	r(`roof\s+graphics?`, "roof_graphic"),
	r(`(?:top|upper)(?:\s+half)?`, "top"),
	r(`(?:bottom|lower)(?:\s+half)?`, "bottom"),
	r(`full(?:\s+body)?|entire(?:\s+(?:car|vehicle|body))?|whole\s+(?:car|vehicle)|all\s+over`, "full"),
	r(`body`, "body"),
	r(`hood|bonnet`, "hood"),
	r(`roof`, "roof"),
	r(`(?:brake\s+)?calipers?`, "calipers"),
	r(`mirrors?`, "mirrors"),
	r(`handles?`, "handles"),
	r(`pillars?`, "pillars"),
	r(`grilles?`, "grille"),
	r(`badges?|emblems?`, "badges"),
	r(`trim`, "trim"),
	r(`doors?`, "door"),
	r(`fenders?`, "fender"),
	r(`rear\s+bumper`, "bumper_rear"),
	r(`(?:front\s+)?bumpers?`, "bumper_front"),
	r(`quarters?(?:\s+panels?)?`, "quarter"),
	r(`spoiler`, "spoiler"),
}

var finishRules = []rule{
	r(`chrome`, string(domain.FinishChrome)),
	r(`brushed(?:\s+metal)?`, string(domain.FinishBrushed)),
	r(`carbon(?:\s+fib(?:er|re))?`, string(domain.FinishCarbon)),
	r(`metallic`, string(domain.FinishMetallic)),
	r(`sparkle|glitter`, string(domain.FinishSparkle)),
	r(`satin`, string(domain.FinishSatin)),
	r(`matte?|flat`, string(domain.FinishMatte)),
	r(`gloss(?:y)?`, string(domain.FinishGloss)),
}

var finishProfileRules = []rule{
	r(`colou?r[\s-]*(?:flip|shift)|flip|chameleon|iridescent|psychedelic`, domain.FinishProfileColorFlip),
	r(`pearl(?:escent)?`, domain.FinishProfilePearl),
	r(`metallic|metal\s+flake`, domain.FinishProfileMetallic),
}

var manufacturerRules = []rule{
	r(`3m`, "3M"),
	r(`avery(?:\s+dennison)?`, "Avery Dennison"),
	r(`inozetek`, "Inozetek"),
	r(`kpmf`, "KPMF"),
	r(`hexis`, "Hexis"),
	r(`ora(?:cal|fol)`, "Orafol"),
	r(`teckwrap`, "TeckWrap"),
	r(`vvivid`, "VViViD"),
}

var colorRules = []rule{
	r(`nardo\s+gr[ae]y`, "nardo gray"),
	r(`midnight\s+purple`, "midnight purple"),
	r(`british\s+racing\s+green`, "british racing green"),
	r(`rose\s+gold`, "rose gold"),
	r(`baby\s+blue`, "baby blue"),
	r(`hot\s+pink`, "hot pink"),
	r(`gunmetal`, "gunmetal"),
	r(`champagne`, "champagne"),
	r(`black`, "black"),
	r(`white`, "white"),
	r(`red`, "red"),
	r(`blue`, "blue"),
	r(`green`, "green"),
	r(`yellow`, "yellow"),
	r(`orange`, "orange"),
	r(`purple|violet`, "purple"),
	r(`pink`, "pink"),
	r(`gold`, "gold"),
	r(`silver`, "silver"),
	r(`gr[ae]y`, "gray"),
	r(`bronze`, "bronze"),
	r(`copper`, "copper"),
	r(`teal`, "teal"),
	r(`brown`, "brown"),
	r(`tan|beige`, "tan"),
	r(`burgundy|maroon`, "burgundy"),
	r(`cyan`, "cyan"),
	r(`lime`, "lime"),
}

// graphicRules detect that a clause mentions a cut vinyl graphic. Width and
// layer count come from classifyGraphic, which reads the whole phrase.
var graphicRules = []rule{
	r(`pin[\s-]?stripes?`, "pinstripe"),
	r(`accent\s+lines?`, "accent line"),
	r(`thin(?:\s+\w+)?\s+(?:stripes?|lines?)`, "thin stripe"),
	r(`triple(?:\s+racing)?\s+stripes?`, "triple stripe"),
	r(`dual(?:\s+racing)?\s+stripes?`, "dual stripe"),
	r(`racing\s+stripes?`, "racing stripe"),
	r(`rally\s+stripes?`, "rally stripe"),
	r(`stripes?`, "stripe"),
	r(`accents?|graphics?|decals?`, "accent"),
}

type widthRule struct {
	rule
	width domain.GraphicWidth
}

var widthRules = []widthRule{
	{r(`pin[\s-]?stripes?|thin|accent\s+lines?`, "pinstripe"), domain.GraphicWidthPinstripe},
	{r(`racing|rally|dual|triple`, "racing"), domain.GraphicWidthRacing},
}

var (
	tripleLayer = regexp.MustCompile(`(?i)\btriple\b`)
	dualLayer   = regexp.MustCompile(`(?i)\bdual\b`)
)

// classifyGraphic returns the width class and layer count for a graphic phrase.
func classifyGraphic(s string) (domain.GraphicWidth, int) {
	for _, wr := range widthRules {
		if !wr.pattern.MatchString(s) {
			continue
		}
		if wr.width != domain.GraphicWidthRacing {
			return wr.width, 1
		}
		switch {
		case tripleLayer.MatchString(s):
			return wr.width, 3
		case dualLayer.MatchString(s):
			return wr.width, 2
		default:
			return wr.width, 1
		}
	}
	return domain.GraphicWidthStripe, 1
}

var placementRules = []rule{
	r(`(?:along|on)\s+the\s+beltline|beltline`, "beltline"),
	r(`(?:down|along)\s+the\s+(?:center|centre|middle)|center(?:line)?`, "center"),
	r(`(?:along|on)\s+the\s+(?:rockers?|side\s+skirts?)|rockers?`, "rocker"),
	r(`(?:along|on)\s+the\s+sides?|sides?`, "side"),
	r(`(?:on|over)\s+the\s+hood`, "hood"),
	r(`(?:on|over)\s+the\s+roof`, "roof"),
}

// fillerWords are dropped when building a pass-through zone name.
var fillerWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "in": {}, "with": {}, "and": {}, "of": {},
	"half": {}, "wrap": {}, "wrapped": {}, "paint": {}, "film": {}, "vinyl": {},
	"make": {}, "do": {}, "to": {}, "on": {}, "it": {}, "color": {}, "colour": {},
	"finish": {}, "please": {}, "all": {}, "set": {}, "change": {},
}

type span struct {
	start, end int
	token      string
}

// extract finds non-overlapping matches. Earlier rules claim their spans
// first; the tokens come back in text order and rest has the claimed spans
// blanked so later passes cannot re-match them.
func extract(s string, rules []rule) ([]string, string) {
	var spans []span
	for _, rl := range rules {
		for _, loc := range rl.pattern.FindAllStringIndex(s, -1) {
			if overlaps(spans, loc[0], loc[1]) {
				continue
			}
			spans = append(spans, span{start: loc[0], end: loc[1], token: rl.token})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	rest := []byte(s)
	seen := map[string]struct{}{}
	var tokens []string
	for _, sp := range spans {
		for i := sp.start; i < sp.end; i++ {
			rest[i] = ' '
		}
		if _, ok := seen[sp.token]; ok {
			continue
		}
		seen[sp.token] = struct{}{}
		tokens = append(tokens, sp.token)
	}
	return tokens, string(rest)
}

func overlaps(spans []span, start, end int) bool {
	for _, sp := range spans {
		if start < sp.end && sp.start < end {
			return true
		}
	}
	return false
}

func firstToken(s string, rules []rule) (string, bool) {
	tokens, _ := extract(s, rules)
	if len(tokens) == 0 {
		return "", false
	}
	return tokens[0], true
}
