// Package catalog holds the node templates shown in the sidebar palette.
package catalog

import (
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"

	"github.com/bvisness/flowcanvas/app/core"
)

type Template struct {
	Kind     core.NodeKind
	Title    string
	Subtitle string
	Icon     string // short glyph drawn inside the node body
	Color    string // accent colour, "#rrggbb"
	Category string
}

// Token is the node-type token accepted by core.Editor.CreateNode.
func (t Template) Token() string {
	return t.Kind.String()
}

var templates = []Template{
	{Kind: core.KindChatMessageTrigger, Title: "When Chat Message Received", Icon: "chat", Color: "#07c160", Category: "Triggers"},
	{Kind: core.KindGmailTrigger, Title: "Gmail Trigger", Icon: "mail", Color: "#ea4335", Category: "Triggers"},
	{Kind: core.KindSwitch, Title: "Switch", Icon: "switch", Color: "#3b82f6", Category: "Flow"},
	{Kind: core.KindEditFields, Title: "Edit Fields", Icon: "pen", Color: "#8b5cf6", Category: "Data"},
	{Kind: core.KindFilter, Title: "Filter", Icon: "filter", Color: "#3b82f6", Category: "Flow"},
	{Kind: core.KindEmbedding, Title: "Embedding", Icon: "code", Color: "#f59e0b", Category: "AI"},
	{Kind: core.KindVectorStore, Title: "Vector Store", Icon: "layers", Color: "#10b981", Category: "AI"},
	{Kind: core.KindAIAgent, Title: "AI Agent", Subtitle: "Tools Agent", Icon: "robot", Color: "#ff6d5a", Category: "AI"},
	{Kind: core.KindCustomerSupportAgent, Title: "Customer Support Agent", Icon: "agent", Color: "#ff6d5a", Category: "AI"},
}

// SubOutputLabels names the suboutputs of agent nodes, left to right.
var SubOutputLabels = []string{"Chat Model", "Memory", "Tool"}

// All returns every template in palette order.
func All() []Template {
	return slices.Clone(templates)
}

func Lookup(kind core.NodeKind) (Template, bool) {
	for _, t := range templates {
		if t.Kind == kind {
			return t, true
		}
	}
	return Template{}, false
}

// Title returns the display title of a kind, falling back to its token.
func Title(kind core.NodeKind) string {
	if t, ok := Lookup(kind); ok {
		return t.Title
	}
	return kind.String()
}

var folder = cases.Fold()

// Search returns the templates matching query. Titles equal to the query come
// first, then prefix matches, then fuzzy matches by edit distance. An empty
// query returns everything.
func Search(query string) []Template {
	q := folder.String(strings.TrimSpace(query))
	if q == "" {
		return All()
	}

	keys := make([]string, len(templates))
	for i, t := range templates {
		keys[i] = folder.String(t.Title + " " + t.Token() + " " + t.Category)
	}
	ranks := fuzzy.RankFindNormalizedFold(q, keys)
	sort.Stable(ranks)

	score := func(r fuzzy.Rank) int {
		title := folder.String(templates[r.OriginalIndex].Title)
		switch {
		case title == q:
			return 0
		case strings.HasPrefix(title, q):
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return score(ranks[i]) < score(ranks[j])
	})

	res := make([]Template, len(ranks))
	for i, r := range ranks {
		res[i] = templates[r.OriginalIndex]
	}
	return res
}
