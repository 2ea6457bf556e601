package scouting

import (
	"fmt"
	"strings"

	"github.com/okian/dugout/internal/domain/model"
)

// SystemPrompt sets the persona for every generation request.
const SystemPrompt = "You are a veteran professional baseball scout. " +
	"Write concise, vivid scouting reports grounded only in the statistics you are given."

// BuildPrompt renders the user prompt for p. The output depends only on the
// player's fields.
func BuildPrompt(p model.Player) string {
	position := p.Position
	if position == "" {
		position = "unknown position"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a short scouting report (2-3 sentences) for %s, %s.\n", p.Name, position)
	b.WriteString("Career statistics:\n")
	fmt.Fprintf(&b, "- Games: %d\n", p.Games)
	fmt.Fprintf(&b, "- Hits: %d\n", p.Hits)
	fmt.Fprintf(&b, "- Home runs: %d\n", p.HomeRuns)
	fmt.Fprintf(&b, "- RBI: %d\n", p.RBI)
	fmt.Fprintf(&b, "- Batting average: %.3f\n", p.Average)
	fmt.Fprintf(&b, "- OPS: %.3f\n", p.OPS)
	b.WriteString("Focus on strengths, weaknesses and overall value.")
	return b.String()
}
