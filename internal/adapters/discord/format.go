package discord

import (
	"fmt"
	"strings"

	"github.com/Chiitoi/Aurora/internal/core/action"
	"github.com/Chiitoi/Aurora/internal/models"
)

// Embed colours
const (
	colorDefault = 0xF8F8FF
)

const noCountsText = ":pensive: No counted actions..."

var countEmoji = map[action.Kind]string{
	action.KindCuddle:   ":heart:",
	action.KindHandhold: ":handshake:",
	action.KindHug:      ":hugging:",
	action.KindKiss:     ":kissing_heart:",
}

// countsText renders pair counts one kind per line, skipping zeros.
func countsText(c action.PairCounts) string {
	if c.Empty() {
		return noCountsText
	}
	lines := make([]string, 0, len(action.PairKinds))
	for _, k := range action.PairKinds {
		n := c.Get(k)
		if n == 0 {
			continue
		}
		noun := k.Plural()
		if n == 1 {
			noun = string(k)
		}
		lines = append(lines, fmt.Sprintf("%s %d %s", countEmoji[k], n, noun))
	}
	return strings.Join(lines, "\n")
}

// actionDescription renders "*<@a> hugs you!*" or "*<@a> hugs themselves!*".
func actionDescription(kind action.Kind, actor, target models.UserID) string {
	if actor == target {
		return fmt.Sprintf("*%s %s themselves!*", actor.Mention(), kind.Plural())
	}
	return fmt.Sprintf("*%s %s you!*", actor.Mention(), kind.Phrase())
}

// actionFooter renders the running count line.
func actionFooter(kind action.Kind, self bool, count uint16) string {
	if count == 1 {
		if self {
			return fmt.Sprintf("That's your first %s from yourself!", kind)
		}
		return fmt.Sprintf("That's their first %s from you!", kind)
	}
	return fmt.Sprintf("That's %d %s now!", count, kind.Plural())
}

func proposalText(proposee models.UserID, proposerName string) string {
	return fmt.Sprintf("Hey %s! It looks like **%s** wants to get it on... 😏 The choice is yours!", proposee.Mention(), proposerName)
}

func shipTitle(name string) string {
	return fmt.Sprintf("The \"%s\" ship", name)
}

func shipDescription(one, two models.UserID) string {
	return fmt.Sprintf("%s loves, and is loved by, %s", one.Mention(), two.Mention())
}

// durationText is the humanized age, with a placeholder for ships under a second old.
func durationText(humanized string) string {
	if humanized == "" {
		return "Just set sail!"
	}
	return humanized
}
