// Package kill holds the outcome table for the kill command.
// This is part of the Functional Core - no I/O, only pure functions.
package kill

import "fmt"

// Result says who, if anyone, scores the kill.
type Result int

const (
	// ResultMiss scores nothing.
	ResultMiss Result = iota
	// ResultWin scores a kill for the attacker.
	ResultWin
	// ResultLoss scores a kill for the target.
	ResultLoss
)

// Embed colours per result.
const (
	ColorMiss = 0xE9CA00
	ColorWin  = 0x2FE900
	ColorLoss = 0xDE4343
)

// Outcome is one entry of the outcome table.
type Outcome struct {
	Result Result
	// Template takes the target name.
	Template string
}

// Outcomes is the table Pick draws from.
var Outcomes = []Outcome{
	{ResultMiss, ":axe: *You drop your axe mid-swing, **%s** looks at you in shame.*"},
	{ResultWin, ":axe: *You swing your axe at **%s** slicing them in half.*"},
	{ResultLoss, ":bow_and_arrow: *You aim your bow, but **%s** wounds you first!*"},
	{ResultWin, ":bow_and_arrow: *You shoot at **%s** piercing them with an arrow!*"},
	{ResultLoss, ":boxing_glove: *You challenge **%s** still lose...*"},
	{ResultLoss, ":dagger: *You brought a knife to a bowfight, but **%s** takes you out.*"},
	{ResultWin, ":dagger: *You stab **%s** in the back of the heart.*"},
	{ResultMiss, ":knife: *You lunge at **%s** but clearly misjudged the distance.*"},
}

// Pick returns the outcome selected by roll, which is reduced modulo the table size.
func Pick(roll int) Outcome {
	if roll < 0 {
		roll = -roll
	}
	return Outcomes[roll%len(Outcomes)]
}

// Text renders the outcome for a target.
func (o Outcome) Text(targetName string) string {
	return fmt.Sprintf(o.Template, targetName)
}

// Color returns the embed colour for the outcome.
func (o Outcome) Color() int {
	switch o.Result {
	case ResultWin:
		return ColorWin
	case ResultLoss:
		return ColorLoss
	}
	return ColorMiss
}

// Scores reports whether the outcome records a kill.
func (o Outcome) Scores() bool {
	return o.Result != ResultMiss
}

// Direction returns (winner, loser) for a scoring outcome given the attacker and target.
func Direction[T any](o Outcome, attacker, target T) (winner, loser T) {
	if o.Result == ResultLoss {
		return target, attacker
	}
	return attacker, target
}

// Title renders the rivalry line "(n) attacker :crossed_swords: target (m)".
func Title(attackerName, targetName string, attackerKills, targetKills uint16) string {
	return fmt.Sprintf("(%d) %s :crossed_swords: %s (%d)", attackerKills, attackerName, targetName, targetKills)
}
