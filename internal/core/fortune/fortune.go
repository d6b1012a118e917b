// Package fortune holds the answer tables for the 8ball and rate commands.
package fortune

import "fmt"

// Answers are the 8ball responses.
var Answers = []string{
	"As I see it, yes.",
	"Ask again later.",
	"Better not tell you now.",
	"Cannot predict now.",
	"Concentrate and ask again.",
	"Don't count on it.",
	"It is certain.",
	"It is decidedly so.",
	"Most likely.",
	"My reply is no.",
	"My sources say no.",
	"Outlook good.",
	"Outlook not so good.",
	"Reply hazy, try again.",
	"Signs point to yes.",
	"Very doubtful.",
	"Without a doubt.",
	"Yes, definitely.",
	"Yes.",
	"You may rely on it.",
}

// MaxRating is the exclusive upper bound of a rating.
const MaxRating = 10

// EightBall renders the answer selected by roll for question.
func EightBall(question string, roll int) string {
	if roll < 0 {
		roll = -roll
	}
	return fmt.Sprintf("**Q:** %s\n**A:** %s", question, Answers[roll%len(Answers)])
}

// Rate renders a rating for query. roll is reduced into [0, MaxRating).
func Rate(query string, roll int) string {
	if roll < 0 {
		roll = -roll
	}
	return fmt.Sprintf(":thinking: Hmm.. I rate **%s** a %d/10! :heart:", query, roll%MaxRating)
}
