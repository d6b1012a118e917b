package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Chiitoi/Aurora/internal/core/ship"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
)

const buttonPrefix = "ship"

// customID encodes a proposal button as "ship:<decision>:<proposal id>".
func customID(d ship.Decision, proposalID string) string {
	return buttonPrefix + ":" + string(d) + ":" + proposalID
}

// parseCustomID is the inverse of customID.
func parseCustomID(id string) (ship.Decision, string, bool) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 || parts[0] != buttonPrefix || parts[2] == "" {
		return "", "", false
	}
	d, ok := ship.ParseDecision(parts[1])
	if !ok {
		return "", "", false
	}
	return d, parts[2], true
}

// interactionPrompt answers proposal steps on a single interaction.
// The first answer uses the interaction response; later ones are followups.
type interactionPrompt struct {
	resp      Responder
	i         *discordgo.Interaction
	responded bool
}

var _ primary.ProposalPrompt = (*interactionPrompt)(nil)

func newPrompt(resp Responder, i *discordgo.Interaction) *interactionPrompt {
	return &interactionPrompt{resp: resp, i: i}
}

func (p *interactionPrompt) SendProposal(_ context.Context, prop primary.Proposal) error {
	r := message(proposalText(prop.ProposeeID, prop.ProposerName))
	r.Data.Components = []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Accept", Style: discordgo.PrimaryButton, CustomID: customID(ship.DecisionAccept, prop.ID)},
			discordgo.Button{Label: "Reject", Style: discordgo.PrimaryButton, CustomID: customID(ship.DecisionReject, prop.ID)},
		}},
	}
	return p.respond(r)
}

func (p *interactionPrompt) ConfirmDecision(_ context.Context, prop primary.Proposal, d ship.Decision) error {
	if d == ship.DecisionAccept {
		return p.respond(update(fmt.Sprintf("%s and %s are now shipped! :ship:", prop.ProposerID.Mention(), prop.ProposeeID.Mention())))
	}
	return p.respond(update(fmt.Sprintf("%s turned down **%s**... :broken_heart:", prop.ProposeeID.Mention(), prop.ProposerName)))
}

func (p *interactionPrompt) ReportConflict(_ context.Context, _ primary.Proposal) error {
	const text = "This ship can't sail, one of you is already shipped!"
	if !p.responded {
		return p.respond(update(text))
	}
	_, err := p.resp.FollowupMessageCreate(p.i, true, &discordgo.WebhookParams{Content: text})
	return err
}

func (p *interactionPrompt) respond(r *discordgo.InteractionResponse) error {
	if err := p.resp.InteractionRespond(p.i, r); err != nil {
		return err
	}
	p.responded = true
	return nil
}
