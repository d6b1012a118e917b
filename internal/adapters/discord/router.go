package discord

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Chiitoi/Aurora/internal/core/action"
	"github.com/Chiitoi/Aurora/internal/core/bio"
	"github.com/Chiitoi/Aurora/internal/core/fortune"
	"github.com/Chiitoi/Aurora/internal/core/kill"
	"github.com/Chiitoi/Aurora/internal/core/ship"
	"github.com/Chiitoi/Aurora/internal/ctxutil"
	"github.com/Chiitoi/Aurora/internal/logging"
	"github.com/Chiitoi/Aurora/internal/models"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

const (
	handlerTimeout = 10 * time.Second
	gifTimeout     = 2 * time.Second
	somethingWrong = "Something went wrong..."
)

// Services are the application services the router dispatches to.
type Services struct {
	Ledger primary.LedgerService
	Kill   primary.KillService
	Ship   primary.ShipService
	Bio    primary.BioService
	GIFs   secondary.GIFProvider
}

// Router dispatches interactions to the application services.
type Router struct {
	svc    Services
	logger *zap.Logger
	roll   func(n int) int
}

// NewRouter creates a router. A nil logger discards output.
func NewRouter(svc Services, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{svc: svc, logger: logger, roll: rand.IntN}
}

// OnReady logs the connected account.
func (r *Router) OnReady(_ *discordgo.Session, ready *discordgo.Ready) {
	name := ""
	if ready.User != nil {
		name = ready.User.Username
	}
	r.logger.Info("connected", zap.String("user", name), zap.Int("guilds", len(ready.Guilds)))
}

// OnInteractionCreate is the gateway handler for interactions.
func (r *Router) OnInteractionCreate(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()
	r.Handle(ctx, s, ic.Interaction)
}

// Handle answers a single interaction. Panics are recovered and logged.
func (r *Router) Handle(ctx context.Context, resp Responder, i *discordgo.Interaction) {
	start := time.Now()
	ctx = ctxutil.WithInteractionID(ctx, i.ID)
	if i.GuildID != "" {
		ctx = ctxutil.WithGuildID(ctx, i.GuildID)
	}
	if u := interactionUser(i); u != nil {
		ctx = ctxutil.WithActorID(ctx, u.ID)
	}
	log := logging.WithContext(ctx, r.logger)

	defer func() {
		if p := recover(); p != nil {
			log.Error("panic handling interaction", zap.Any("panic", p), zap.Stack("stack"))
		}
	}()

	name, err := r.dispatch(ctx, resp, i)
	if err != nil {
		log.Error("interaction failed", zap.String("command", name), zap.Error(err))
		return
	}
	log.Debug("interaction handled", zap.String("command", name), zap.Duration("elapsed", time.Since(start)))
}

func (r *Router) dispatch(ctx context.Context, resp Responder, i *discordgo.Interaction) (string, error) {
	inv, err := newInvocation(i)
	if err != nil {
		return "", resp.InteractionRespond(i, ephemeral("This only works in a server!"))
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		return data.Name, r.command(ctx, resp, inv, data)
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		return data.CustomID, r.button(ctx, resp, inv, data.CustomID)
	}
	return "", nil
}

// invocation carries the parsed identity of an interaction.
type invocation struct {
	i       *discordgo.Interaction
	guildID models.GuildID
	actorID models.UserID
	name    string
}

func newInvocation(i *discordgo.Interaction) (*invocation, error) {
	u := interactionUser(i)
	if i.GuildID == "" || u == nil {
		return nil, errors.New("interaction outside a guild")
	}
	g, err := models.ParseGuildID(i.GuildID)
	if err != nil {
		return nil, err
	}
	a, err := models.ParseUserID(u.ID)
	if err != nil {
		return nil, err
	}
	return &invocation{i: i, guildID: g, actorID: a, name: u.Username}, nil
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func (r *Router) command(ctx context.Context, resp Responder, inv *invocation, data discordgo.ApplicationCommandInteractionData) error {
	switch data.Name {
	case cmdKill:
		return r.kill(ctx, resp, inv, data)
	case cmdShip:
		return r.ship(ctx, resp, inv, data)
	case cmdBio:
		return r.bio(ctx, resp, inv, data)
	case cmdBall:
		question := stringOption(data.Options, "question")
		return resp.InteractionRespond(inv.i, message(fortune.EightBall(question, r.roll(len(fortune.Answers)))))
	case cmdRate:
		query := stringOption(data.Options, optQuery)
		return resp.InteractionRespond(inv.i, message(fortune.Rate(query, r.roll(fortune.MaxRating))))
	}
	if kind, err := action.ParseKind(data.Name); err == nil && kind != action.KindKill {
		return r.act(ctx, resp, inv, kind, data)
	}
	return resp.InteractionRespond(inv.i, ephemeral("Unknown command."))
}

func (r *Router) act(ctx context.Context, resp Responder, inv *invocation, kind action.Kind, data discordgo.ApplicationCommandInteractionData) error {
	target := inv.actorID
	if u, ok := userOption(data, optUser); ok {
		id, err := models.ParseUserID(u.ID)
		if err != nil {
			return err
		}
		target = id
	}
	self := target == inv.actorID

	count := r.svc.Ledger.RecordAndCount(ctx, primary.RecordActionRequest{
		GuildID:  inv.guildID,
		ActorID:  inv.actorID,
		TargetID: target,
		Kind:     kind,
	})

	e := &discordgo.MessageEmbed{
		Color:       colorDefault,
		Description: actionDescription(kind, inv.actorID, target),
		Footer:      &discordgo.MessageEmbedFooter{Text: actionFooter(kind, self, count)},
	}
	if url := r.gif(ctx, kind); url != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: url}
	}

	content := ""
	if !self {
		content = target.Mention()
	}
	return resp.InteractionRespond(inv.i, embed(content, e))
}

// gif looks up a reaction image. Failures are logged and yield no image.
func (r *Router) gif(ctx context.Context, kind action.Kind) string {
	if r.svc.GIFs == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, gifTimeout)
	defer cancel()
	url, err := r.svc.GIFs.Reaction(ctx, string(kind))
	if err != nil {
		logging.WithContext(ctx, r.logger).Warn("gif lookup failed", zap.String("reaction", string(kind)), zap.Error(err))
		return ""
	}
	return url
}

func (r *Router) kill(ctx context.Context, resp Responder, inv *invocation, data discordgo.ApplicationCommandInteractionData) error {
	u, ok := userOption(data, "target")
	if !ok {
		return resp.InteractionRespond(inv.i, ephemeral("Pick a target!"))
	}
	target, err := models.ParseUserID(u.ID)
	if err != nil {
		return err
	}

	res, err := r.svc.Kill.Fight(ctx, primary.FightRequest{
		GuildID:    inv.guildID,
		AttackerID: inv.actorID,
		TargetID:   target,
		Roll:       r.roll(len(kill.Outcomes)),
	})
	if err != nil {
		return r.fail(inv, resp, err)
	}
	if res.ChangedMind {
		return resp.InteractionRespond(inv.i, message(":heart: You changed your mind."))
	}

	return resp.InteractionRespond(inv.i, embed("", &discordgo.MessageEmbed{
		Color:       res.Outcome.Color(),
		Title:       kill.Title(inv.name, u.Username, res.AttackerKills, res.TargetKills),
		Description: res.Outcome.Text(u.Username),
	}))
}

func (r *Router) ship(ctx context.Context, resp Responder, inv *invocation, data discordgo.ApplicationCommandInteractionData) error {
	sub, opts := subcommand(data)
	switch sub {
	case "create":
		u, ok := userOption(discordgo.ApplicationCommandInteractionData{Options: opts, Resolved: data.Resolved}, optUser)
		if !ok {
			return resp.InteractionRespond(inv.i, ephemeral("Pick someone to ship with!"))
		}
		proposee, err := models.ParseUserID(u.ID)
		if err != nil {
			return err
		}
		prompt := newPrompt(resp, inv.i)
		_, err = r.svc.Ship.Propose(ctx, primary.ProposeRequest{
			GuildID:      inv.guildID,
			ProposerID:   inv.actorID,
			ProposerName: inv.name,
			ProposeeID:   proposee,
		}, prompt)
		if err != nil && !prompt.responded {
			return r.fail(inv, resp, err)
		}
		return err

	case "rename":
		name := stringOption(opts, optName)
		if err := r.svc.Ship.Rename(ctx, inv.guildID, inv.actorID, name); err != nil {
			return r.fail(inv, resp, err)
		}
		return resp.InteractionRespond(inv.i, ephemeral("You have updated your ship name!"))

	case "show":
		view, err := r.svc.Ship.Show(ctx, inv.guildID, inv.actorID)
		if err != nil {
			return r.fail(inv, resp, err)
		}
		return resp.InteractionRespond(inv.i, embed("", &discordgo.MessageEmbed{
			Color:       colorDefault,
			Title:       shipTitle(view.Ship.Name),
			Description: shipDescription(view.Ship.MemberOne, view.Ship.MemberTwo),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Counts", Value: countsText(view.Counts)},
				{Name: "Duration", Value: durationText(ship.Humanize(view.AgeMilliseconds))},
			},
		}))

	case "sink":
		if err := r.svc.Ship.Dissolve(ctx, inv.guildID, inv.actorID); err != nil {
			return r.fail(inv, resp, err)
		}
		return resp.InteractionRespond(inv.i, ephemeral("You have sunk your ship!"))
	}
	return resp.InteractionRespond(inv.i, ephemeral("Unknown command."))
}

func (r *Router) button(ctx context.Context, resp Responder, inv *invocation, id string) error {
	decision, proposalID, ok := parseCustomID(id)
	if !ok {
		return resp.InteractionRespond(inv.i, ephemeral("This button is no longer in use."))
	}
	prompt := newPrompt(resp, inv.i)
	res, err := r.svc.Ship.Respond(ctx, primary.RespondRequest{
		ProposalID:  proposalID,
		ResponderID: inv.actorID,
		Decision:    decision,
	}, prompt)
	if err != nil {
		if prompt.responded {
			if primary.IsBusiness(err) {
				return nil
			}
			return err
		}
		return r.fail(inv, resp, err)
	}
	if res.Outcome == primary.OutcomeCreated {
		logging.WithContext(ctx, r.logger).Info("proposal accepted", zap.String("proposal_id", proposalID))
	}
	return nil
}

func (r *Router) bio(ctx context.Context, resp Responder, inv *invocation, data discordgo.ApplicationCommandInteractionData) error {
	sub, opts := subcommand(data)
	switch sub {
	case "set":
		if err := r.svc.Bio.SetBio(ctx, inv.guildID, inv.actorID, stringOption(opts, optBio)); err != nil {
			return r.fail(inv, resp, err)
		}
		return resp.InteractionRespond(inv.i, ephemeral("Bio set!"))
	case "clear":
		if err := r.svc.Bio.ClearBio(ctx, inv.guildID, inv.actorID); err != nil {
			return r.fail(inv, resp, err)
		}
		return resp.InteractionRespond(inv.i, ephemeral("Bio cleared!"))
	case "show":
		text, err := r.svc.Bio.GetBio(ctx, inv.guildID, inv.actorID)
		if err != nil {
			return r.fail(inv, resp, err)
		}
		return resp.InteractionRespond(inv.i, message(bio.Render(text)))
	}
	return resp.InteractionRespond(inv.i, ephemeral("Unknown command."))
}

// fail answers with the notice for a business error, or a generic notice
// for anything else. Non-business errors are returned for logging.
func (r *Router) fail(inv *invocation, resp Responder, err error) error {
	if notice, ok := businessNotice(err); ok {
		return resp.InteractionRespond(inv.i, ephemeral(notice))
	}
	if rerr := resp.InteractionRespond(inv.i, ephemeral(somethingWrong)); rerr != nil {
		return fmt.Errorf("%w (respond: %v)", err, rerr)
	}
	return err
}

func businessNotice(err error) (string, bool) {
	switch {
	case errors.Is(err, primary.ErrAlreadyPaired):
		return "This ship can't sail, one of you is already shipped!", true
	case errors.Is(err, primary.ErrSelfShip):
		return "You can't ship yourself!", true
	case errors.Is(err, primary.ErrProposerPaired):
		return "You are already shipped!", true
	case errors.Is(err, primary.ErrTargetPaired):
		return "That person is already shipped!", true
	case errors.Is(err, primary.ErrNotPaired):
		return "You are not shipped!", true
	case errors.Is(err, primary.ErrUnauthorized):
		return "This proposal isn't for you!", true
	case errors.Is(err, primary.ErrProposalExpired):
		return "This proposal has expired.", true
	case errors.Is(err, primary.ErrBioTooLong):
		return fmt.Sprintf("Bio must be fewer than %d characters!", bio.MaxLength), true
	case errors.Is(err, primary.ErrNoBio):
		return "No bio set...", true
	}
	return "", false
}

func subcommand(data discordgo.ApplicationCommandInteractionData) (string, []*discordgo.ApplicationCommandInteractionDataOption) {
	if len(data.Options) == 0 {
		return "", nil
	}
	sub := data.Options[0]
	if sub.Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", nil
	}
	return sub.Name, sub.Options
}

func stringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, o := range opts {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionString {
			return o.StringValue()
		}
	}
	return ""
}

// userOption returns the named user option, filled from the resolved users when present.
func userOption(data discordgo.ApplicationCommandInteractionData, name string) (*discordgo.User, bool) {
	for _, o := range data.Options {
		if o.Name != name || o.Type != discordgo.ApplicationCommandOptionUser {
			continue
		}
		u := o.UserValue(nil)
		if data.Resolved != nil {
			if full, ok := data.Resolved.Users[u.ID]; ok && full != nil {
				return full, true
			}
		}
		if u.Username == "" {
			u.Username = u.ID
		}
		return u, true
	}
	return nil, false
}
