// Package welcome runs the Discord bot that greets new guild members with a
// direct message.
package welcome

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

// Intents are the gateway intents the bot needs to see member joins.
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

// ErrNoToken is returned by [New] when no bot token is configured.
var ErrNoToken = errors.New("no bot token configured")

// ///////////////////////////////////////////////
// Greeter
// ///////////////////////////////////////////////

// DirectMessenger sends a direct message to a user.
type DirectMessenger interface {
	SendDM(userID, content string) error
}

// Options configures a [Greeter].
type Options struct {
	// Message is sent to each new member. {username} and {mention} are
	// replaced with the member's name and mention.
	Message string
	// SkipBots suppresses the message for bot accounts.
	SkipBots bool
}

// Greeter decides who gets welcomed and sends the message.
type Greeter struct {
	dm   DirectMessenger
	opts Options
	sent atomic.Int64
}

// NewGreeter returns a Greeter that sends through dm.
func NewGreeter(dm DirectMessenger, opts Options) *Greeter {
	return &Greeter{dm: dm, opts: opts}
}

// Greet welcomes u. It returns false without error when u is skipped.
func (g *Greeter) Greet(u *discordgo.User) (bool, error) {
	if u == nil {
		return false, nil
	}
	if u.Bot && g.opts.SkipBots {
		slog.Debug("skipping bot account", "user", u.ID)
		return false, nil
	}
	if err := g.dm.SendDM(u.ID, g.render(u)); err != nil {
		return false, fmt.Errorf("welcome %s: %w", u.ID, err)
	}
	g.sent.Add(1)
	return true, nil
}

// Sent returns how many welcome messages were delivered.
func (g *Greeter) Sent() int64 {
	return g.sent.Load()
}

func (g *Greeter) render(u *discordgo.User) string {
	return strings.NewReplacer(
		"{username}", u.Username,
		"{mention}", u.Mention(),
	).Replace(g.opts.Message)
}

// OnMemberAdd is the discordgo handler for member joins. Failures are logged.
func (g *Greeter) OnMemberAdd(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m == nil || m.Member == nil {
		return
	}
	sent, err := g.Greet(m.User)
	if err != nil {
		slog.Warn("failed to send welcome message", "guild", m.GuildID, "error", err)
		return
	}
	if sent {
		slog.Info("welcomed member", "guild", m.GuildID, "user", m.User.ID)
	}
}

// ///////////////////////////////////////////////
// Session
// ///////////////////////////////////////////////

// sessionMessenger sends DMs through a live gateway session.
type sessionMessenger struct {
	s *discordgo.Session
}

func (m sessionMessenger) SendDM(userID, content string) error {
	ch, err := m.s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("open DM channel: %w", err)
	}
	if _, err := m.s.ChannelMessageSend(ch.ID, content); err != nil {
		return fmt.Errorf("send DM: %w", err)
	}
	return nil
}

// Bot owns the Discord session and its greeter.
type Bot struct {
	session *discordgo.Session
	greeter *Greeter
}

// New creates a bot for token. The session is not opened until [Bot.Run].
func New(token string, opts Options) (*Bot, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoToken
	}
	s, err := discordgo.New("Bot " + strings.TrimPrefix(token, "Bot "))
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = Intents

	b := &Bot{session: s, greeter: NewGreeter(sessionMessenger{s: s}, opts)}
	s.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		slog.Info("connected to discord", "user", r.User.Username, "guilds", len(r.Guilds))
	})
	s.AddHandler(b.greeter.OnMemberAdd)
	return b, nil
}

// Greeter returns the bot's greeter.
func (b *Bot) Greeter() *Greeter {
	return b.greeter
}

// Run connects to the gateway and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	<-ctx.Done()
	slog.Info("shutting down", "welcomed", b.greeter.Sent())
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}
	return nil
}
