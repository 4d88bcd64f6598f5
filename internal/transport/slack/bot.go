package slack

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sandevgo/slackrelay/internal/config"
	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/sandevgo/slackrelay/pkg/log"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// HandlerFunc receives one inbound channel message.
type HandlerFunc func(ctx context.Context, msg core.IncomingMessage)

// api is the part of *slack.Client the bot uses.
type api interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type subscription struct {
	workspace string
	channel   string
	channelID string
	handler   HandlerFunc
}

// Bot listens on one Slack channel over Socket Mode and posts replies.
type Bot struct {
	api    api
	socket *socketmode.Client

	botUserID string

	mu         sync.RWMutex
	channelIDs map[string]string
	sub        *subscription

	wg sync.WaitGroup
}

func NewBot(cfg *config.SlackConfig) *Bot {
	client := slack.New(
		cfg.BotToken,
		slack.OptionAppLevelToken(cfg.AppToken),
	)
	return &Bot{
		api:        client,
		socket:     socketmode.New(client),
		channelIDs: make(map[string]string),
	}
}

func newBotWithAPI(a api) *Bot {
	return &Bot{
		api:        a,
		channelIDs: make(map[string]string),
	}
}

// Handle registers the handler for messages in workspace/channel. It must be
// called before Start.
func (b *Bot) Handle(workspace, channel string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sub = &subscription{
		workspace: workspace,
		channel:   strings.TrimPrefix(channel, "#"),
		handler:   handler,
	}
}

// Start connects and blocks until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	b.mu.RLock()
	sub := b.sub
	b.mu.RUnlock()
	if sub == nil {
		return errors.New("slack: no channel handler registered")
	}

	if err := b.connect(ctx, sub); err != nil {
		return err
	}

	logger.Info().
		Str("workspace", sub.workspace).
		Str("channel", sub.channel).
		Str("channel_id", sub.channelID).
		Msg("starting slack listener")

	go b.consume(ctx, b.socket.Events, b.socket.Ack)

	if err := b.socket.RunContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("slack socket mode: %w", err)
	}
	return nil
}

// Shutdown waits for in-flight handlers.
func (b *Bot) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bot) connect(ctx context.Context, sub *subscription) error {
	logger := log.FromCtx(ctx)

	auth, err := b.api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth: %w", err)
	}
	b.botUserID = auth.UserID

	if !strings.EqualFold(auth.Team, sub.workspace) && !strings.EqualFold(auth.TeamID, sub.workspace) {
		logger.Warn().
			Str("configured", sub.workspace).
			Str("token_team", auth.Team).
			Msg("slack token belongs to a different workspace")
	}

	id, err := b.resolveChannel(ctx, sub.channel)
	if err != nil {
		return err
	}
	sub.channelID = id
	return nil
}

// resolveChannel maps a channel name (or id) to its id, caching the result.
func (b *Bot) resolveChannel(ctx context.Context, name string) (string, error) {
	name = strings.TrimPrefix(name, "#")

	b.mu.RLock()
	id, ok := b.channelIDs[name]
	b.mu.RUnlock()
	if ok {
		return id, nil
	}

	params := &slack.GetConversationsParameters{
		ExcludeArchived: true,
		Limit:           200,
		Types:           []string{"public_channel", "private_channel"},
	}
	for {
		channels, cursor, err := b.api.GetConversationsContext(ctx, params)
		if err != nil {
			return "", fmt.Errorf("slack list channels: %w", err)
		}
		for _, ch := range channels {
			if ch.Name == name || ch.ID == name {
				b.mu.Lock()
				b.channelIDs[name] = ch.ID
				b.mu.Unlock()
				return ch.ID, nil
			}
		}
		if cursor == "" {
			break
		}
		params.Cursor = cursor
	}

	return "", fmt.Errorf("slack channel %q not found or bot is not a member", name)
}

// consume dispatches socket events until ctx is done. socketmode never
// closes its Events channel.
func (b *Bot) consume(ctx context.Context, events <-chan socketmode.Event, ack func(socketmode.Request, ...interface{})) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-events:
			b.dispatch(ctx, evt, ack)
		}
	}
}

// dispatch acks every request and hands plain user messages in the
// subscribed channel to the handler, each on its own goroutine.
func (b *Bot) dispatch(ctx context.Context, evt socketmode.Event, ack func(socketmode.Request, ...interface{})) {
	if evt.Request != nil {
		ack(*evt.Request)
	}

	switch evt.Type {
	case socketmode.EventTypeConnecting:
		log.FromCtx(ctx).Debug().Msg("connecting to slack")
		return
	case socketmode.EventTypeConnected:
		log.FromCtx(ctx).Info().Msg("connected to slack")
		return
	case socketmode.EventTypeConnectionError:
		log.FromCtx(ctx).Warn().Msg("slack connection error, reconnecting")
		return
	case socketmode.EventTypeEventsAPI:
	default:
		return
	}

	eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
	if !ok || eventsAPIEvent.Type != slackevents.CallbackEvent {
		return
	}

	ev, ok := eventsAPIEvent.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		return
	}

	b.mu.RLock()
	sub := b.sub
	b.mu.RUnlock()
	if sub == nil || ev.Channel != sub.channelID {
		return
	}
	// Ignore our own posts, other bots, edits, joins and other subtypes.
	if ev.User == "" || ev.User == b.botUserID || ev.BotID != "" || ev.SubType != "" {
		return
	}

	msg := core.IncomingMessage{
		Text:      ev.Text,
		Workspace: sub.workspace,
		Channel:   sub.channel,
	}

	log.FromCtx(ctx).Info().
		Str("user", ev.User).
		Str("channel", sub.channel).
		Int("content_len", len(ev.Text)).
		Msg("slack message received")

	// A message already received is answered even if shutdown starts;
	// Shutdown waits for it.
	handlerCtx := context.WithoutCancel(ctx)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		sub.handler(handlerCtx, msg)
	}()
}

// Send posts text as a new message. It implements core.Sender.
func (b *Bot) Send(ctx context.Context, workspace, channel, text string) error {
	id, err := b.resolveChannel(ctx, channel)
	if err != nil {
		// Let Slack resolve it; PostMessage accepts names too.
		log.FromCtx(ctx).Debug().Err(err).Str("channel", channel).Msg("posting by channel name")
		id = channel
	}

	_, _, err = b.api.PostMessageContext(ctx, id, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack post to %s/%s: %w", workspace, channel, err)
	}
	return nil
}
