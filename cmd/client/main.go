package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"chat-relay/client"
	"chat-relay/domain"
	"chat-relay/domain/event"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
)

var (
	flagServerURL string
	flagIdentity  string
	flagLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "chat-client",
	Short: "Interactive terminal client for the chat relay",
	RunE:  runClient,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagServerURL, "server-url", "ws://localhost:8080/ws", "hub websocket endpoint")
	flags.StringVar(&flagIdentity, "identity", "", "account identity (display name is derived from it)")
	flags.StringVar(&flagLogLevel, "log-level", "warn", "log level")
	_ = rootCmd.MarkPersistentFlagRequired("identity")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
		os.Exit(exitRuntime)
	}
	os.Exit(exitOK)
}

func runClient(cmd *cobra.Command, _ []string) error {
	log := logs.GetLoggerFromString(flagLogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ch := client.NewChannel(log, flagServerURL, flagIdentity)
	ch.AddSink(&printerSink{})

	if err := ch.Connect(ctx); err != nil {
		return fmt.Errorf("could not connect to hub at %s: %w", flagServerURL, err)
	}
	defer ch.Disconnect()

	printSystem(fmt.Sprintf("%s has connected.", ch.DisplayName()))
	color.Gray.Printf("Chatting as %s. Type a message and press Enter (Ctrl+C to quit).\n", ch.DisplayName())

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			printTranscript(ch)
			return nil
		case <-ch.Done():
			printSystem("connection closed by the hub")
			printTranscript(ch)
			return nil
		case line, ok := <-lines:
			if !ok {
				printTranscript(ch)
				return nil
			}
			if err := ch.Send(line); err != nil {
				// Refused input stays local; nothing was displayed or sent.
				color.Red.Printf("not sent: %v\n", err)
				continue
			}
			color.Cyan.Printf("%s: ", ch.DisplayName())
			fmt.Println(line)
		}
	}
}

// printerSink renders incoming events as they arrive, next to the
// timeline projection the channel maintains on its own.
type printerSink struct{}

func (p *printerSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageRelayed:
		if evt.SenderName == domain.SystemSender {
			printSystem(evt.Text)
			return nil
		}
		color.Cyan.Printf("%s: ", evt.SenderName)
		fmt.Println(evt.Text)
	case event.PeerDisconnected:
		printSystem(fmt.Sprintf("%s has disconnected.", evt.DisplayName))
	}
	return nil
}

func printSystem(text string) {
	color.Yellow.Printf("%s%s\n", domain.SystemSender, text)
}

// printTranscript dumps the full local timeline as a table on exit.
func printTranscript(ch *client.Channel) {
	messages := ch.Timeline().AllInOrder()
	if len(messages) == 0 {
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "Kind", "Sender", "Text"})
	rows := lo.Map(messages, func(m domain.Message, _ int) []string {
		return []string{m.At.Format("15:04:05"), m.Kind.String(), m.SenderName, m.Text}
	})
	table.AppendBulk(rows)
	table.Render()
}
