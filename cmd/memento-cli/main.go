package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/memento-cache/memento"
	"github.com/memento-cache/memento/protocol"
)

var (
	addr       string
	configPath string
)

var rootCmd *cobra.Command

func init() {
	rootCmd = &cobra.Command{
		Use:   "memento-cli",
		Short: "Interactive shell for a memcached server",
		Long: `Interactive shell for a memcached server.

Commands: get <key>, gets <key1> <key2> ..., set <key> <value> [ttl],
add <key> <value> [ttl], delete <key>, incr <key> <delta>,
decr <key> <delta>, stats, version, quit
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			config, err := LoadConfig(ctx, configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				config.Addr = addr
			}

			log, err := makeLogger(config.Debug)
			if err != nil {
				return err
			}
			defer log.Sync()

			client, err := memento.Dial(ctx, config.Addr, memento.WithLogger(log))
			if err != nil {
				return err
			}
			defer client.Close()

			log.Info("connected", zap.String("addr", config.Addr))
			repl(client, config.Timeout)
			return nil
		},
	}
}

func makeLogger(debug bool) (*zap.Logger, error) {
	logConfig := zap.NewProductionConfig()
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}
	logConfig.Level = zap.NewAtomicLevelAt(level)
	return logConfig.Build()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&addr, "addr", "a", "", "server address (host:port)")
	flags.StringVarP(&configPath, "config", "c", "", "TOML config file")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func repl(client *memento.Client, timeout time.Duration) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		parts := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(parts) == 0 {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		dispatch(ctx, client, parts)
		cancel()

		if strings.ToLower(parts[0]) == "quit" {
			return
		}
	}
}

func dispatch(ctx context.Context, client *memento.Client, parts []string) {
	switch strings.ToLower(parts[0]) {
	case "get":
		if len(parts) != 2 {
			fmt.Println("usage: get <key>")
			return
		}
		key, err := protocol.NewKey(parts[1])
		if err != nil {
			fmt.Println(err)
			return
		}
		report(client.Get(ctx, key))

	case "gets", "mget":
		if len(parts) < 2 {
			fmt.Println("usage: gets <key1> <key2> ...")
			return
		}
		keys := make([]protocol.Key, 0, len(parts)-1)
		for _, raw := range parts[1:] {
			key, err := protocol.NewKey(raw)
			if err != nil {
				fmt.Println(err)
				return
			}
			keys = append(keys, key)
		}
		report(client.Gets(ctx, keys...))

	case "set", "add":
		if len(parts) < 3 || len(parts) > 4 {
			fmt.Printf("usage: %s <key> <value> [ttl_seconds]\n", parts[0])
			return
		}
		key, err := protocol.NewKey(parts[1])
		if err != nil {
			fmt.Println(err)
			return
		}
		item := protocol.Timeless(parts[2])
		if len(parts) == 4 {
			secs, err := strconv.Atoi(parts[3])
			if err != nil {
				fmt.Printf("invalid ttl: %v\n", err)
				return
			}
			item = protocol.Expires(parts[2], time.Duration(secs)*time.Second)
		}
		if parts[0] == "add" {
			report(client.Add(ctx, key, item))
		} else {
			report(client.Set(ctx, key, item))
		}

	case "delete", "del":
		if len(parts) != 2 {
			fmt.Println("usage: delete <key>")
			return
		}
		key, err := protocol.NewKey(parts[1])
		if err != nil {
			fmt.Println(err)
			return
		}
		report(client.Delete(ctx, key))

	case "incr", "decr":
		if len(parts) != 3 {
			fmt.Printf("usage: %s <key> <delta>\n", parts[0])
			return
		}
		key, err := protocol.NewKey(parts[1])
		if err != nil {
			fmt.Println(err)
			return
		}
		delta, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			fmt.Printf("invalid delta: %v\n", err)
			return
		}
		if parts[0] == "incr" {
			report(client.Increment(ctx, key, delta))
		} else {
			report(client.Decrement(ctx, key, delta))
		}

	case "stats":
		report(client.Stats(ctx))

	case "version":
		report(client.Version(ctx))

	case "quit", "exit":
		client.Quit(ctx)
		fmt.Println("bye")

	case "help":
		fmt.Println(rootCmd.Long)

	default:
		fmt.Printf("unknown command %q, try help\n", parts[0])
	}
}

func report(resp *protocol.Response, err error) {
	if err != nil {
		fmt.Println(err)
		return
	}

	switch resp.Type {
	case protocol.TypeValue:
		fmt.Printf("%s = %s\n", resp.Entry.Key, resp.Entry.Item)
	case protocol.TypeValues:
		for _, entry := range resp.Entries {
			fmt.Printf("%s = %s\n", entry.Key, entry.Item)
		}
	case protocol.TypeStats:
		for _, stat := range resp.Stats {
			printStat(stat)
		}
	case protocol.TypeCounter:
		fmt.Println(resp.Counter)
	case protocol.TypeVersion:
		fmt.Println(resp.Version)
	default:
		fmt.Println(resp.Type)
	}
}

func printStat(stat protocol.Stat) {
	switch stat.Field {
	case protocol.StatVersion:
		fmt.Printf("version: %s\n", stat.Text)
	case protocol.StatRusageUser:
		fmt.Printf("rusage_user: %d.%06d\n", stat.Seconds, stat.Microseconds)
	case protocol.StatRusageSystem:
		fmt.Printf("rusage_system: %d.%06d\n", stat.Seconds, stat.Microseconds)
	case protocol.StatOther:
		fmt.Printf("%s: %s\n", stat.Name, stat.Text)
	default:
		fmt.Printf("%s: %d\n", stat.Field, stat.Count)
	}
}
