package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bradfitz/iter"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/discordpkg/gatewaykit"
	"github.com/discordpkg/gatewaykit/encoding"
	"github.com/discordpkg/gatewaykit/snowflake"
)

const (
	EnvGatewayURL = "DISCORD_GATEWAY_URL"
	EnvLogLevel   = "GATEWAYKIT_LOG_LEVEL"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(logger *logrus.Logger) *cli.App {
	app := &cli.App{
		Name:    "gatewaykit",
		Usage:   "Discord gateway tooling",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{EnvLogLevel}, Usage: "logrus level: debug|info|warn|error"},
		},
		Before: func(c *cli.Context) error {
			level, err := logrus.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			snowflakeCmd(),
			shardCmd(),
			listenCmd(logger),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

type decodedSnowflake struct {
	ID        snowflake.Snowflake `json:"id"`
	Timestamp time.Time           `json:"timestamp"`
	WorkerID  uint8               `json:"worker_id"`
	ProcessID uint8               `json:"process_id"`
	Increment uint16              `json:"increment"`
}

func snowflakeCmd() *cli.Command {
	return &cli.Command{
		Name:  "snowflake",
		Usage: "Encode and decode snowflake IDs",
		Subcommands: []*cli.Command{
			{
				Name:      "decode",
				Usage:     "Print the fields of one or more IDs",
				ArgsUsage: "<id>...",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("at least one id is required")
					}

					for _, arg := range c.Args().Slice() {
						id, err := snowflake.Parse(arg)
						if err != nil {
							return err
						}
						if err = outputJSON(c, &decodedSnowflake{
							ID:        id,
							Timestamp: id.Timestamp(),
							WorkerID:  id.WorkerID(),
							ProcessID: id.ProcessID(),
							Increment: id.Increment(),
						}); err != nil {
							return err
						}
					}
					return nil
				},
			},
			{
				Name:  "new",
				Usage: "Generate IDs",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "worker", Value: uint(snowflake.DefaultWorkerID), Usage: "worker id, 0-31"},
					&cli.UintFlag{Name: "process", Value: uint(snowflake.DefaultProcessID), Usage: "process id, 0-31"},
					&cli.TimestampFlag{Name: "time", Layout: time.RFC3339, Usage: "creation time, defaults to now"},
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 1, Usage: "number of IDs to generate"},
				},
				Action: func(c *cli.Context) error {
					worker, process := c.Uint("worker"), c.Uint("process")
					if worker > 31 || process > 31 {
						return errors.New("worker and process ids must be in the range 0-31")
					}
					if c.Int("count") < 1 {
						return errors.New("count must be at least 1")
					}

					options := []snowflake.Option{
						snowflake.WithWorkerID(uint8(worker)),
						snowflake.WithProcessID(uint8(process)),
					}
					if ts := c.Timestamp("time"); ts != nil {
						options = append(options, snowflake.WithTimestamp(*ts))
					}

					for range iter.N(c.Int("count")) {
						fmt.Fprintln(c.App.Writer, snowflake.Generate(options...))
					}
					return nil
				},
			},
		},
	}
}

func shardCmd() *cli.Command {
	return &cli.Command{
		Name:      "shard",
		Usage:     "Print which shard receives the events of each guild",
		ArgsUsage: "<guild id>...",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "shards", Aliases: []string{"s"}, Value: 1, Usage: "total number of shards"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("at least one guild id is required")
			}
			if c.Uint("shards") == 0 {
				return errors.New("shards must be at least 1")
			}

			for _, arg := range c.Args().Slice() {
				guildID, err := snowflake.Parse(arg)
				if err != nil {
					return err
				}
				shardID := gatewaykit.DeriveShardID(guildID, c.Uint("shards"))
				fmt.Fprintln(c.App.Writer, guildID.String()+" "+strconv.FormatUint(uint64(shardID), 10))
			}
			return nil
		},
	}
}

func listenCmd(logger *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "listen",
		Usage: "Connect a shard and log every payload until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "wss://gateway.discord.gg", EnvVars: []string{EnvGatewayURL}, Usage: "gateway base url"},
			&cli.IntFlag{Name: "version", Value: gatewaykit.DefaultGatewayVersion, Usage: "gateway api version"},
		},
		Action: func(c *cli.Context) error {
			shard, err := gatewaykit.NewShard(c.String("url"),
				gatewaykit.WithLogger(logger),
				gatewaykit.WithGatewayVersion(c.Int("version")),
				gatewaykit.WithHandlers(logPayloads(logger)),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if _, err = shard.Dial(ctx); err != nil {
				return err
			}
			logger.Info("listening on ", shard.URL())

			err = shard.EventLoop(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func outputJSON(c *cli.Context, v interface{}) error {
	data, err := encoding.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}
